package services

import (
	"errors"
	"testing"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// FixedTime for consistent time patching
var FixedTime = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

func TestCapabilityFor(t *testing.T) {
	assert.Equal(t, CapApprove, capabilityFor(model.ActionApprove))
	assert.Equal(t, CapApprove, capabilityFor(model.ActionReject))
	assert.Equal(t, CapForward, capabilityFor(model.ActionForward))
	assert.Equal(t, CapMinute, capabilityFor(model.ActionMinute))
	assert.Equal(t, CapMinute, capabilityFor(model.ActionTreat))
}

func TestDelegationGrants(t *testing.T) {
	day := FixedTime
	base := func() *model.Delegation {
		return &model.Delegation{
			PrincipalID: "principal",
			AssistantID: "assistant",
			CanApprove:  false,
			CanMinute:   true,
			CanForward:  true,
			Active:      true,
		}
	}

	t.Run("capability flags gate each action", func(t *testing.T) {
		d := base()
		assert.True(t, delegationGrants(d, CapMinute, day))
		assert.True(t, delegationGrants(d, CapForward, day))
		assert.False(t, delegationGrants(d, CapApprove, day))

		d.CanApprove = true
		assert.True(t, delegationGrants(d, CapApprove, day))
	})

	t.Run("inactive rows never grant", func(t *testing.T) {
		d := base()
		d.Active = false
		assert.False(t, delegationGrants(d, CapMinute, day))
	})

	t.Run("validity window contains the day", func(t *testing.T) {
		starts := day.AddDate(0, 0, -2)
		ends := day.AddDate(0, 0, 2)
		d := base()
		d.StartsAt = &starts
		d.EndsAt = &ends
		assert.True(t, delegationGrants(d, CapMinute, day))

		assert.False(t, delegationGrants(d, CapMinute, day.AddDate(0, 0, -3)))
		assert.False(t, delegationGrants(d, CapMinute, day.AddDate(0, 0, 3)))
	})

	t.Run("end date grants for the whole day", func(t *testing.T) {
		starts := day.AddDate(0, 0, -7)
		ends := day // midnight of the last covered day
		d := base()
		d.StartsAt = &starts
		d.EndsAt = &ends
		assert.True(t, delegationGrants(d, CapMinute, day.Add(9*time.Hour)))
		assert.True(t, delegationGrants(d, CapMinute, day.Add(23*time.Hour+59*time.Minute)))
		assert.False(t, delegationGrants(d, CapMinute, day.AddDate(0, 0, 1)))
	})

	t.Run("open-ended bounds", func(t *testing.T) {
		starts := day.AddDate(0, 0, -1)
		d := base()
		d.StartsAt = &starts
		assert.True(t, delegationGrants(d, CapMinute, day.AddDate(1, 0, 0)))
	})

	t.Run("nil delegation never grants", func(t *testing.T) {
		assert.False(t, delegationGrants(nil, CapMinute, day))
	})
}

// --- DBInterface-backed resolver test, with time.Now patched ---

type DBInterface interface {
	Where(query interface{}, args ...interface{}) DBInterface
	First(dest interface{}, conds ...interface{}) DBInterface
	Error() error
}

// MockDB implements DBInterface with testify/mock
type MockDB struct {
	mock.Mock
}

func (m *MockDB) Where(query interface{}, args ...interface{}) DBInterface {
	m.Called(query, args)
	return m
}

func (m *MockDB) First(dest interface{}, conds ...interface{}) DBInterface {
	m.Called(dest, conds)
	return m
}

func (m *MockDB) Error() error {
	args := m.Called()
	return args.Error(0)
}

// TestDelegationResolver uses DBInterface instead of *gorm.DB
type TestDelegationResolver struct {
	db DBInterface
}

func (r *TestDelegationResolver) CanActOnBehalf(assistantID, principalID string, capability Capability) (bool, error) {
	var delegation model.Delegation
	q := r.db.Where("principal_id = ? AND assistant_id = ?", principalID, assistantID).
		First(&delegation)
	if err := q.Error(); err != nil {
		return false, err
	}
	return delegationGrants(&delegation, capability, time.Now()), nil
}

func TestCanActOnBehalf(t *testing.T) {
	patches := gomonkey.ApplyFunc(time.Now, func() time.Time {
		return FixedTime
	})
	defer patches.Reset()

	t.Run("grant found within window", func(t *testing.T) {
		mockDB := new(MockDB)
		mockDB.On("Where", "principal_id = ? AND assistant_id = ?", []interface{}{"principal", "assistant"}).
			Return(mockDB)
		mockDB.On("First", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				d := args.Get(0).(*model.Delegation)
				starts := FixedTime.AddDate(0, 0, -1)
				ends := FixedTime.AddDate(0, 0, 7)
				*d = model.Delegation{
					PrincipalID: "principal",
					AssistantID: "assistant",
					CanApprove:  true,
					CanMinute:   true,
					Active:      true,
					StartsAt:    &starts,
					EndsAt:      &ends,
				}
			}).
			Return(mockDB)
		mockDB.On("Error").Return(nil)

		resolver := &TestDelegationResolver{db: mockDB}
		ok, err := resolver.CanActOnBehalf("assistant", "principal", CapApprove)
		assert.NoError(t, err)
		assert.True(t, ok)
		mockDB.AssertExpectations(t)
	})

	t.Run("expired window denies", func(t *testing.T) {
		mockDB := new(MockDB)
		mockDB.On("Where", "principal_id = ? AND assistant_id = ?", []interface{}{"principal", "assistant"}).
			Return(mockDB)
		mockDB.On("First", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				d := args.Get(0).(*model.Delegation)
				ends := FixedTime.AddDate(0, 0, -2)
				*d = model.Delegation{
					PrincipalID: "principal",
					AssistantID: "assistant",
					CanMinute:   true,
					Active:      true,
					EndsAt:      &ends,
				}
			}).
			Return(mockDB)
		mockDB.On("Error").Return(nil)

		resolver := &TestDelegationResolver{db: mockDB}
		ok, err := resolver.CanActOnBehalf("assistant", "principal", CapMinute)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("lookup failure surfaces", func(t *testing.T) {
		mockDB := new(MockDB)
		mockDB.On("Where", mock.Anything, mock.Anything).Return(mockDB)
		mockDB.On("First", mock.Anything, mock.Anything).Return(mockDB)
		mockDB.On("Error").Return(errors.New("connection refused"))

		resolver := &TestDelegationResolver{db: mockDB}
		ok, err := resolver.CanActOnBehalf("assistant", "principal", CapMinute)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
