package services

import (
	"errors"
	"testing"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
	"github.com/stretchr/testify/assert"
)

// TestCorrespondenceLifecycle walks one record through the full mutation
// flow: registration defaults, a forwarding minute, a reassignment, and
// completion with its turnaround, then verifies the archive lock-out.
func TestCorrespondenceLifecycle(t *testing.T) {
	received := time.Date(2025, time.March, 1, 11, 30, 0, 0, time.UTC)
	corr := model.Correspondence{
		ID:              "corr-1",
		ReferenceNumber: "NPA/REG/ADMIN/0001",
		Subject:         "Berth allocation request",
		Priority:        defaultPriority(""),
		Source:          defaultSource(""),
		DocumentType:    defaultDocType(""),
		Direction:       defaultDirection(""),
		Status:          model.StatusPending,
		ReceivedDate:    &received,
		OwningOfficeID:  "office-registry",
		CurrentOfficeID: "office-registry",
	}
	actor := model.User{ID: "user-1", Username: "admin", GradeLevel: "MSS1"}

	assert.Equal(t, model.PriorityMedium, corr.Priority)
	assert.Equal(t, model.DirectionUpward, corr.Direction)

	t.Run("forwarding minute moves the record and forces in-progress", func(t *testing.T) {
		target := "office-ops"
		input := MinuteInput{
			ActionType: model.ActionForward,
			Text:       "For necessary action",
			ToOfficeID: &target,
		}
		now := time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC)

		fromOffice, moved := routeMinute(&corr, input.ToOfficeID)
		assert.Equal(t, "office-registry", fromOffice)
		assert.True(t, moved)
		assert.Equal(t, "office-ops", corr.CurrentOfficeID)

		minute := buildMinute(&corr, actor, input, 1, fromOffice, nil, now)
		assert.Equal(t, "corr-1", minute.CorrespondenceID)
		assert.Equal(t, 1, minute.StepNumber)
		assert.Equal(t, model.DirectionDownward, minute.Direction)
		assert.Nil(t, minute.OnBehalfOfID)
		assert.False(t, minute.ActedByAssistant)

		assert.True(t, touchInProgress(&corr))
		assert.Equal(t, model.StatusInProgress, corr.Status)
	})

	t.Run("delegated minute carries the principal", func(t *testing.T) {
		principalID := "user-director"
		minute := buildMinute(&corr, actor, MinuteInput{ActionType: model.ActionMinute, Text: "Noted"}, 2, corr.CurrentOfficeID, &principalID, time.Now())
		assert.True(t, minute.ActedByAssistant)
		if assert.NotNil(t, minute.OnBehalfOfID) {
			assert.Equal(t, principalID, *minute.OnBehalfOfID)
		}
	})

	t.Run("reassignment retargets office and approver", func(t *testing.T) {
		newOffice := "office-md"
		approver := "user-md"
		diff := computeReassignChanges(&corr, ReassignRequest{
			CurrentOfficeID: &newOffice,
			ApproverID:      &approver,
			Reason:          "escalated to managing director",
		})
		assert.Equal(t, "office-ops", diff.officeBefore)
		assert.Equal(t, "office-md", diff.officeAfter)
		assert.Contains(t, diff.updates, "current_office_id")
		assert.Contains(t, diff.updates, "current_approver_id")

		corr.CurrentOfficeID = diff.officeAfter
		corr.CurrentApproverID = diff.approverAfter
	})

	t.Run("completion records turnaround from the received date", func(t *testing.T) {
		completedAt := time.Date(2025, time.March, 4, 16, 0, 0, 0, time.UTC)
		assert.NoError(t, applyStatusChange(&corr, model.StatusCompleted, "", completedAt))
		assert.Equal(t, model.StatusCompleted, corr.Status)
		if assert.NotNil(t, corr.CompletedAt) {
			assert.Equal(t, completedAt, *corr.CompletedAt)
		}
		// March 1 midnight to March 4 16:00 is three full days.
		assert.Equal(t, 3, TurnaroundDays(&corr, completedAt.AddDate(0, 1, 0)))
		assert.Equal(t, "ok", SlaStatus(&corr, completedAt))
	})

	t.Run("archive locks out every further mutation", func(t *testing.T) {
		assert.NoError(t, applyStatusChange(&corr, model.StatusArchived, model.ArchiveLevelDepartment, time.Now()))
		assert.Equal(t, model.StatusArchived, corr.Status)

		assert.ErrorIs(t, guardMutable(&corr), ErrTerminalState)
		assert.ErrorIs(t, applyStatusChange(&corr, model.StatusPending, "", time.Now()), ErrTerminalState)
		assert.False(t, touchInProgress(&corr))
	})
}

func TestMinuteDirectionDefault(t *testing.T) {
	assert.Equal(t, model.DirectionDownward, minuteDirection(""))
	assert.Equal(t, model.DirectionUpward, minuteDirection(model.DirectionUpward))
}

func TestReferenceNumbering(t *testing.T) {
	assert.Equal(t, "NPA/REG/ADMIN/0007", nextReference("admin", 7))
	assert.Equal(t, "NPA/REG/OKAFOR/1042", nextReference("okafor", 1042))
}

func TestIsDuplicateReference(t *testing.T) {
	assert.False(t, isDuplicateReference(nil))
	assert.False(t, isDuplicateReference(assert.AnError))
	dup := errors.New(`failed to save correspondence: ERROR: duplicate key value violates unique constraint "idx_correspondences_reference_number" (SQLSTATE 23505)`)
	assert.True(t, isDuplicateReference(dup))
}
