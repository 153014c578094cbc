package services

import (
	"testing"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
	"github.com/stretchr/testify/assert"
)

func TestApplyStatusChange(t *testing.T) {
	now := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)

	t.Run("completing sets completed_at once", func(t *testing.T) {
		corr := &model.Correspondence{Status: model.StatusInProgress}
		err := applyStatusChange(corr, model.StatusCompleted, "", now)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, corr.Status)
		assert.NotNil(t, corr.CompletedAt)
		assert.Equal(t, now, *corr.CompletedAt)

		later := now.Add(48 * time.Hour)
		err = applyStatusChange(corr, model.StatusCompleted, "", later)
		assert.NoError(t, err)
		// Idempotent: the original completion timestamp survives.
		assert.Equal(t, now, *corr.CompletedAt)
	})

	t.Run("leaving completed clears completed_at", func(t *testing.T) {
		completed := now
		corr := &model.Correspondence{Status: model.StatusCompleted, CompletedAt: &completed}
		err := applyStatusChange(corr, model.StatusInProgress, "", now)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusInProgress, corr.Status)
		assert.Nil(t, corr.CompletedAt)
	})

	t.Run("completed_at non-nil iff status completed", func(t *testing.T) {
		corr := &model.Correspondence{Status: model.StatusPending}
		sequence := []model.Status{
			model.StatusInProgress,
			model.StatusCompleted,
			model.StatusPending,
			model.StatusCompleted,
		}
		for _, next := range sequence {
			err := applyStatusChange(corr, next, "", now)
			assert.NoError(t, err)
			if corr.Status == model.StatusCompleted {
				assert.NotNil(t, corr.CompletedAt)
			} else {
				assert.Nil(t, corr.CompletedAt)
			}
		}
	})

	t.Run("archiving requires a level", func(t *testing.T) {
		corr := &model.Correspondence{Status: model.StatusCompleted}
		err := applyStatusChange(corr, model.StatusArchived, "", now)
		assert.ErrorIs(t, err, ErrArchiveLevelRequired)

		err = applyStatusChange(corr, model.StatusArchived, model.ArchiveLevelDepartment, now)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusArchived, corr.Status)
		assert.Equal(t, model.ArchiveLevelDepartment, corr.ArchiveLevel)
	})

	t.Run("archived is terminal", func(t *testing.T) {
		corr := &model.Correspondence{Status: model.StatusArchived, ArchiveLevel: model.ArchiveLevelDivision}
		for _, next := range []model.Status{model.StatusPending, model.StatusInProgress, model.StatusCompleted, model.StatusArchived} {
			err := applyStatusChange(corr, next, "", now)
			assert.ErrorIs(t, err, ErrTerminalState)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		corr := &model.Correspondence{Status: model.StatusPending}
		err := applyStatusChange(corr, model.Status("bogus"), "", now)
		assert.Error(t, err)
		assert.Equal(t, model.StatusPending, corr.Status)
	})
}

func TestTouchInProgress(t *testing.T) {
	tests := []struct {
		status  model.Status
		changed bool
		want    model.Status
	}{
		{model.StatusPending, true, model.StatusInProgress},
		{model.StatusInProgress, false, model.StatusInProgress},
		{model.StatusCompleted, false, model.StatusCompleted},
		{model.StatusArchived, false, model.StatusArchived},
	}
	for _, tt := range tests {
		corr := &model.Correspondence{Status: tt.status}
		assert.Equal(t, tt.changed, touchInProgress(corr), "from %s", tt.status)
		assert.Equal(t, tt.want, corr.Status)
	}
}

func TestRouteMinute(t *testing.T) {
	registry := "office-registry"
	division := "office-division"

	t.Run("move to a different office", func(t *testing.T) {
		corr := &model.Correspondence{CurrentOfficeID: registry}
		from, moved := routeMinute(corr, &division)
		assert.True(t, moved)
		assert.Equal(t, registry, from)
		assert.Equal(t, division, corr.CurrentOfficeID)
	})

	t.Run("no target leaves office unchanged", func(t *testing.T) {
		corr := &model.Correspondence{CurrentOfficeID: registry}
		from, moved := routeMinute(corr, nil)
		assert.False(t, moved)
		assert.Equal(t, registry, from)
		assert.Equal(t, registry, corr.CurrentOfficeID)
	})

	t.Run("same target leaves office unchanged", func(t *testing.T) {
		corr := &model.Correspondence{CurrentOfficeID: registry}
		from, moved := routeMinute(corr, &registry)
		assert.False(t, moved)
		assert.Equal(t, registry, from)
		assert.Equal(t, registry, corr.CurrentOfficeID)
	})
}
