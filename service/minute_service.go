package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
	"gorm.io/gorm"
)

// MinuteInput carries one ledger append.
type MinuteInput struct {
	ActionType model.ActionType
	Text       string
	Direction  model.Direction

	// ToOfficeID, when set and different from the record's current office,
	// moves the correspondence there as part of the same transaction.
	ToOfficeID *string

	// ExpectedFromOfficeID lets callers assert which office they believe
	// the item sits in. A mismatch is recorded as a consistency warning
	// but never blocks the write.
	ExpectedFromOfficeID *string

	// OnBehalfOf identifies the principal when the actor writes under a
	// delegation.
	OnBehalfOf       *UserRef
	ActedBySecretary bool
	AssistantType    model.AssistantType
}

// AppendMinute appends one immutable entry to the correspondence's ledger.
// The entry captures from_office at call time; a to_office that differs
// from the current office moves the record in the same transaction, and
// any append against a non-completed record forces in-progress.
func (s *CorrespondenceService) AppendMinute(corrID string, actor model.User, input MinuteInput) (*model.Minute, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, fmt.Errorf("minute text is required")
	}
	if input.ActionType == "" {
		input.ActionType = model.ActionMinute
	}
	if input.ToOfficeID != nil && *input.ToOfficeID != "" {
		if err := s.validateOffice(*input.ToOfficeID); err != nil {
			return nil, err
		}
	}

	var onBehalfOfID *string
	if input.OnBehalfOf != nil {
		principal, err := s.ResolveUser(*input.OnBehalfOf)
		if err != nil {
			return nil, err
		}
		allowed, err := s.CanActOnBehalf(actor.ID, principal.ID, capabilityFor(input.ActionType))
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, ErrCapabilityDenied
		}
		onBehalfOfID = &principal.ID
	}

	var corr model.Correspondence
	var minute model.Minute
	var mismatch *model.RoutingAuditEntry

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockCorrespondence(tx, corrID, &corr); err != nil {
			return err
		}
		if err := guardMutable(&corr); err != nil {
			return err
		}

		if input.ExpectedFromOfficeID != nil && *input.ExpectedFromOfficeID != corr.CurrentOfficeID {
			mismatch = &model.RoutingAuditEntry{
				CorrespondenceID: corr.ID,
				Action:           "office-mismatch",
				PerformedByID:    actor.ID,
				FromOfficeID:     input.ExpectedFromOfficeID,
				ToOfficeID:       strPtr(corr.CurrentOfficeID),
				Reason:           "minute referenced a from_office inconsistent with the record's current office",
			}
		}

		var stepCount int64
		if err := tx.Model(&model.Minute{}).Where("correspondence_id = ?", corr.ID).Count(&stepCount).Error; err != nil {
			return fmt.Errorf("failed to count minutes: %w", err)
		}

		now := time.Now()
		fromOffice, moved := routeMinute(&corr, input.ToOfficeID)

		minute = buildMinute(&corr, actor, input, int(stepCount)+1, fromOffice, onBehalfOfID, now)
		if err := tx.Create(&minute).Error; err != nil {
			return fmt.Errorf("failed to append minute: %w", err)
		}

		statusChanged := touchInProgress(&corr)
		if moved || statusChanged {
			updates := map[string]interface{}{
				"status":     corr.Status,
				"updated_at": now,
			}
			if moved {
				updates["current_office_id"] = corr.CurrentOfficeID
			}
			if err := tx.Model(&model.Correspondence{}).Where("id = ?", corr.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update correspondence routing: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if mismatch != nil {
		s.appendAudit(mismatch)
	}
	s.appendAudit(&model.RoutingAuditEntry{
		CorrespondenceID: corr.ID,
		Action:           "minuted",
		PerformedByID:    actor.ID,
		FromOfficeID:     strPtr(minute.FromOfficeID),
		ToOfficeID:       minute.ToOfficeID,
		Reason:           string(minute.ActionType),
	})

	log.Printf("[AppendMinute] %s step %d (%s) on %s", actor.Username, minute.StepNumber, minute.ActionType, corr.ReferenceNumber)
	return &minute, nil
}

// buildMinute assembles one ledger entry. OnBehalfOfID stays nil unless a
// principal was resolved, so ordinary minutes never bind an empty uuid.
func buildMinute(corr *model.Correspondence, actor model.User, input MinuteInput, step int, fromOffice string, onBehalfOfID *string, now time.Time) model.Minute {
	return model.Minute{
		CorrespondenceID: corr.ID,
		UserID:           actor.ID,
		GradeLevel:       actor.GradeLevel,
		ActionType:       input.ActionType,
		MinuteText:       input.Text,
		Direction:        minuteDirection(input.Direction),
		StepNumber:       step,
		Timestamp:        now,
		FromOfficeID:     fromOffice,
		ToOfficeID:       input.ToOfficeID,
		ActedBySecretary: input.ActedBySecretary,
		ActedByAssistant: onBehalfOfID != nil,
		AssistantType:    input.AssistantType,
		OnBehalfOfID:     onBehalfOfID,
	}
}

// minuteDirection defaults a minute to downward, the direction of an
// instruction flowing back toward the treating office.
func minuteDirection(d model.Direction) model.Direction {
	if d == "" {
		return model.DirectionDownward
	}
	return d
}

// routeMinute applies a minute's office move to the in-memory record and
// reports the captured from_office. The current office changes only when
// toOffice is present and different.
func routeMinute(corr *model.Correspondence, toOffice *string) (fromOffice string, moved bool) {
	fromOffice = corr.CurrentOfficeID
	if toOffice != nil && *toOffice != "" && *toOffice != corr.CurrentOfficeID {
		corr.CurrentOfficeID = *toOffice
		return fromOffice, true
	}
	return fromOffice, false
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
