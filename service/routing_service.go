package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
	"gorm.io/gorm"
)

// ReassignRequest names the routing fields an administrator wants to
// change. Nil pointers mean "leave as is"; ClearApprover removes the
// current approver outright.
type ReassignRequest struct {
	OwningOfficeID  *string
	CurrentOfficeID *string
	ApproverID      *string
	ClearApprover   bool
	Reason          string
}

// reassignDiff is the computed set of fields that actually differ from the
// current record, plus the before images the audit entry needs.
type reassignDiff struct {
	updates        map[string]interface{}
	officeBefore   string
	officeAfter    string
	approverBefore *string
	approverAfter  *string
}

// computeReassignChanges diffs the request against the record. An empty
// updates map means the request changes nothing.
func computeReassignChanges(corr *model.Correspondence, req ReassignRequest) reassignDiff {
	diff := reassignDiff{
		updates:        map[string]interface{}{},
		officeBefore:   corr.CurrentOfficeID,
		officeAfter:    corr.CurrentOfficeID,
		approverBefore: corr.CurrentApproverID,
		approverAfter:  corr.CurrentApproverID,
	}

	if req.OwningOfficeID != nil && *req.OwningOfficeID != corr.OwningOfficeID {
		diff.updates["owning_office_id"] = *req.OwningOfficeID
	}
	if req.CurrentOfficeID != nil && *req.CurrentOfficeID != corr.CurrentOfficeID {
		diff.updates["current_office_id"] = *req.CurrentOfficeID
		diff.officeAfter = *req.CurrentOfficeID
	}

	switch {
	case req.ClearApprover:
		if corr.CurrentApproverID != nil {
			diff.updates["current_approver_id"] = nil
			diff.approverAfter = nil
		}
	case req.ApproverID != nil:
		if corr.CurrentApproverID == nil || *corr.CurrentApproverID != *req.ApproverID {
			diff.updates["current_approver_id"] = *req.ApproverID
			diff.approverAfter = req.ApproverID
		}
	}

	return diff
}

// Reassign moves ownership, location, or approver of a correspondence in
// one atomic step. The reason is mandatory; a request that changes nothing
// fails with ErrNoChanges and leaves no trace. The applied change forces
// in-progress unless the record is already completed or archived, and is
// audited with before/after office and approver ids.
func (s *CorrespondenceService) Reassign(corrID string, req ReassignRequest, actor model.User) (*model.Correspondence, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}

	if err := s.validateReassignTargets(req); err != nil {
		return nil, err
	}

	var corr model.Correspondence
	var entry *model.RoutingAuditEntry

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockCorrespondence(tx, corrID, &corr); err != nil {
			return err
		}
		if err := guardMutable(&corr); err != nil {
			return err
		}

		diff := computeReassignChanges(&corr, req)
		if len(diff.updates) == 0 {
			return ErrNoChanges
		}

		if corr.Status != model.StatusCompleted {
			diff.updates["status"] = model.StatusInProgress
		}
		diff.updates["updated_at"] = time.Now()

		if err := tx.Model(&model.Correspondence{}).Where("id = ?", corr.ID).Updates(diff.updates).Error; err != nil {
			return fmt.Errorf("failed to apply reassignment: %w", err)
		}

		entry = &model.RoutingAuditEntry{
			CorrespondenceID: corr.ID,
			Action:           "reassigned",
			PerformedByID:    actor.ID,
			FromOfficeID:     strPtr(diff.officeBefore),
			ToOfficeID:       strPtr(diff.officeAfter),
			ApproverBeforeID: diff.approverBefore,
			ApproverAfterID:  diff.approverAfter,
			Reason:           req.Reason,
		}

		// Refresh the in-memory copy so callers see the applied values.
		if v, ok := diff.updates["owning_office_id"].(string); ok {
			corr.OwningOfficeID = v
		}
		if v, ok := diff.updates["current_office_id"].(string); ok {
			corr.CurrentOfficeID = v
		}
		if _, ok := diff.updates["current_approver_id"]; ok {
			corr.CurrentApproverID = diff.approverAfter
		}
		if v, ok := diff.updates["status"].(model.Status); ok {
			corr.Status = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.appendAudit(entry)
	log.Printf("[Reassign] %s moved %s -> %s (%s)", actor.Username, entry.CorrespondenceID, corr.CurrentOfficeID, req.Reason)
	return &corr, nil
}

// validateOffice rejects references to unknown or inactive offices.
func (s *CorrespondenceService) validateOffice(officeID string) error {
	var count int64
	if err := s.db.Model(&model.Office{}).Where("id = ? AND is_active = ?", officeID, true).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to validate office: %w", err)
	}
	if count == 0 {
		return ErrOfficeNotFound
	}
	return nil
}

// validateReassignTargets rejects references to unknown or inactive offices
// before any state is touched.
func (s *CorrespondenceService) validateReassignTargets(req ReassignRequest) error {
	for _, officeID := range []*string{req.OwningOfficeID, req.CurrentOfficeID} {
		if officeID == nil {
			continue
		}
		if err := s.validateOffice(*officeID); err != nil {
			return err
		}
	}
	if req.ApproverID != nil {
		var count int64
		if err := s.db.Model(&model.User{}).Where("id = ?", *req.ApproverID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to validate approver: %w", err)
		}
		if count == 0 {
			return ErrUserNotFound
		}
	}
	return nil
}
