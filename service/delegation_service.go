package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
	"gorm.io/gorm"
)

// Capability is a delegable action class.
type Capability string

const (
	CapApprove Capability = "approve"
	CapMinute  Capability = "minute"
	CapForward Capability = "forward"
)

// capabilityFor maps a ledger action onto the delegation flag it needs.
func capabilityFor(action model.ActionType) Capability {
	switch action {
	case model.ActionApprove, model.ActionReject:
		return CapApprove
	case model.ActionForward:
		return CapForward
	default:
		return CapMinute
	}
}

// delegationGrants reports whether a delegation row covers the capability
// on the given day. Inactive rows never grant; a starts_at/ends_at window,
// when present, must contain the day. Bounds are dates, so the comparison
// runs at date granularity: the end date itself still grants.
func delegationGrants(d *model.Delegation, capability Capability, day time.Time) bool {
	if d == nil || !d.Active {
		return false
	}
	today := dateOnly(day)
	if d.StartsAt != nil && today.Before(dateOnly(*d.StartsAt)) {
		return false
	}
	if d.EndsAt != nil && today.After(dateOnly(*d.EndsAt)) {
		return false
	}
	switch capability {
	case CapApprove:
		return d.CanApprove
	case CapMinute:
		return d.CanMinute
	case CapForward:
		return d.CanForward
	}
	return false
}

// CanActOnBehalf reports whether assistant may exercise the capability for
// principal right now. Missing delegation rows simply mean no.
func (s *CorrespondenceService) CanActOnBehalf(assistantID, principalID string, capability Capability) (bool, error) {
	var delegation model.Delegation
	err := s.db.Where("principal_id = ? AND assistant_id = ?", principalID, assistantID).
		First(&delegation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to fetch delegation: %w", err)
	}
	return delegationGrants(&delegation, capability, time.Now()), nil
}

// UpsertDelegation creates or updates the single delegation row for a
// (principal, assistant) pair.
func (s *CorrespondenceService) UpsertDelegation(d *model.Delegation) error {
	var existing model.Delegation
	err := s.db.Where("principal_id = ? AND assistant_id = ?", d.PrincipalID, d.AssistantID).
		First(&existing).Error
	if err == nil {
		d.ID = existing.ID
		d.CreatedAt = existing.CreatedAt
		d.UpdatedAt = time.Now()
		if err := s.db.Save(d).Error; err != nil {
			return fmt.Errorf("failed to update delegation: %w", err)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to fetch delegation: %w", err)
	}
	if err := s.db.Create(d).Error; err != nil {
		return fmt.Errorf("failed to create delegation: %w", err)
	}
	log.Printf("[UpsertDelegation] %s may now act for %s", d.AssistantID, d.PrincipalID)
	return nil
}

// RevokeDelegation deactivates the pair's delegation without deleting the
// row, so the grant history stays queryable.
func (s *CorrespondenceService) RevokeDelegation(principalID, assistantID string) error {
	result := s.db.Model(&model.Delegation{}).
		Where("principal_id = ? AND assistant_id = ?", principalID, assistantID).
		Updates(map[string]interface{}{"active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to revoke delegation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListDelegations returns the delegations granted by a principal, or all
// delegations when principalID is empty.
func (s *CorrespondenceService) ListDelegations(principalID string) ([]model.Delegation, error) {
	var delegations []model.Delegation
	query := s.db.Order("created_at asc")
	if principalID != "" {
		query = query.Where("principal_id = ?", principalID)
	}
	if err := query.Find(&delegations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch delegations: %w", err)
	}
	return delegations, nil
}
