package services

import (
	"fmt"
	"log"

	model "github.com/Ekene07/CorrTrack/models"
)

// appendAudit records a routing audit entry. Auditing is best effort: a
// failed insert is logged but never fails the mutation it describes.
func (s *CorrespondenceService) appendAudit(entry *model.RoutingAuditEntry) {
	if entry == nil {
		return
	}
	if err := s.db.Create(entry).Error; err != nil {
		log.Printf("[appendAudit] Failed to record %s audit for %s: %v", entry.Action, entry.CorrespondenceID, err)
	}
}

// AuditTrail returns the routing audit entries for a correspondence,
// oldest first.
func (s *CorrespondenceService) AuditTrail(corrID string) ([]model.RoutingAuditEntry, error) {
	var entries []model.RoutingAuditEntry
	if err := s.db.Where("correspondence_id = ?", corrID).Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}
	return entries, nil
}
