package services

import (
	"fmt"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
)

// InboxFilters narrows an office inbox listing.
type InboxFilters struct {
	Statuses          []model.Status
	Search            string
	AssignedToMe      bool
	IncludeAllOffices bool
}

// InboxSummary carries the counters shown alongside an inbox page.
type InboxSummary struct {
	Total        int `json:"total"`
	Urgent       int `json:"urgent"`
	Overdue      int `json:"overdue"`
	AssignedToMe int `json:"assigned_to_me"`
}

// InboxPage is an inbox listing plus its summary counters.
type InboxPage struct {
	Records []model.Correspondence `json:"records"`
	Summary InboxSummary           `json:"summary"`
}

// overdueThresholdDays maps a priority to the age in days past which an
// open item counts as overdue.
func overdueThresholdDays(p model.Priority) int {
	switch p {
	case model.PriorityUrgent:
		return 2
	case model.PriorityHigh:
		return 5
	case model.PriorityMedium:
		return 10
	default:
		return 14
	}
}

// isOverdue reports whether an open correspondence has aged past its
// priority threshold. Completed and archived records never count.
func isOverdue(corr *model.Correspondence, now time.Time) bool {
	if corr.Status == model.StatusCompleted || corr.Status == model.StatusArchived {
		return false
	}
	start := corr.CreatedAt
	if corr.ReceivedDate != nil {
		start = *corr.ReceivedDate
	}
	age := int(now.Sub(start).Hours() / 24)
	return age > overdueThresholdDays(corr.Priority)
}

// inboxSummary derives the counters for a page of records.
func inboxSummary(records []model.Correspondence, actorID string, now time.Time) InboxSummary {
	summary := InboxSummary{Total: len(records)}
	for i := range records {
		rec := &records[i]
		if rec.Priority == model.PriorityUrgent {
			summary.Urgent++
		}
		if isOverdue(rec, now) {
			summary.Overdue++
		}
		if rec.CurrentApproverID != nil && *rec.CurrentApproverID == actorID {
			summary.AssignedToMe++
		}
	}
	return summary
}

// OfficeInbox lists correspondence sitting in or owned by the given
// offices, newest first, with the summary counters the inbox view shows.
// IncludeAllOffices widens to every office and is reserved for superusers.
func (s *CorrespondenceService) OfficeInbox(officeIDs []string, actor model.User, filters InboxFilters) (*InboxPage, error) {
	query := s.db.Model(&model.Correspondence{})

	if filters.IncludeAllOffices {
		if !actor.IsSuperuser {
			return nil, ErrCapabilityDenied
		}
	} else {
		if len(officeIDs) == 0 {
			return &InboxPage{Records: []model.Correspondence{}}, nil
		}
		// Distribution entries targeting any org unit these offices sit
		// under widen visibility without moving the record.
		scope, err := s.distributionScope(officeIDs)
		if err != nil {
			return nil, err
		}
		if scope.empty() {
			query = query.Where("current_office_id IN ? OR owning_office_id IN ?", officeIDs, officeIDs)
		} else {
			query = query.Where("current_office_id IN ? OR owning_office_id IN ? OR id IN (?)",
				officeIDs, officeIDs, s.distributedCorrespondenceIDs(scope))
		}
	}

	if len(filters.Statuses) > 0 {
		query = query.Where("status IN ?", filters.Statuses)
	}
	if filters.AssignedToMe {
		query = query.Where("current_approver_id = ?", actor.ID)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("reference_number ILIKE ? OR subject ILIKE ? OR sender_name ILIKE ?", pattern, pattern, pattern)
	}

	var records []model.Correspondence
	if err := query.Order("created_at desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}

	return &InboxPage{
		Records: records,
		Summary: inboxSummary(records, actor.ID, time.Now()),
	}, nil
}

// MemberOffices resolves the active office ids a user belongs to, used to
// scope their inbox.
func (s *CorrespondenceService) MemberOffices(userID string) ([]string, error) {
	var memberships []model.OfficeMembership
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&memberships).Error; err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}
	now := time.Now()
	ids := make([]string, 0, len(memberships))
	for i := range memberships {
		if memberships[i].ActiveOn(now) {
			ids = append(ids, memberships[i].OfficeID)
		}
	}
	return ids, nil
}
