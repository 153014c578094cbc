package services

import (
	"fmt"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
)

// SlaTargetDays returns the treatment target in days for a priority.
func SlaTargetDays(p model.Priority) int {
	switch p {
	case model.PriorityUrgent:
		return 2
	case model.PriorityHigh:
		return 3
	case model.PriorityMedium:
		return 5
	default:
		return 7
	}
}

// dateOnly truncates a timestamp to midnight of its day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// slaStart is the moment the clock starts for a record: midnight of the
// received date when one is recorded, otherwise the creation time.
func slaStart(corr *model.Correspondence) time.Time {
	if corr.ReceivedDate != nil {
		return dateOnly(*corr.ReceivedDate)
	}
	return corr.CreatedAt
}

// TurnaroundDays measures how long a record took (or has taken so far)
// from receipt to completion, never negative.
func TurnaroundDays(corr *model.Correspondence, now time.Time) int {
	end := now
	if corr.CompletedAt != nil {
		end = *corr.CompletedAt
	}
	days := int(end.Sub(slaStart(corr)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// SlaStatus classifies a record against its target: "breach" once the
// days open exceed the target, "approaching" within one day of it,
// otherwise "ok". Completed records are judged on their final turnaround.
func SlaStatus(corr *model.Correspondence, now time.Time) string {
	target := SlaTargetDays(corr.Priority)
	daysOpen := TurnaroundDays(corr, now)
	switch {
	case daysOpen > target:
		return "breach"
	case target-daysOpen <= 1:
		return "approaching"
	default:
		return "ok"
	}
}

// EscalationCandidates picks the open records that have aged past their
// priority's overdue threshold and should be flagged upward.
func EscalationCandidates(records []model.Correspondence, now time.Time) []model.Correspondence {
	var out []model.Correspondence
	for i := range records {
		if isOverdue(&records[i], now) {
			out = append(out, records[i])
		}
	}
	return out
}

// DivisionSlaMetrics aggregates SLA performance for one division.
type DivisionSlaMetrics struct {
	DivisionID    string  `json:"division_id"`
	Total         int     `json:"total"`
	Completed     int     `json:"completed"`
	Breaches      int     `json:"breaches"`
	AvgTurnaround float64 `json:"avg_turnaround_days"`
}

// SlaSummary is the report produced over a set of correspondence records.
type SlaSummary struct {
	Total                int                           `json:"total"`
	Completed            int                           `json:"completed"`
	Breaches             int                           `json:"breaches"`
	Approaching          int                           `json:"approaching"`
	ComplianceRate       float64                       `json:"compliance_rate"`
	AvgTurnaroundDays    float64                       `json:"avg_turnaround_days"`
	MinTurnaroundDays    int                           `json:"min_turnaround_days"`
	MaxTurnaroundDays    int                           `json:"max_turnaround_days"`
	StatusDistribution   map[model.Status]int          `json:"status_distribution"`
	PriorityDistribution map[model.Priority]int        `json:"priority_distribution"`
	Divisions            map[string]DivisionSlaMetrics `json:"divisions"`
	EscalationCount      int                           `json:"escalation_count"`
}

// computeSlaSummary folds a record set into the SLA report.
func computeSlaSummary(records []model.Correspondence, now time.Time) SlaSummary {
	summary := SlaSummary{
		StatusDistribution:   map[model.Status]int{},
		PriorityDistribution: map[model.Priority]int{},
		Divisions:            map[string]DivisionSlaMetrics{},
	}

	var turnaroundSum int
	for i := range records {
		rec := &records[i]
		summary.Total++
		summary.StatusDistribution[rec.Status]++
		summary.PriorityDistribution[rec.Priority]++

		turnaround := TurnaroundDays(rec, now)
		status := SlaStatus(rec, now)
		if status == "breach" {
			summary.Breaches++
		} else if status == "approaching" {
			summary.Approaching++
		}
		if isOverdue(rec, now) {
			summary.EscalationCount++
		}

		if rec.Status == model.StatusCompleted || rec.Status == model.StatusArchived {
			summary.Completed++
			turnaroundSum += turnaround
			if summary.Completed == 1 || turnaround < summary.MinTurnaroundDays {
				summary.MinTurnaroundDays = turnaround
			}
			if turnaround > summary.MaxTurnaroundDays {
				summary.MaxTurnaroundDays = turnaround
			}
		}

		if rec.DivisionID != nil {
			m := summary.Divisions[*rec.DivisionID]
			m.DivisionID = *rec.DivisionID
			m.Total++
			if rec.Status == model.StatusCompleted || rec.Status == model.StatusArchived {
				m.Completed++
				m.AvgTurnaround += float64(turnaround)
			}
			if status == "breach" {
				m.Breaches++
			}
			summary.Divisions[*rec.DivisionID] = m
		}
	}

	if summary.Completed > 0 {
		summary.AvgTurnaroundDays = float64(turnaroundSum) / float64(summary.Completed)
	}
	if summary.Total > 0 {
		summary.ComplianceRate = float64(summary.Total-summary.Breaches) / float64(summary.Total) * 100
	}
	for id, m := range summary.Divisions {
		if m.Completed > 0 {
			m.AvgTurnaround /= float64(m.Completed)
			summary.Divisions[id] = m
		}
	}
	return summary
}

// ComputeSlaSummary builds the SLA report over records created within the
// last rangeDays, optionally scoped to one division.
func (s *CorrespondenceService) ComputeSlaSummary(divisionID string, rangeDays int) (*SlaSummary, error) {
	query := s.db.Model(&model.Correspondence{})
	if rangeDays > 0 {
		query = query.Where("created_at >= ?", time.Now().AddDate(0, 0, -rangeDays))
	}
	if divisionID != "" {
		query = query.Where("division_id = ?", divisionID)
	}

	var records []model.Correspondence
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load records for SLA summary: %w", err)
	}

	summary := computeSlaSummary(records, time.Now())
	return &summary, nil
}
