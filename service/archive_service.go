package services

import (
	"fmt"

	model "github.com/Ekene07/CorrTrack/models"
)

// Grade tiers for assigning archive levels. MSS grades may classify at
// division level; directorate classification is reserved for top management.
var (
	leadershipGrades  = map[string]bool{"MDCS": true, "EDCS": true, "MSS1": true, "MSS2": true}
	directorateGrades = map[string]bool{"MDCS": true, "EDCS": true}
)

// AllowedArchiveLevels lists the archive levels a user may assign when
// archiving a record, from least to most restricted.
func AllowedArchiveLevels(user model.User) []model.ArchiveLevel {
	if user.IsSuperuser {
		return []model.ArchiveLevel{
			model.ArchiveLevelDepartment,
			model.ArchiveLevelDivision,
			model.ArchiveLevelDirectorate,
		}
	}
	var levels []model.ArchiveLevel
	if user.DepartmentID != nil {
		levels = append(levels, model.ArchiveLevelDepartment)
	}
	if leadershipGrades[user.GradeLevel] {
		levels = append(levels, model.ArchiveLevelDivision)
	}
	if directorateGrades[user.GradeLevel] {
		levels = append(levels, model.ArchiveLevelDirectorate)
	}
	return levels
}

// archiveVisibleTo decides whether a user may see an archived record. The
// rules run in order and the first match wins; no rule matching means no
// access. Division and directorate visibility require the designated
// headship, not just rank.
func archiveVisibleTo(rec *model.Correspondence, user *model.User, snap *HierarchySnapshot) bool {
	if user.IsSuperuser {
		return true
	}

	switch rec.ArchiveLevel {
	case model.ArchiveLevelDepartment:
		return rec.DepartmentID != nil && user.DepartmentID != nil &&
			*rec.DepartmentID == *user.DepartmentID

	case model.ArchiveLevelDivision:
		if rec.DivisionID == nil || user.DivisionID == nil || *rec.DivisionID != *user.DivisionID {
			return false
		}
		return snap.DivisionHead[*rec.DivisionID] == user.ID

	case model.ArchiveLevelDirectorate:
		if rec.DivisionID == nil || user.DirectorateID == nil {
			return false
		}
		directorateID, ok := snap.DivisionDirectorate[*rec.DivisionID]
		if !ok || directorateID != *user.DirectorateID {
			return false
		}
		return snap.DirectorateHead[directorateID] == user.ID

	default:
		return false
	}
}

// FilterArchive returns the subset of records the user may see.
func FilterArchive(records []model.Correspondence, user *model.User, snap *HierarchySnapshot) []model.Correspondence {
	visible := make([]model.Correspondence, 0, len(records))
	for i := range records {
		if archiveVisibleTo(&records[i], user, snap) {
			visible = append(visible, records[i])
		}
	}
	return visible
}

// ArchiveFilters narrows an archive listing.
type ArchiveFilters struct {
	Levels []model.ArchiveLevel
	Search string
}

// ListArchiveRecords lists the completed and archived correspondence the
// user is permitted to see, most recently completed first.
func (s *CorrespondenceService) ListArchiveRecords(user *model.User, filters ArchiveFilters) ([]model.Correspondence, error) {
	query := s.db.Where("status IN ?", []model.Status{model.StatusCompleted, model.StatusArchived})
	if len(filters.Levels) > 0 {
		query = query.Where("archive_level IN ?", filters.Levels)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("reference_number ILIKE ? OR subject ILIKE ? OR sender_name ILIKE ?", pattern, pattern, pattern)
	}

	var records []model.Correspondence
	if err := query.Order("completed_at desc NULLS LAST, created_at desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}

	snap, err := s.hierarchy.Snapshot()
	if err != nil {
		return nil, err
	}
	return FilterArchive(records, user, snap), nil
}
