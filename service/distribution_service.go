package services

import (
	"errors"
	"fmt"
	"log"

	model "github.com/Ekene07/CorrTrack/models"
	"gorm.io/gorm"
)

// DistributionInput copies a correspondence to one organizational unit.
// TargetID names the directorate, division, or department picked by
// RecipientType.
type DistributionInput struct {
	RecipientType model.RecipientType
	Purpose       model.DistributionPurpose
	TargetID      string
	Notes         string
}

// buildDistribution places TargetID into the foreign-key slot matching the
// recipient type. The other two stay nil.
func buildDistribution(corrID string, input DistributionInput, actorID string) (model.CorrespondenceDistribution, error) {
	entry := model.CorrespondenceDistribution{
		CorrespondenceID: corrID,
		RecipientType:    input.RecipientType,
		Purpose:          input.Purpose,
		AddedByID:        actorID,
		Notes:            input.Notes,
	}
	if entry.Purpose == "" {
		entry.Purpose = model.PurposeInformation
	}
	switch input.RecipientType {
	case model.RecipientDirectorate:
		entry.DirectorateID = &input.TargetID
	case model.RecipientDivision:
		entry.DivisionID = &input.TargetID
	case model.RecipientDepartment:
		entry.DepartmentID = &input.TargetID
	default:
		return entry, fmt.Errorf("unknown recipient type %q", input.RecipientType)
	}
	return entry, nil
}

// AddDistribution copies a correspondence to another organizational unit
// for information, action, or comment. The record does not move; the
// target unit's offices gain inbox visibility instead.
func (s *CorrespondenceService) AddDistribution(corrID string, input DistributionInput, actor model.User) (*model.CorrespondenceDistribution, error) {
	if input.TargetID == "" {
		return nil, fmt.Errorf("distribution target is required")
	}

	var corr model.Correspondence
	if err := s.db.First(&corr, "id = ?", corrID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCorrespondenceNotFound
		}
		return nil, fmt.Errorf("failed to fetch correspondence: %w", err)
	}
	if err := guardMutable(&corr); err != nil {
		return nil, err
	}

	entry, err := buildDistribution(corr.ID, input, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := s.validateDistributionTarget(&entry); err != nil {
		return nil, err
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to save distribution: %w", err)
	}

	s.appendAudit(&model.RoutingAuditEntry{
		CorrespondenceID: corr.ID,
		Action:           "distributed",
		PerformedByID:    actor.ID,
		Reason:           fmt.Sprintf("%s to %s %s", entry.Purpose, entry.RecipientType, input.TargetID),
	})

	log.Printf("[AddDistribution] %s copied to %s %s for %s", corr.ReferenceNumber, entry.RecipientType, input.TargetID, entry.Purpose)
	return &entry, nil
}

// validateDistributionTarget checks the referenced org unit exists.
func (s *CorrespondenceService) validateDistributionTarget(entry *model.CorrespondenceDistribution) error {
	var count int64
	var err error
	switch {
	case entry.DirectorateID != nil:
		err = s.db.Model(&model.Directorate{}).Where("id = ?", *entry.DirectorateID).Count(&count).Error
	case entry.DivisionID != nil:
		err = s.db.Model(&model.Division{}).Where("id = ?", *entry.DivisionID).Count(&count).Error
	case entry.DepartmentID != nil:
		err = s.db.Model(&model.Department{}).Where("id = ?", *entry.DepartmentID).Count(&count).Error
	}
	if err != nil {
		return fmt.Errorf("failed to validate distribution target: %w", err)
	}
	if count == 0 {
		return ErrOfficeNotFound
	}
	return nil
}

// ListDistribution returns the distribution entries for a correspondence,
// oldest first.
func (s *CorrespondenceService) ListDistribution(corrID string) ([]model.CorrespondenceDistribution, error) {
	var entries []model.CorrespondenceDistribution
	if err := s.db.Where("correspondence_id = ?", corrID).
		Order("created_at asc").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list distribution: %w", err)
	}
	return entries, nil
}

// orgScope is the set of organizational units a group of offices belongs
// to. Distribution entries targeting any of them reach those offices.
type orgScope struct {
	DirectorateIDs []string
	DivisionIDs    []string
	DepartmentIDs  []string
}

func (sc orgScope) empty() bool {
	return len(sc.DirectorateIDs) == 0 && len(sc.DivisionIDs) == 0 && len(sc.DepartmentIDs) == 0
}

// orgScopeFromOffices collects the distinct directorate, division, and
// department ids the given offices sit under.
func orgScopeFromOffices(offices []model.Office) orgScope {
	var scope orgScope
	seen := map[string]bool{}
	add := func(dst *[]string, id *string, tier string) {
		if id == nil || *id == "" {
			return
		}
		key := tier + ":" + *id
		if seen[key] {
			return
		}
		seen[key] = true
		*dst = append(*dst, *id)
	}
	for i := range offices {
		add(&scope.DirectorateIDs, offices[i].DirectorateID, "dir")
		add(&scope.DivisionIDs, offices[i].DivisionID, "div")
		add(&scope.DepartmentIDs, offices[i].DepartmentID, "dep")
	}
	return scope
}

// distributionScope resolves the org units behind the given office ids.
func (s *CorrespondenceService) distributionScope(officeIDs []string) (orgScope, error) {
	var offices []model.Office
	if err := s.db.Where("id IN ? AND is_active = ?", officeIDs, true).Find(&offices).Error; err != nil {
		return orgScope{}, fmt.Errorf("failed to resolve distribution scope: %w", err)
	}
	return orgScopeFromOffices(offices), nil
}

// distributedCorrespondenceIDs is a subquery selecting the ids of records
// distributed into the scope's units.
func (s *CorrespondenceService) distributedCorrespondenceIDs(scope orgScope) *gorm.DB {
	sub := s.db.Model(&model.CorrespondenceDistribution{}).Select("correspondence_id")
	cond := s.db
	first := true
	apply := func(column string, ids []string) {
		if len(ids) == 0 {
			return
		}
		if first {
			cond = cond.Where(column+" IN ?", ids)
			first = false
		} else {
			cond = cond.Or(column+" IN ?", ids)
		}
	}
	apply("directorate_id", scope.DirectorateIDs)
	apply("division_id", scope.DivisionIDs)
	apply("department_id", scope.DepartmentIDs)
	return sub.Where(cond)
}
