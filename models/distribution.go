package models

import "time"

// RecipientType is the organizational tier a distribution entry targets.
type RecipientType string

const (
	RecipientDivision    RecipientType = "division"
	RecipientDepartment  RecipientType = "department"
	RecipientDirectorate RecipientType = "directorate"
)

// DistributionPurpose is why a stakeholder was copied on an item.
type DistributionPurpose string

const (
	PurposeInformation DistributionPurpose = "information"
	PurposeAction      DistributionPurpose = "action"
	PurposeComment     DistributionPurpose = "comment"
)

// CorrespondenceDistribution copies a correspondence to an additional
// organizational unit without moving it there. Exactly one of the three
// target ids is set, matching RecipientType. Distributed items show up in
// the inboxes of the target unit's offices.
type CorrespondenceDistribution struct {
	ID               string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CorrespondenceID string `gorm:"type:uuid;not null;index"`

	RecipientType RecipientType       `gorm:"size:20;not null"`
	Purpose       DistributionPurpose `gorm:"size:20;default:information"`

	DirectorateID *string `gorm:"type:uuid"`
	DivisionID    *string `gorm:"type:uuid"`
	DepartmentID  *string `gorm:"type:uuid"`

	AddedByID string `gorm:"type:uuid"`
	Notes     string

	CreatedAt time.Time
}
