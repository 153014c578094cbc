package models

import (
	"time"

	"gorm.io/datatypes"
)

// RoutingAuditEntry records who moved a correspondence where, and why.
// Entries are written after the routing transaction commits and are
// best-effort: a failed audit write never rolls back the routing change.
type RoutingAuditEntry struct {
	ID               string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CorrespondenceID string `gorm:"type:uuid;not null;index"`

	// Action is the routing event: "reassigned", "minuted", "status-changed",
	// or "office-mismatch" for consistency warnings.
	Action string `gorm:"size:32;not null"`

	PerformedByID string `gorm:"type:uuid"`

	FromOfficeID *string `gorm:"type:uuid"`
	ToOfficeID   *string `gorm:"type:uuid"`

	ApproverBeforeID *string `gorm:"type:uuid"`
	ApproverAfterID  *string `gorm:"type:uuid"`

	Reason   string
	Metadata datatypes.JSON

	CreatedAt time.Time
}
