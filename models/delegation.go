package models

import "time"

// Delegation grants an assistant the right to act for a principal on
// specific capabilities. At most one row exists per (principal, assistant)
// pair; the same principal may delegate to several distinct assistants.
type Delegation struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PrincipalID string `gorm:"type:uuid;not null;uniqueIndex:idx_delegation_pair"`
	AssistantID string `gorm:"type:uuid;not null;uniqueIndex:idx_delegation_pair"`

	CanApprove bool
	CanMinute  bool `gorm:"default:true"`
	CanForward bool `gorm:"default:true"`

	Active bool `gorm:"default:true"`

	// Optional validity window; nil bounds are open-ended.
	StartsAt *time.Time `gorm:"type:date"`
	EndsAt   *time.Time `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
