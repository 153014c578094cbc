package models

import "time"

// ActionType classifies an entry in the minute ledger.
type ActionType string

const (
	ActionMinute  ActionType = "minute"
	ActionForward ActionType = "forward"
	ActionApprove ActionType = "approve"
	ActionReject  ActionType = "reject"
	ActionTreat   ActionType = "treat"
)

// AssistantType distinguishes technical from personal assistants when a
// minute was recorded on a principal's behalf.
type AssistantType string

const (
	AssistantTA AssistantType = "TA"
	AssistantPA AssistantType = "PA"
)

// Minute is one immutable entry in the append-only action ledger of a
// correspondence. Entries are never edited or removed; ordering is by
// Timestamp ascending, ties broken by insertion order.
type Minute struct {
	ID               string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CorrespondenceID string     `gorm:"type:uuid;not null;index"`
	UserID           string     `gorm:"type:uuid;not null"`
	GradeLevel       string     `gorm:"size:50"`
	ActionType       ActionType `gorm:"size:20;default:minute"`
	MinuteText       string     `gorm:"not null"`
	Direction        Direction  `gorm:"size:20;default:downward"`
	StepNumber       int        `gorm:"default:1"`
	Timestamp        time.Time

	// FromOfficeID captures the correspondence's current office at the
	// moment the minute was appended; ToOfficeID, when set, is where the
	// append moved it.
	FromOfficeID string  `gorm:"type:uuid"`
	ToOfficeID   *string `gorm:"type:uuid"`

	ActedBySecretary bool
	ActedByAssistant bool
	AssistantType    AssistantType `gorm:"size:5"`

	// OnBehalfOfID is the principal when the minute was recorded under a
	// delegation; nil when the actor acted in their own right.
	OnBehalfOfID *string `gorm:"type:uuid"`

	CreatedAt time.Time
}
