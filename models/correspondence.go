package models

import (
	"time"

	"gorm.io/datatypes"
)

// Status is the lifecycle state of a correspondence item.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
)

// Priority drives SLA targets and overdue thresholds.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Direction records whether an item is moving up or down the hierarchy.
type Direction string

const (
	DirectionUpward   Direction = "upward"
	DirectionDownward Direction = "downward"
)

// ArchiveLevel is the hierarchical tier gating visibility once a record
// is completed or archived. Empty means the record was never classified.
type ArchiveLevel string

const (
	ArchiveLevelDepartment  ArchiveLevel = "department"
	ArchiveLevelDivision    ArchiveLevel = "division"
	ArchiveLevelDirectorate ArchiveLevel = "directorate"
)

// Source distinguishes registry-registered external mail from internal memos.
type Source string

const (
	SourceInternal Source = "internal"
	SourceExternal Source = "external"
)

type DocumentType string

const (
	DocTypeLetter    DocumentType = "letter"
	DocTypeRequest   DocumentType = "request"
	DocTypeComplaint DocumentType = "complaint"
	DocTypeInquiry   DocumentType = "inquiry"
	DocTypeReport    DocumentType = "report"
	DocTypeDirective DocumentType = "directive"
	DocTypeOther     DocumentType = "other"
)

// Correspondence represents a tracked letter, memo, or request routed
// through offices for minuting, approval, and archival.
type Correspondence struct {
	// ID is a unique identifier, stored as a UUID in the database.
	// In Elasticsearch, it's indexed as a keyword for exact matching.
	ID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" elastic:"type:keyword"`

	// ReferenceNumber is the registry reference, unique per item, indexed
	// as a keyword for exact lookups.
	ReferenceNumber string `gorm:"size:100;uniqueIndex" elastic:"type:keyword"`

	Subject string `gorm:"size:500;not null" elastic:"type:text,analyzer:standard"`
	Summary string `elastic:"type:text,analyzer:standard"`

	SenderName         string `gorm:"size:255" elastic:"type:text,analyzer:standard"`
	SenderOrganization string `gorm:"size:255" elastic:"type:text,analyzer:standard"`
	RecipientName      string `gorm:"size:255"`

	Source       Source       `gorm:"size:20;default:internal" elastic:"type:keyword"`
	DocumentType DocumentType `gorm:"size:32;default:letter" elastic:"type:keyword"`
	Priority     Priority     `gorm:"size:20;default:medium" elastic:"type:keyword"`
	Status       Status       `gorm:"size:20;default:pending" elastic:"type:keyword"`
	Direction    Direction    `gorm:"size:20;default:upward" elastic:"type:keyword"`

	// ArchiveLevel is set when the item is classified for archival and
	// gates who may see the record afterwards.
	ArchiveLevel ArchiveLevel `gorm:"size:20" elastic:"type:keyword"`

	// ReceivedDate is the registry intake date (date only, no time part).
	ReceivedDate *time.Time `gorm:"type:date"`
	LetterDate   *time.Time `gorm:"type:date"`

	// CompletedAt is non-nil exactly when Status is StatusCompleted.
	CompletedAt *time.Time

	// OwningOfficeID is the office that registered the item and retains
	// ownership; CurrentOfficeID is wherever the item currently sits.
	// CurrentOfficeID always equals the to_office of the most recent
	// minute that specified one, or the last reassignment target.
	OwningOfficeID  string `gorm:"type:uuid" elastic:"type:keyword"`
	CurrentOfficeID string `gorm:"type:uuid" elastic:"type:keyword"`

	CurrentApproverID *string `gorm:"type:uuid"`
	CreatedByID       string  `gorm:"type:uuid"`

	// Denormalized org pointers used by archive access control.
	DivisionID   *string `gorm:"type:uuid"`
	DepartmentID *string `gorm:"type:uuid"`

	Tags    datatypes.JSON `elastic:"type:object"`
	Remarks string

	CreatedAt time.Time `elastic:"type:date"`
	UpdatedAt time.Time `elastic:"type:date"`
}

// CorrespondenceAttachment is a file attached to a correspondence item.
// The binary itself lives in object storage; only the URL is kept here.
type CorrespondenceAttachment struct {
	ID               string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CorrespondenceID string `gorm:"type:uuid;not null"`
	FileName         string `gorm:"size:255;not null"`
	FileType         string `gorm:"size:100"`
	FileSize         int64
	FileURL          string
	UploadedByID     string `gorm:"type:uuid"`
	CreatedAt        time.Time
}
