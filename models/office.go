package models

import "time"

// OfficeType is the tier of an office node in the organizational tree.
type OfficeType string

const (
	OfficeMD          OfficeType = "md"
	OfficeED          OfficeType = "ed"
	OfficeGM          OfficeType = "gm"
	OfficeAGM         OfficeType = "agm"
	OfficeDirectorate OfficeType = "directorate"
	OfficeDivision    OfficeType = "division"
	OfficeDepartment  OfficeType = "department"
	OfficeUnit        OfficeType = "unit"
	OfficeRegistry    OfficeType = "registry"
	OfficeProject     OfficeType = "project"
	OfficeCustom      OfficeType = "custom"
)

// Office is a node in the organizational hierarchy that can hold or own
// correspondence. The engine only reads offices; editing is external.
type Office struct {
	ID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string     `gorm:"size:255;not null"`
	Code       string     `gorm:"size:64;uniqueIndex"`
	OfficeType OfficeType `gorm:"size:32;default:custom"`

	ParentID      *string `gorm:"type:uuid"`
	DirectorateID *string `gorm:"type:uuid"`
	DivisionID    *string `gorm:"type:uuid"`
	DepartmentID  *string `gorm:"type:uuid"`

	IsActive bool `gorm:"default:true"`

	// AllowExternalIntake: when false, registry cannot register inbound
	// correspondence directly to this office.
	AllowExternalIntake bool `gorm:"default:true"`
	// AllowLateralRouting controls routing to peer offices at the same tier.
	AllowLateralRouting bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AssignmentRole describes a user's role within an office posting.
type AssignmentRole string

const (
	RolePrincipal   AssignmentRole = "principal"
	RoleActing      AssignmentRole = "acting"
	RoleStaff       AssignmentRole = "staff"
	RoleSecretariat AssignmentRole = "secretariat"
	RoleRegistry    AssignmentRole = "registry"
	RoleSupport     AssignmentRole = "support"
)

// OfficeMembership assigns a user to an office with capability flags.
type OfficeMembership struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OfficeID string `gorm:"type:uuid;not null;index"`
	UserID   string `gorm:"type:uuid;not null;index"`

	AssignmentRole AssignmentRole `gorm:"size:20;default:staff"`

	// IsPrimary marks the user's primary posting; new correspondence
	// created by the user is owned by this office.
	IsPrimary bool

	CanRegister bool
	CanRoute    bool `gorm:"default:true"`
	CanApprove  bool

	StartsAt *time.Time `gorm:"type:date"`
	EndsAt   *time.Time `gorm:"type:date"`
	IsActive bool       `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveOn reports whether the membership window covers the given day.
// The bounds are dates, so a posting ending today is still active for the
// whole of today.
func (m *OfficeMembership) ActiveOn(day time.Time) bool {
	if !m.IsActive {
		return false
	}
	today := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	if m.StartsAt != nil && today.Before(truncateToDay(*m.StartsAt)) {
		return false
	}
	if m.EndsAt != nil && today.After(truncateToDay(*m.EndsAt)) {
		return false
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
