package models

import "time"

// User is consumed from the external user directory; the engine never
// creates or edits users, it only reads grade and org assignment.
type User struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	Username   string `gorm:"size:150;uniqueIndex"`
	Email      string `gorm:"size:254"`
	FirstName  string `gorm:"size:150"`
	LastName   string `gorm:"size:150"`
	GradeLevel string `gorm:"size:50"`

	DivisionID    *string `gorm:"type:uuid"`
	DepartmentID  *string `gorm:"type:uuid"`
	DirectorateID *string `gorm:"type:uuid"`

	IsSuperuser bool
	IsActive    bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last", falling back to the username.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
