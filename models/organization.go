package models

import "time"

// Directorate is a top-level organizational unit led by an Executive Director.
type Directorate struct {
	ID                  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                string  `gorm:"size:255;uniqueIndex"`
	Code                string  `gorm:"size:50;uniqueIndex"`
	ExecutiveDirectorID *string `gorm:"type:uuid"`
	IsActive            bool    `gorm:"default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Division belongs to a directorate and is led by a General Manager.
type Division struct {
	ID               string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DirectorateID    string  `gorm:"type:uuid;not null;index"`
	Name             string  `gorm:"size:255"`
	Code             string  `gorm:"size:50"`
	GeneralManagerID *string `gorm:"type:uuid"`
	IsActive         bool    `gorm:"default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Department belongs to a division and is led by a Head of Department.
type Department struct {
	ID                 string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DivisionID         string  `gorm:"type:uuid;not null;index"`
	Name               string  `gorm:"size:255"`
	Code               string  `gorm:"size:50"`
	HeadOfDepartmentID *string `gorm:"type:uuid"`
	IsActive           bool    `gorm:"default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
