package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Application is one submission as reconciled from the store. Optional
// fields are nil when neither a column nor embedded metadata carries them.
type Application struct {
	ID                       uuid.UUID
	FullName                 string
	Email                    string
	Phone                    string
	Position                 string
	City                     *string
	YearsOfExperience        *float64
	CountryCovered           *string
	CitiesCovered            []string
	Certifications           []string
	Certification            *string
	CoverLetter              *string
	CVPath                   string
	CVFileName               string
	IdentityDocumentPath     *string
	IdentityDocumentFileName *string
	CreatedAt                *time.Time
}

// ApplicationBase is the original applications table, before the optional
// columns were introduced.
type ApplicationBase struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName                 string    `gorm:"type:text;not null"`
	Email                    string    `gorm:"type:text;not null;index"`
	Phone                    string    `gorm:"type:text;not null"`
	Position                 string    `gorm:"type:text;not null;index"`
	CoverLetter              *string   `gorm:"type:text"`
	CVPath                   string    `gorm:"column:cv_path;type:text;not null"`
	CVFileName               string    `gorm:"column:cv_file_name;type:text;not null"`
	IdentityDocumentPath     *string   `gorm:"type:text"`
	IdentityDocumentFileName *string   `gorm:"type:text"`
	CreatedAt                time.Time `gorm:"not null;default:now();index:,sort:desc"`
}

func (ApplicationBase) TableName() string {
	return "applications"
}

// ApplicationRecord is the fully migrated applications table.
type ApplicationRecord struct {
	ApplicationBase

	City              *string        `gorm:"type:text"`
	Certifications    pq.StringArray `gorm:"type:text[]"`
	Certification     *string        `gorm:"type:text"`
	YearsOfExperience *float64       `gorm:"type:double precision"`
	CountryCovered    *string        `gorm:"type:text"`
	CitiesCovered     pq.StringArray `gorm:"type:text[]"`
}

func (ApplicationRecord) TableName() string {
	return "applications"
}
