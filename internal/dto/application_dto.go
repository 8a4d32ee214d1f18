package dto

import (
	"time"

	"github.com/fadilmartias/applicant-portal/internal/response"
	"github.com/google/uuid"
)

// Upload is one file part of the submission form.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// SubmissionForm is the applicant's multipart form after trimming.
type SubmissionForm struct {
	FullName          string   `json:"fullName" validate:"required"`
	Email             string   `json:"email" validate:"required,email"`
	Phone             string   `json:"phone" validate:"required"`
	Position          string   `json:"position" validate:"required"`
	City              string   `json:"city"`
	YearsOfExperience string   `json:"yearsOfExperience"`
	CountryCovered    string   `json:"countryCovered"`
	CitiesCovered     []string `json:"citiesCovered"`
	Certifications    []string `json:"certifications"`
	CoverLetter       string   `json:"coverLetter"`

	CV               *Upload `json:"-"`
	IdentityDocument *Upload `json:"-"`
}

type SubmissionResult struct {
	ID      uuid.UUID `json:"id"`
	Warning string    `json:"warning,omitempty"`
}

type ApplicationFilter struct {
	Search   string
	Position string
	City     string

	// Page and PageSize are optional; zero returns every row.
	Page     int
	PageSize int
}

type ApplicationRow struct {
	ID                       uuid.UUID  `json:"id"`
	FullName                 string     `json:"full_name"`
	Email                    string     `json:"email"`
	Phone                    string     `json:"phone"`
	Position                 string     `json:"position"`
	City                     *string    `json:"city"`
	YearsOfExperience        *float64   `json:"years_of_experience"`
	CountryCovered           *string    `json:"country_covered"`
	CitiesCovered            []string   `json:"cities_covered"`
	Certifications           []string   `json:"certifications"`
	Certification            *string    `json:"certification"`
	CoverLetter              *string    `json:"cover_letter"`
	CVFileName               string     `json:"cv_file_name"`
	IdentityDocumentFileName *string    `json:"identity_document_file_name"`
	HasIdentityDocument      bool       `json:"has_identity_document"`
	CreatedAt                *time.Time `json:"created_at"`
}

type ApplicationList struct {
	Applicants  []ApplicationRow `json:"applicants"`
	TotalCount  int64            `json:"total_count"`
	CityOptions []string         `json:"city_options"`

	// Warning is set when the table is missing optional columns.
	Warning    string               `json:"warning,omitempty"`
	Pagination *response.Pagination `json:"-"`
}
