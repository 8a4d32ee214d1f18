package compat

const (
	ColumnID                       = "id"
	ColumnFullName                 = "full_name"
	ColumnEmail                    = "email"
	ColumnPhone                    = "phone"
	ColumnPosition                 = "position"
	ColumnCoverLetter              = "cover_letter"
	ColumnCVPath                   = "cv_path"
	ColumnCVFileName               = "cv_file_name"
	ColumnIdentityDocumentPath     = "identity_document_path"
	ColumnIdentityDocumentFileName = "identity_document_file_name"
	ColumnCreatedAt                = "created_at"

	ColumnCity              = "city"
	ColumnCertifications    = "certifications"
	ColumnCertification     = "certification"
	ColumnYearsOfExperience = "years_of_experience"
	ColumnCountryCovered    = "country_covered"
	ColumnCitiesCovered     = "cities_covered"
)

// BaseColumns exist in every version of the applications table.
var BaseColumns = []string{
	ColumnID,
	ColumnFullName,
	ColumnEmail,
	ColumnPhone,
	ColumnPosition,
	ColumnCoverLetter,
	ColumnCVPath,
	ColumnCVFileName,
	ColumnIdentityDocumentPath,
	ColumnIdentityDocumentFileName,
	ColumnCreatedAt,
}

// WriteOptionalColumns are written on insert and may be missing from an
// unmigrated table. The legacy scalar certification column is never written.
var WriteOptionalColumns = []string{
	ColumnCity,
	ColumnCertifications,
	ColumnYearsOfExperience,
	ColumnCountryCovered,
	ColumnCitiesCovered,
}

// ReadOptionalColumns are selected when present.
var ReadOptionalColumns = []string{
	ColumnCity,
	ColumnCertifications,
	ColumnCertification,
	ColumnYearsOfExperience,
	ColumnCountryCovered,
	ColumnCitiesCovered,
}

func columnSet(columns []string) map[string]bool {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return set
}
