package compat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/fadilmartias/applicant-portal/internal/model"
	"github.com/fadilmartias/applicant-portal/internal/repository"
)

type WriteResult struct {
	// DroppedColumns lists optional columns the table did not have, in the
	// order they were reported.
	DroppedColumns []string
}

func (r WriteResult) Degraded() bool {
	return len(r.DroppedColumns) > 0
}

// Warning is empty unless the row was saved in compatibility mode.
func (r WriteResult) Warning() string {
	if !r.Degraded() {
		return ""
	}
	return fmt.Sprintf("Saved with compatibility mode. Missing columns: %s.", strings.Join(r.DroppedColumns, ", "))
}

// Writer inserts applications, falling back to the cover letter metadata
// suffix for every optional column the table rejects.
type Writer struct {
	table repository.ApplicationTable
}

func NewWriter(table repository.ApplicationTable) *Writer {
	return &Writer{table: table}
}

func (w *Writer) Insert(ctx context.Context, app *model.Application) (WriteResult, error) {
	payload := applicationRow(app)
	meta := metadataFor(app)
	coverLetterWithMeta, err := AppendMetadata(derefString(app.CoverLetter), meta)
	if err != nil {
		return WriteResult{}, err
	}

	optional := columnSet(WriteOptionalColumns)
	var dropped []string
	var lastErr error

	for attempt := 0; attempt <= len(WriteOptionalColumns); attempt++ {
		err := w.table.Insert(ctx, payload.Clone())
		if err == nil {
			if len(dropped) > 0 {
				log.Printf("application %s saved in compatibility mode, missing columns: %s", app.ID, strings.Join(dropped, ", "))
			}
			return WriteResult{DroppedColumns: dropped}, nil
		}
		lastErr = err

		column, ok := MissingColumn(err)
		if !ok || !optional[column] {
			break
		}
		if _, present := payload[column]; !present {
			break
		}

		payload[ColumnCoverLetter] = coverLetterWithMeta
		delete(payload, column)
		dropped = append(dropped, column)
	}

	return WriteResult{DroppedColumns: dropped}, lastErr
}

func applicationRow(app *model.Application) repository.Row {
	row := repository.Row{
		ColumnID:                       app.ID.String(),
		ColumnFullName:                 app.FullName,
		ColumnEmail:                    app.Email,
		ColumnPhone:                    app.Phone,
		ColumnPosition:                 app.Position,
		ColumnCoverLetter:              nil,
		ColumnCVPath:                   app.CVPath,
		ColumnCVFileName:               app.CVFileName,
		ColumnIdentityDocumentPath:     nil,
		ColumnIdentityDocumentFileName: nil,

		ColumnCity:              nil,
		ColumnCertifications:    nil,
		ColumnYearsOfExperience: nil,
		ColumnCountryCovered:    nil,
		ColumnCitiesCovered:     nil,
	}
	if app.CoverLetter != nil && *app.CoverLetter != "" {
		row[ColumnCoverLetter] = *app.CoverLetter
	}
	if app.IdentityDocumentPath != nil {
		row[ColumnIdentityDocumentPath] = *app.IdentityDocumentPath
	}
	if app.IdentityDocumentFileName != nil {
		row[ColumnIdentityDocumentFileName] = *app.IdentityDocumentFileName
	}
	if app.City != nil {
		row[ColumnCity] = *app.City
	}
	if len(app.Certifications) > 0 {
		row[ColumnCertifications] = append([]string(nil), app.Certifications...)
	}
	if app.YearsOfExperience != nil {
		row[ColumnYearsOfExperience] = *app.YearsOfExperience
	}
	if app.CountryCovered != nil {
		row[ColumnCountryCovered] = *app.CountryCovered
	}
	if len(app.CitiesCovered) > 0 {
		row[ColumnCitiesCovered] = append([]string(nil), app.CitiesCovered...)
	}
	return row
}

func metadataFor(app *model.Application) Metadata {
	meta := Metadata{
		City:              app.City,
		YearsOfExperience: app.YearsOfExperience,
		CountryCovered:    app.CountryCovered,
	}
	if len(app.Certifications) > 0 {
		meta.Certifications = app.Certifications
		primary := app.Certifications[0]
		meta.Certification = &primary
	}
	if len(app.CitiesCovered) > 0 {
		meta.CitiesCovered = app.CitiesCovered
	}
	return meta
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
