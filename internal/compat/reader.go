package compat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fadilmartias/applicant-portal/internal/model"
	"github.com/fadilmartias/applicant-portal/internal/repository"
	"github.com/google/uuid"
)

var ErrReadExhausted = errors.New("failed to load applications")

type Filter struct {
	Search   string
	Position string
	// City is compared case-insensitively after reconciliation, since some
	// rows only carry it inside the metadata suffix.
	City string
}

type ReadResult struct {
	Applications []model.Application
	// Cities are the distinct non-empty cities across all rows matched by
	// the store, before the city filter.
	Cities []string
	Total  int64
	// DroppedColumns lists optional columns the table did not have.
	DroppedColumns []string
}

// Reader selects applications, dropping optional columns the table rejects
// and recovering their values from the metadata suffix.
type Reader struct {
	table repository.ApplicationTable
}

func NewReader(table repository.ApplicationTable) *Reader {
	return &Reader{table: table}
}

func (r *Reader) List(ctx context.Context, filter Filter) (ReadResult, error) {
	columns := append(append([]string(nil), BaseColumns...), ReadOptionalColumns...)
	optional := columnSet(ReadOptionalColumns)
	var dropped []string

	for attempt := 0; attempt <= len(ReadOptionalColumns); attempt++ {
		rows, total, err := r.table.Select(ctx, repository.SelectQuery{
			Columns:  columns,
			Search:   filter.Search,
			Position: filter.Position,
		})
		if err == nil {
			return buildResult(rows, total, filter, dropped), nil
		}

		column, ok := MissingColumn(err)
		if !ok || !optional[column] || !contains(columns, column) {
			return ReadResult{}, err
		}
		columns = without(columns, column)
		dropped = append(dropped, column)
	}

	return ReadResult{}, ErrReadExhausted
}

func buildResult(rows []repository.Row, total int64, filter Filter, dropped []string) ReadResult {
	apps := make([]model.Application, 0, len(rows))
	seenCity := make(map[string]bool)
	var cities []string

	for _, row := range rows {
		app := Reconcile(row)
		if app.City != nil {
			if city := strings.TrimSpace(*app.City); city != "" && !seenCity[city] {
				seenCity[city] = true
				cities = append(cities, city)
			}
		}
		apps = append(apps, app)
	}

	if city := strings.TrimSpace(filter.City); city != "" {
		filtered := apps[:0]
		for _, app := range apps {
			if app.City != nil && strings.EqualFold(*app.City, city) {
				filtered = append(filtered, app)
			}
		}
		apps = filtered
		total = int64(len(apps))
	}

	return ReadResult{Applications: apps, Cities: cities, Total: total, DroppedColumns: dropped}
}

// Reconcile builds an Application from a loosely typed row. Each optional
// field comes from its column when that holds a value of the right type,
// otherwise from the metadata suffix, otherwise it is nil.
func Reconcile(row repository.Row) model.Application {
	app := model.Application{
		ID:                       asUUID(row[ColumnID]),
		FullName:                 stringOrEmpty(row[ColumnFullName]),
		Email:                    stringOrEmpty(row[ColumnEmail]),
		Phone:                    stringOrEmpty(row[ColumnPhone]),
		Position:                 stringOrEmpty(row[ColumnPosition]),
		CVPath:                   stringOrEmpty(row[ColumnCVPath]),
		CVFileName:               stringOrEmpty(row[ColumnCVFileName]),
		IdentityDocumentPath:     asString(row[ColumnIdentityDocumentPath]),
		IdentityDocumentFileName: asString(row[ColumnIdentityDocumentFileName]),
		CreatedAt:                asTime(row[ColumnCreatedAt]),
	}

	meta := &Metadata{}
	if raw := asString(row[ColumnCoverLetter]); raw != nil {
		letter, parsed := SplitMetadata(*raw)
		if letter != "" {
			app.CoverLetter = &letter
		}
		if parsed != nil {
			meta = parsed
		}
	}

	app.City = firstString(asString(row[ColumnCity]), meta.City)
	app.YearsOfExperience = asFloat(row[ColumnYearsOfExperience])
	if app.YearsOfExperience == nil {
		app.YearsOfExperience = meta.YearsOfExperience
	}
	app.CountryCovered = firstString(asString(row[ColumnCountryCovered]), meta.CountryCovered)
	if cities, ok := asStrings(row[ColumnCitiesCovered]); ok {
		app.CitiesCovered = cities
	} else {
		app.CitiesCovered = meta.CitiesCovered
	}

	legacy := asString(row[ColumnCertification])
	switch certs, ok := asStrings(row[ColumnCertifications]); {
	case ok:
		app.Certifications = certs
	case meta.Certifications != nil:
		app.Certifications = meta.Certifications
	case legacy != nil:
		app.Certifications = []string{*legacy}
	case meta.Certification != nil && *meta.Certification != "":
		app.Certifications = []string{*meta.Certification}
	}
	if len(app.Certifications) > 0 {
		primary := app.Certifications[0]
		app.Certification = &primary
	} else {
		app.Certification = firstString(legacy, meta.Certification)
	}

	return app
}

func firstString(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func asString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func stringOrEmpty(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asFloat(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func asStrings(v any) ([]string, bool) {
	switch items := v.(type) {
	case []string:
		return append([]string{}, items...), true
	case []any:
		out := []string{}
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

func asTime(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		return &t
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return nil
		}
		return &parsed
	}
	return nil
}

func asUUID(v any) uuid.UUID {
	switch id := v.(type) {
	case uuid.UUID:
		return id
	case string:
		if parsed, err := uuid.Parse(id); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := uuid.ParseBytes(id); err == nil {
			return parsed
		}
	}
	return uuid.Nil
}

func contains(columns []string, column string) bool {
	for _, c := range columns {
		if c == column {
			return true
		}
	}
	return false
}

func without(columns []string, column string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c != column {
			out = append(out, c)
		}
	}
	return out
}
