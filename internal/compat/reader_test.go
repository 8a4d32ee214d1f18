package compat

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/applicant-portal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMeta(t *testing.T, letter string, meta Metadata) string {
	t.Helper()
	stored, err := AppendMetadata(letter, meta)
	require.NoError(t, err)
	return stored
}

func TestReconcile_StructuredColumnWins(t *testing.T) {
	row := repository.Row{
		ColumnID:             "6f1d2c1a-3b8e-4c55-9a57-2f5d8e1b7c01",
		ColumnCity:           "Lisbon",
		ColumnCoverLetter:    withMeta(t, "Hi", Metadata{City: ptr("Porto"), CountryCovered: ptr("Spain")}),
		ColumnCountryCovered: nil,
	}

	app := Reconcile(row)

	assert.Equal(t, "6f1d2c1a-3b8e-4c55-9a57-2f5d8e1b7c01", app.ID.String())
	assert.Equal(t, "Lisbon", *app.City)
	// A null column falls back to the metadata value.
	assert.Equal(t, "Spain", *app.CountryCovered)
	assert.Equal(t, "Hi", *app.CoverLetter)
}

func TestReconcile_RecoversEverythingFromMetadata(t *testing.T) {
	meta := Metadata{
		City:              ptr("Porto"),
		Certifications:    []string{"CompTIA A+"},
		Certification:     ptr("CompTIA A+"),
		YearsOfExperience: ptr(7.0),
		CountryCovered:    ptr("Portugal"),
		CitiesCovered:     []string{"Porto", "Braga"},
	}
	app := Reconcile(repository.Row{ColumnCoverLetter: withMeta(t, "", meta)})

	assert.Equal(t, meta.City, app.City)
	assert.Equal(t, meta.YearsOfExperience, app.YearsOfExperience)
	assert.Equal(t, meta.CountryCovered, app.CountryCovered)
	assert.Equal(t, meta.CitiesCovered, app.CitiesCovered)
	assert.Equal(t, meta.Certifications, app.Certifications)
	assert.Equal(t, "CompTIA A+", *app.Certification)
	assert.Nil(t, app.CoverLetter)
}

func TestReconcile_TypeChecksColumns(t *testing.T) {
	created := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		row   repository.Row
		check func(t *testing.T, row repository.Row)
	}{
		{
			name: "numeric kinds",
			row:  repository.Row{ColumnYearsOfExperience: int64(4)},
			check: func(t *testing.T, row repository.Row) {
				assert.Equal(t, 4.0, *Reconcile(row).YearsOfExperience)
			},
		},
		{
			name: "json number",
			row:  repository.Row{ColumnYearsOfExperience: json.Number("2.5")},
			check: func(t *testing.T, row repository.Row) {
				assert.Equal(t, 2.5, *Reconcile(row).YearsOfExperience)
			},
		},
		{
			name: "wrong types are ignored",
			row: repository.Row{
				ColumnYearsOfExperience: "ten",
				ColumnCity:              42,
				ColumnCitiesCovered:     "Lisbon",
			},
			check: func(t *testing.T, row repository.Row) {
				app := Reconcile(row)
				assert.Nil(t, app.YearsOfExperience)
				assert.Nil(t, app.City)
				assert.Nil(t, app.CitiesCovered)
			},
		},
		{
			name: "decoded json array keeps only strings",
			row:  repository.Row{ColumnCitiesCovered: []any{"Lisbon", 3.0, "Porto", nil}},
			check: func(t *testing.T, row repository.Row) {
				assert.Equal(t, []string{"Lisbon", "Porto"}, Reconcile(row).CitiesCovered)
			},
		},
		{
			name: "created_at from time or string",
			row:  repository.Row{ColumnCreatedAt: "2025-03-04T10:30:00.000000+00:00"},
			check: func(t *testing.T, row repository.Row) {
				assert.True(t, created.Equal(*Reconcile(row).CreatedAt))
				assert.True(t, created.Equal(*Reconcile(repository.Row{ColumnCreatedAt: created}).CreatedAt))
			},
		},
		{
			name: "garbage id",
			row:  repository.Row{ColumnID: "not-a-uuid"},
			check: func(t *testing.T, row repository.Row) {
				assert.Equal(t, "00000000-0000-0000-0000-000000000000", Reconcile(row).ID.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.row)
		})
	}
}

func TestReconcile_Certifications(t *testing.T) {
	tests := []struct {
		name      string
		row       repository.Row
		wantList  []string
		wantFirst *string
	}{
		{
			name:      "list column",
			row:       repository.Row{ColumnCertifications: []string{"Cisco CCNA", "ITIL 4 Foundation"}, ColumnCertification: "old"},
			wantList:  []string{"Cisco CCNA", "ITIL 4 Foundation"},
			wantFirst: ptr("Cisco CCNA"),
		},
		{
			name:      "legacy scalar column",
			row:       repository.Row{ColumnCertification: "Cisco CCNP"},
			wantList:  []string{"Cisco CCNP"},
			wantFirst: ptr("Cisco CCNP"),
		},
		{
			name:      "metadata list beats legacy column",
			row:       repository.Row{ColumnCertification: "Cisco CCNP", ColumnCoverLetter: MetadataMarker + `{"certifications":["Fortinet NSE 4"]}`},
			wantList:  []string{"Fortinet NSE 4"},
			wantFirst: ptr("Fortinet NSE 4"),
		},
		{
			name:      "metadata scalar only",
			row:       repository.Row{ColumnCoverLetter: MetadataMarker + `{"certification":"CompTIA Security+"}`},
			wantList:  []string{"CompTIA Security+"},
			wantFirst: ptr("CompTIA Security+"),
		},
		{
			name:      "empty list column keeps legacy scalar as primary",
			row:       repository.Row{ColumnCertifications: []any{}, ColumnCertification: "Cisco CCNA"},
			wantList:  []string{},
			wantFirst: ptr("Cisco CCNA"),
		},
		{
			name: "nothing",
			row:  repository.Row{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := Reconcile(tt.row)
			assert.Equal(t, tt.wantList, app.Certifications)
			assert.Equal(t, tt.wantFirst, app.Certification)
		})
	}
}

func TestReader_DropsMissingColumns(t *testing.T) {
	table := &fakeTable{
		missing: []string{ColumnCertifications, ColumnCertification},
		rows: []repository.Row{
			{ColumnFullName: "Ana", ColumnCity: "Lisbon", ColumnCertifications: []string{"x"}},
		},
	}

	result, err := NewReader(table).List(context.Background(), Filter{Search: "ana", Position: "Network Engineer"})
	require.NoError(t, err)

	assert.Equal(t, []string{ColumnCertifications, ColumnCertification}, result.DroppedColumns)
	require.Len(t, table.selects, 3)
	last := table.selects[2]
	assert.NotContains(t, last.Columns, ColumnCertifications)
	assert.NotContains(t, last.Columns, ColumnCertification)
	assert.Contains(t, last.Columns, ColumnCity)
	assert.Equal(t, "ana", last.Search)
	assert.Equal(t, "Network Engineer", last.Position)

	require.Len(t, result.Applications, 1)
	assert.Nil(t, result.Applications[0].Certifications)
	assert.Equal(t, int64(1), result.Total)
}

func TestReader_FatalErrors(t *testing.T) {
	for _, tt := range []struct {
		name  string
		table *fakeTable
	}{
		{"network", &fakeTable{selectErr: errors.New("dial tcp: i/o timeout")}},
		{"missing base column", &fakeTable{missing: []string{ColumnEmail}}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(tt.table).List(context.Background(), Filter{})
			assert.Error(t, err)
			assert.Len(t, tt.table.selects, 1)
		})
	}
}

func TestReader_CityFilterAfterReconcile(t *testing.T) {
	table := &fakeTable{
		missing: []string{ColumnCity},
		total:   42,
		rows: []repository.Row{
			{ColumnFullName: "A", ColumnCoverLetter: withMeta(t, "", Metadata{City: ptr("Lisbon")})},
			{ColumnFullName: "B", ColumnCoverLetter: withMeta(t, "", Metadata{City: ptr("Porto")})},
			{ColumnFullName: "C", ColumnCoverLetter: withMeta(t, "", Metadata{City: ptr("lisbon")})},
			{ColumnFullName: "D"},
		},
	}

	result, err := NewReader(table).List(context.Background(), Filter{City: " LISBON "})
	require.NoError(t, err)

	require.Len(t, result.Applications, 2)
	assert.Equal(t, "A", result.Applications[0].FullName)
	assert.Equal(t, "C", result.Applications[1].FullName)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, []string{"Lisbon", "Porto", "lisbon"}, result.Cities)

	unfiltered, err := NewReader(table).List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(42), unfiltered.Total)
	assert.Len(t, unfiltered.Applications, 4)
}
