package repository

import (
	"context"
	"maps"
)

const ApplicationsTable = "applications"

// Row is one applications row keyed by column name. Values are whatever the
// backend decoded; callers must type-check them.
type Row map[string]any

func (r Row) Clone() Row {
	return maps.Clone(r)
}

// SelectQuery projects Columns over applications, newest first.
type SelectQuery struct {
	Columns []string
	// Search is matched case-insensitively against full_name and email.
	Search   string
	Position string
	ID       string
	Limit    int
}

// ApplicationTable is the table-like store holding applications. Errors
// carry the backend's message unchanged so missing-column failures can be
// recognised by callers.
type ApplicationTable interface {
	Insert(ctx context.Context, row Row) error
	Select(ctx context.Context, query SelectQuery) ([]Row, int64, error)
	Count(ctx context.Context) (int64, error)
}
