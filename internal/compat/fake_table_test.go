package compat

import (
	"context"
	"fmt"

	"github.com/fadilmartias/applicant-portal/internal/repository"
)

// fakeTable behaves like an applications table lacking the columns in
// missing, reported in slice order.
type fakeTable struct {
	missing   []string
	insertErr error
	selectErr error

	inserts []repository.Row
	selects []repository.SelectQuery
	rows    []repository.Row
	total   int64
}

func (f *fakeTable) Insert(_ context.Context, row repository.Row) error {
	f.inserts = append(f.inserts, row)
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, col := range f.missing {
		if _, ok := row[col]; ok {
			return fmt.Errorf("Could not find the '%s' column of 'applications' in the schema cache", col)
		}
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeTable) Select(_ context.Context, q repository.SelectQuery) ([]repository.Row, int64, error) {
	f.selects = append(f.selects, q)
	if f.selectErr != nil {
		return nil, 0, f.selectErr
	}
	for _, col := range f.missing {
		for _, requested := range q.Columns {
			if requested == col {
				return nil, 0, fmt.Errorf(`column applications.%s does not exist`, col)
			}
		}
	}

	out := make([]repository.Row, 0, len(f.rows))
	for _, row := range f.rows {
		projected := repository.Row{}
		for _, col := range q.Columns {
			if v, ok := row[col]; ok {
				projected[col] = v
			}
		}
		out = append(out, projected)
	}
	total := f.total
	if total == 0 {
		total = int64(len(out))
	}
	return out, total, nil
}

func (f *fakeTable) Count(context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeTable) lastInsert() repository.Row {
	return f.inserts[len(f.inserts)-1]
}
