package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fadilmartias/applicant-portal/internal/repository"
)

type fakeTable struct {
	// missing columns are rejected with the PostgREST schema cache message.
	missing   []string
	insertErr error
	selectErr error
	rows      []repository.Row
	total     int64

	inserts []repository.Row
	selects []repository.SelectQuery
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
	return nil
}

func (f *fakeTable) Select(_ context.Context, q repository.SelectQuery) ([]repository.Row, int64, error) {
	f.selects = append(f.selects, q)
	if f.selectErr != nil {
		return nil, 0, f.selectErr
	}
	for _, col := range q.Columns {
		if slices.Contains(f.missing, col) {
			return nil, 0, fmt.Errorf(`column applications.%s does not exist`, col)
		}
	}
	var out []repository.Row
	for _, row := range f.rows {
		if q.ID != "" && row["id"] != q.ID {
			continue
		}
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
	if f.selectErr != nil {
		return 0, f.selectErr
	}
	return int64(len(f.rows)), nil
}

type fakeFiles struct {
	// failOn makes Upload fail for paths containing the substring.
	failOn    string
	removeErr error
	signErr   error

	uploads    map[string]string
	removed    [][]string
	signedPath string
	signedTTL  time.Duration
}

func (f *fakeFiles) Upload(_ context.Context, path, contentType string, _ []byte) error {
	if f.failOn != "" && strings.Contains(path, f.failOn) {
		return errors.New("The resource already exists")
	}
	if f.uploads == nil {
		f.uploads = map[string]string{}
	}
	f.uploads[path] = contentType
	return nil
}

func (f *fakeFiles) Remove(_ context.Context, paths []string) error {
	f.removed = append(f.removed, append([]string(nil), paths...))
	return f.removeErr
}

func (f *fakeFiles) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signedPath = path
	f.signedTTL = ttl
	return "https://files.example.com/" + path + "?token=t", nil
}
