package repository

import (
	"context"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// arrayColumns are text[] in Postgres.
var arrayColumns = map[string]bool{
	"certifications": true,
	"cities_covered": true,
}

// PostgresRepository reads and writes applications directly with gorm.
type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db}
}

func (r *PostgresRepository) Insert(ctx context.Context, row Row) error {
	values := make(map[string]any, len(row))
	for col, v := range row {
		if items, ok := v.([]string); ok {
			values[col] = pq.StringArray(items)
			continue
		}
		values[col] = v
	}
	return r.db.WithContext(ctx).Table(ApplicationsTable).Create(values).Error
}

func (r *PostgresRepository) Select(ctx context.Context, query SelectQuery) ([]Row, int64, error) {
	tx := r.db.WithContext(ctx).Table(ApplicationsTable)
	if search := strings.TrimSpace(query.Search); search != "" {
		like := "%" + escapeLike(search) + "%"
		tx = tx.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}
	if query.Position != "" {
		tx = tx.Where("position = ?", query.Position)
	}
	if query.ID != "" {
		tx = tx.Where("id = ?", query.ID)
	}
	tx = tx.Session(&gorm.Session{})

	find := tx.Select(query.Columns).Order("created_at DESC")
	if query.Limit > 0 {
		find = find.Limit(query.Limit)
	}
	var raw []map[string]any
	if err := find.Find(&raw).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]Row, 0, len(raw))
	for _, values := range raw {
		rows = append(rows, normalizeRow(values))
	}
	return rows, total, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Table(ApplicationsTable).Count(&total).Error
	return total, err
}

// normalizeRow turns driver values into the shapes the compatibility reader
// expects: text for byte slices and []string for text[] columns.
func normalizeRow(values map[string]any) Row {
	row := make(Row, len(values))
	for col, v := range values {
		if arrayColumns[col] && v != nil {
			var items pq.StringArray
			if err := items.Scan(v); err == nil {
				row[col] = []string(items)
				continue
			}
		}
		if b, ok := v.([]byte); ok {
			row[col] = string(b)
			continue
		}
		row[col] = v
	}
	return row
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
