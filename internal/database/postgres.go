package database

import (
	"fmt"
	"time"

	"github.com/fadilmartias/applicant-portal/internal/config"
	"github.com/fadilmartias/applicant-portal/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.DBConfig, production bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	if !production {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(100)
		pgDB.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}

// Migrate creates or extends the applications table. With legacy set only
// the original columns are created, which leaves the service running in
// compatibility mode.
func Migrate(db *gorm.DB, legacy bool) error {
	if legacy {
		return db.AutoMigrate(&model.ApplicationBase{})
	}
	return db.AutoMigrate(&model.ApplicationRecord{})
}

// ColumnStatus reports which of the given applications columns exist.
func ColumnStatus(db *gorm.DB, columns []string) map[string]bool {
	m := db.Migrator()
	status := make(map[string]bool, len(columns))
	for _, col := range columns {
		status[col] = m.HasColumn(&model.ApplicationRecord{}, col)
	}
	return status
}
