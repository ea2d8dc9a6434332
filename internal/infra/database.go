package infra

import (
	"fmt"

	"lilass/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (partial indexes, extensions).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by seed tooling so a
// fresh database can be provisioned without starting the server first.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on PostgreSQL < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Product{},
		&model.Variant{},
		&model.StockItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.User{},
		&model.Invoice{},
		&model.CostEntry{},
		&model.Feedback{},
		&model.Customer{},
		&model.Payment{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// partial index for the payment retry cron query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_payments_pending_retry') THEN
		    CREATE INDEX idx_payments_pending_retry
		        ON payments (next_retry_at)
		        WHERE status = 'failed' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
		// covering index for low-stock scans
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_stock_items_low') THEN
		    CREATE INDEX idx_stock_items_low
		        ON stock_items (quantity, reorder_level)
		        WHERE active = true;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
