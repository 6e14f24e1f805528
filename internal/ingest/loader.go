package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"ride-insights/internal/db"
)

type Loader struct {
	db        *gorm.DB
	batchSize int
	log       zerolog.Logger
}

func NewLoader(database *gorm.DB, batchSize int, log zerolog.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Loader{db: database, batchSize: batchSize, log: log.With().Str("component", "loader").Logger()}
}

// Load replaces the stored dataset in one transaction. A failed load leaves the
// previous tables in place where the engine supports transactional DDL.
func (l *Loader) Load(ctx context.Context, data Dataset) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.Reset(tx); err != nil {
			return err
		}

		if err := insert(tx, "rides", data.Rides, l.batchSize); err != nil {
			return err
		}
		if err := insert(tx, "customer_summary", data.Customers, l.batchSize); err != nil {
			return err
		}
		if err := insert(tx, "daily_summary", data.Days, l.batchSize); err != nil {
			return err
		}
		if err := insert(tx, "vehicle_summary", data.Vehicles, l.batchSize); err != nil {
			return err
		}

		l.log.Info().
			Int("rides", len(data.Rides)).
			Int("customers", len(data.Customers)).
			Int("days", len(data.Days)).
			Int("vehicles", len(data.Vehicles)).
			Msg("dataset loaded")
		return nil
	})
}

func insert[T any](tx *gorm.DB, table string, rows []T, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}
