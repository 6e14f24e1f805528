package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"ride-insights/internal/catalog"
	"ride-insights/internal/model"
)

// ErrSchemaMismatch is returned when a table or column a report reads is absent.
var ErrSchemaMismatch = errors.New("schema mismatch")

var requiredColumns = map[model.Source][]string{
	model.SourceRides:     model.RideColumns,
	model.SourceCustomers: model.CustomerSummaryColumns,
	model.SourceDaily:     model.DailySummaryColumns,
}

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Verify checks every requested source and the columns read from it.
func (r *SnapshotRepository) Verify(ctx context.Context, sources ...model.Source) error {
	m := r.db.WithContext(ctx).Migrator()

	for _, source := range sources {
		columns, ok := requiredColumns[source]
		if !ok {
			return fmt.Errorf("%w: unknown table %q", ErrSchemaMismatch, source)
		}
		if !m.HasTable(string(source)) {
			return fmt.Errorf("%w: table %q not found", ErrSchemaMismatch, source)
		}

		var missing []string
		for _, column := range columns {
			if !m.HasColumn(string(source), column) {
				missing = append(missing, column)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: table %q missing columns %s", ErrSchemaMismatch, source, strings.Join(missing, ", "))
		}
	}
	return nil
}

// Load verifies the schema and reads the requested tables into a snapshot.
// Tables that were not requested stay nil.
func (r *SnapshotRepository) Load(ctx context.Context, sources ...model.Source) (*catalog.Snapshot, error) {
	if err := r.Verify(ctx, sources...); err != nil {
		return nil, err
	}

	snapshot := &catalog.Snapshot{}
	for _, source := range sources {
		var err error
		switch source {
		case model.SourceRides:
			// Storage order is the input order listings fall back to on ties.
			err = r.db.WithContext(ctx).Select(model.RideColumns).Find(&snapshot.Rides).Error
		case model.SourceCustomers:
			err = r.db.WithContext(ctx).Order(`"Customer_ID"`).Find(&snapshot.Customers).Error
		case model.SourceDaily:
			err = r.db.WithContext(ctx).Order(`"Date"`).Find(&snapshot.Days).Error
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", source, err)
		}
	}
	return snapshot, nil
}

// Counts returns row counts for every table that exists.
func (r *SnapshotRepository) Counts(ctx context.Context) (map[model.Source]int64, error) {
	counts := make(map[model.Source]int64, len(requiredColumns))
	m := r.db.WithContext(ctx).Migrator()
	for _, source := range []model.Source{model.SourceRides, model.SourceCustomers, model.SourceDaily} {
		if !m.HasTable(string(source)) {
			continue
		}
		var n int64
		if err := r.db.WithContext(ctx).Table(string(source)).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", source, err)
		}
		counts[source] = n
	}
	return counts, nil
}
