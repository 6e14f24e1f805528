package db

import (
	"fmt"

	"gorm.io/gorm"

	"ride-insights/internal/model"
)

// Tables lists every model owned by the store, in load order.
var Tables = []any{
	&model.Ride{},
	&model.CustomerSummary{},
	&model.DailySummary{},
	&model.VehicleSummary{},
}

// Composite and secondary indexes gorm tags do not express. The quoted identifiers
// are valid for both SQLite and Postgres.
var migrationStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_rides_vehicle_hour ON rides ("Vehicle_Type", "Hour")`,
	`CREATE INDEX IF NOT EXISTS idx_rides_payment ON rides ("Payment_Method")`,
	`CREATE INDEX IF NOT EXISTS idx_rides_pickup ON rides ("Pickup_Location")`,
	`CREATE INDEX IF NOT EXISTS idx_customer_summary_spent ON customer_summary ("Total_Spent")`,
}

// Migrate creates missing tables and indexes. Existing rows are left alone.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Tables...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return runMigrations(db)
}

// Reset drops every owned table and recreates the empty schema.
func Reset(db *gorm.DB) error {
	if err := db.Migrator().DropTable(Tables...); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return Migrate(db)
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
