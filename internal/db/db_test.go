package db

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"ride-insights/internal/config"
	"ride-insights/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment: "test",
		DB: config.DBConfig{
			Driver:       config.DriverSQLite,
			DSN:          filepath.Join(t.TempDir(), "nested", "rides.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
	}
}

func TestNew_SQLiteCreatesDirectory(t *testing.T) {
	database, err := New(testConfig(t), zerolog.Nop())
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestNew_UnsupportedDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Driver = "oracle"

	_, err := New(cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestMigrateAndReset(t *testing.T) {
	database, err := New(testConfig(t), zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database), "migrations must be idempotent")

	m := database.Migrator()
	for _, table := range []string{"rides", "customer_summary", "daily_summary", "vehicle_summary"} {
		require.True(t, m.HasTable(table), table)
	}
	require.True(t, m.HasIndex(&model.Ride{}, "idx_rides_vehicle_hour"))

	require.NoError(t, database.Create(&model.DailySummary{Date: "2024-07-01", TotalBookings: 3}).Error)
	require.NoError(t, Reset(database))

	var count int64
	require.NoError(t, database.Model(&model.DailySummary{}).Count(&count).Error)
	require.Zero(t, count)
}
