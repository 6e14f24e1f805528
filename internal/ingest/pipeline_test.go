package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ride-insights/internal/catalog"
	"ride-insights/internal/model"
	"ride-insights/internal/repository"
)

const sampleCSV = `Date,Time,Booking_ID,Booking_Status,Customer_ID,Vehicle_Type,Pickup_Location,Drop_Location,V_TAT,C_TAT,Canceled_Rides_by_Customer,Canceled_Rides_by_Driver,Incomplete_Rides,Incomplete_Rides_Reason,Booking_Value,Payment_Method,Ride_Distance,Driver_Ratings,Customer_Rating
2024-07-01,08:10:00,CNR001,Success,C1,Mini,Whitefield,Hebbal,120,30,null,null,No,null,400,UPI,20,4.5,4.8
2024-07-01,09:15:00,CNR002,Canceled by Customer,C2,Mini,Whitefield,Koramangala,null,null,Change of plans,null,null,null,null,null,null,null,null
2024-07-02,18:40:00,CNR003,Success,C1,Prime Sedan,Hebbal,Whitefield,90,20,null,null,No,null,600,null,30,4.9,5
2024-07-02,19:00:00,CNR004,Canceled by Driver,C3,Auto,Hebbal,Indiranagar,null,null,null,Personal & Car related issue,null,null,null,null,null,null,null
2024-07-02,20:00:00,CNR005,Success,C3,Auto,Hebbal,Indiranagar,60,10,null,null,No,null,-5,Cash,3,4,4
`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "rides.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return database
}

func newTestPipeline(database *gorm.DB, cleanCSV string) *Pipeline {
	log := zerolog.Nop()
	return NewPipeline(NewReader("July"), NewCleaner(log), NewLoader(database, 2, log), cleanCSV, log)
}

func TestPipeline_Run(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "rides.csv")
	require.NoError(t, os.WriteFile(source, []byte(sampleCSV), 0o600))
	cleanPath := filepath.Join(dir, "processed", "rides_clean.csv")

	database := openTestDB(t)
	result, err := newTestPipeline(database, cleanPath).Run(context.Background(), source)
	require.NoError(t, err)

	require.NotEmpty(t, result.RunID.String())
	require.Equal(t, 5, result.Stats.Read)
	require.Equal(t, 4, result.Stats.Kept)
	require.Equal(t, 1, result.Stats.DroppedNegative)
	require.Equal(t, 3, result.Customers)
	require.Equal(t, 2, result.Days)
	require.Equal(t, 3, result.Vehicles)

	cleaned, err := os.ReadFile(cleanPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(cleaned)), "\n")
	require.Len(t, lines, 5)
	require.True(t, strings.HasPrefix(lines[0], "Booking_ID,Date,Time,Hour"))

	snapshot, err := repository.NewSnapshotRepository(database).Load(context.Background(),
		model.SourceRides, model.SourceCustomers, model.SourceDaily)
	require.NoError(t, err)
	require.Len(t, snapshot.Rides, 4)
	require.Len(t, snapshot.Days, 2)

	entry, err := catalog.Lookup("total-successful-revenue")
	require.NoError(t, err)
	table := entry.Execute(snapshot)
	require.Equal(t, []any{2, 1000.0}, table.Rows[0])

	var sedan model.Ride
	require.NoError(t, database.Where(`"Booking_ID" = ?`, "CNR003").First(&sedan).Error)
	require.Equal(t, "Cash", *sedan.PaymentMethod)
	require.Equal(t, 20.0, *sedan.RevenuePerKM)
}

func TestPipeline_RerunReplacesData(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "rides.csv")
	require.NoError(t, os.WriteFile(source, []byte(sampleCSV), 0o600))

	database := openTestDB(t)
	p := newTestPipeline(database, "")
	_, err := p.Run(context.Background(), source)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), source)
	require.NoError(t, err)

	var count int64
	require.NoError(t, database.Model(&model.Ride{}).Count(&count).Error)
	require.Equal(t, int64(4), count)
}

func TestPipeline_MissingSource(t *testing.T) {
	_, err := newTestPipeline(openTestDB(t), "").Run(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}
