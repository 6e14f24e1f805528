package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"ride-insights/internal/catalog"
	"ride-insights/internal/model"
)

type fakeLoader struct {
	mu       sync.Mutex
	snapshot *catalog.Snapshot
	err      error
	calls    [][]model.Source
}

func (f *fakeLoader) Load(_ context.Context, sources ...model.Source) (*catalog.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sources)
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func ptr[T any](v T) *T { return &v }

func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Rides: []model.Ride{
			{BookingID: "B1", Date: "2024-07-01", CustomerID: "C1", VehicleType: "Mini", StatusCategory: model.StatusSuccess, BookingValue: ptr(100.0), RideDistance: ptr(10.0), PaymentMethod: ptr("UPI")},
			{BookingID: "B2", Date: "2024-07-01", CustomerID: "C2", VehicleType: "Mini", StatusCategory: model.StatusCancelledByCustomer},
			{BookingID: "B3", Date: "2024-07-02", CustomerID: "C1", VehicleType: "Auto", StatusCategory: model.StatusSuccess, BookingValue: nil, RideDistance: ptr(4.0)},
		},
		Customers: []model.CustomerSummary{{CustomerID: "C1", TotalBookings: 2, TotalSpent: ptr(100.0)}},
		Days: []model.DailySummary{
			{Date: "2024-07-01", TotalBookings: 2, TotalRevenue: ptr(100.0)},
			{Date: "2024-07-02", TotalBookings: 1, TotalRevenue: ptr(0.0)},
		},
	}
}

func newService(loader *fakeLoader) *ReportService {
	return NewReportService(loader, zerolog.Nop())
}

func TestRun_LoadsOnlyEntrySources(t *testing.T) {
	loader := &fakeLoader{snapshot: testSnapshot()}

	table, err := newService(loader).Run(context.Background(), System, "daily-revenue-trend")
	require.NoError(t, err)

	require.Equal(t, "daily-revenue-trend", table.Name)
	require.Len(t, table.Rows, 2)
	require.Equal(t, [][]model.Source{{model.SourceDaily}}, loader.calls)
}

func TestRun_UnknownReport(t *testing.T) {
	loader := &fakeLoader{snapshot: testSnapshot()}

	_, err := newService(loader).Run(context.Background(), System, "weekly-forecast")
	require.ErrorIs(t, err, catalog.ErrUnknownReport)
	require.Empty(t, loader.calls)
}

func TestRun_PropagatesLoadError(t *testing.T) {
	loadErr := errors.New("schema mismatch: rides")
	loader := &fakeLoader{err: loadErr}

	_, err := newService(loader).Run(context.Background(), System, "overview-metrics")
	require.ErrorIs(t, err, loadErr)
}

func TestRun_Permissions(t *testing.T) {
	loader := &fakeLoader{snapshot: testSnapshot()}
	svc := newService(loader)
	viewer := model.Principal{Role: model.RoleViewer}

	_, err := svc.Run(context.Background(), viewer, "overview-metrics")
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), viewer, "successful-bookings")
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Run(context.Background(), model.Principal{Role: "driver"}, "overview-metrics")
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestList_FiltersRowLevelForViewer(t *testing.T) {
	svc := newService(&fakeLoader{})

	all := svc.List(System)
	require.Len(t, all, len(catalog.Entries()))

	viewer := svc.List(model.Principal{Role: model.RoleViewer})
	require.Less(t, len(viewer), len(all))
	for _, info := range viewer {
		require.False(t, info.RowLevel, info.Name)
	}

	require.Empty(t, svc.List(model.Principal{}))
}

func TestRunAll_KeepsCatalogOrder(t *testing.T) {
	loader := &fakeLoader{snapshot: testSnapshot()}

	tables, err := newService(loader).RunAll(context.Background(), System)
	require.NoError(t, err)

	entries := catalog.Entries()
	require.Len(t, tables, len(entries))
	for i, e := range entries {
		require.Equal(t, e.Name, tables[i].Name)
	}

	require.Len(t, loader.calls, 1, "one snapshot serves every report")
	require.ElementsMatch(t, []model.Source{model.SourceRides, model.SourceCustomers, model.SourceDaily}, loader.calls[0])
}

func TestRunAll_ReportsSkippedRows(t *testing.T) {
	loader := &fakeLoader{snapshot: testSnapshot()}

	tables, err := newService(loader).RunAll(context.Background(), System)
	require.NoError(t, err)

	for _, table := range tables {
		if table.Name == "total-successful-revenue" {
			require.Equal(t, 1, table.Skipped)
			require.Equal(t, 1, table.Rows[0][0])
			require.Equal(t, 100.0, table.Rows[0][1])
			return
		}
	}
	t.Fatal("total-successful-revenue missing")
}

func TestRunAll_CancelledContext(t *testing.T) {
	loader := &fakeLoader{snapshot: testSnapshot()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService(loader).RunAll(ctx, System)
	require.ErrorIs(t, err, context.Canceled)
}
