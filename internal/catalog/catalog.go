// Package catalog holds the fixed set of ride reports. Every entry is a pure function
// of a Snapshot; thresholds are constants and nothing is parameterised at run time.
package catalog

import (
	"errors"
	"fmt"

	"ride-insights/internal/model"
)

var ErrUnknownReport = errors.New("unknown report")

type Entry struct {
	Name    string
	Title   string
	Sources []model.Source
	// RowLevel entries expose individual bookings or diagnostics rather than aggregates.
	RowLevel bool
	run      func(*Snapshot) model.Table
}

func (e Entry) Execute(s *Snapshot) model.Table {
	t := e.run(s)
	t.Name = e.Name
	t.Title = e.Title
	return t
}

func (e Entry) Info() model.ReportInfo {
	return model.ReportInfo{Name: e.Name, Title: e.Title, Sources: e.Sources, RowLevel: e.RowLevel}
}

var rides = []model.Source{model.SourceRides}

var entries = []Entry{
	{Name: "overview-metrics", Title: "Overall booking metrics", Sources: rides, run: overviewMetrics},
	{Name: "successful-bookings", Title: "Successful bookings", Sources: rides, RowLevel: true, run: successfulBookings},
	{Name: "avg-distance-by-vehicle", Title: "Ride distance per vehicle type", Sources: rides, run: avgDistanceByVehicle},
	{Name: "customer-cancellation-rate", Title: "Customer cancellation rate", Sources: rides, run: customerCancellationRate},
	{Name: "driver-cancellation-rate", Title: "Driver cancellation rate", Sources: rides, run: driverCancellationRate},
	{Name: "top-customers-by-bookings", Title: "Top 5 customers by bookings", Sources: rides, run: topCustomersByBookings},
	{Name: "top-customers-by-spend", Title: "Top 10 customers by spend", Sources: rides, run: topCustomersBySpend},
	{Name: "driver-cancellation-reasons", Title: "Driver cancellation reasons", Sources: rides, run: driverCancellationReasons},
	{Name: "customer-cancellation-reasons", Title: "Customer cancellation reasons", Sources: rides, run: customerCancellationReasons},
	{Name: "prime-sedan-driver-ratings", Title: "Prime Sedan driver ratings", Sources: rides, run: primeSedanDriverRatings},
	{Name: "upi-payments", Title: "Rides paid with UPI", Sources: rides, RowLevel: true, run: upiPayments},
	{Name: "avg-customer-rating-by-vehicle", Title: "Customer rating per vehicle type", Sources: rides, run: avgCustomerRatingByVehicle},
	{Name: "total-successful-revenue", Title: "Revenue from successful rides", Sources: rides, run: totalSuccessfulRevenue},
	{Name: "incomplete-rides", Title: "Incomplete rides", Sources: rides, RowLevel: true, run: incompleteRides},
	{Name: "customer-segmentation", Title: "Customer value segments", Sources: []model.Source{model.SourceCustomers}, run: customerSegmentation},
	{Name: "daily-revenue-trend", Title: "Daily revenue trend", Sources: []model.Source{model.SourceDaily}, run: dailyRevenueTrend},
	{Name: "cancellation-pattern-by-vehicle-hour", Title: "Cancellations by vehicle type and hour", Sources: rides, run: cancellationPatternByVehicleHour},
	{Name: "top-pickup-locations", Title: "Busiest pickup locations", Sources: rides, run: topPickupLocations},
	{Name: "high-rated-rides-by-vehicle", Title: "Highly rated rides per vehicle type", Sources: rides, run: highRatedRidesByVehicle},
	{Name: "payment-method-analysis", Title: "Payment methods", Sources: rides, run: paymentMethodAnalysis},
	{Name: "booking-status-distribution", Title: "Booking status distribution", Sources: rides, run: bookingStatusDistribution},
	{Name: "vehicle-performance", Title: "Vehicle type performance", Sources: rides, run: vehiclePerformance},
	{Name: "hourly-demand", Title: "Bookings by hour of day", Sources: rides, run: hourlyDemand},
	{Name: "data-integrity", Title: "Rides data integrity checks", Sources: rides, RowLevel: true, run: dataIntegrity},
}

// Entries returns the catalog in its fixed order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

func Lookup(name string) (Entry, error) {
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrUnknownReport, name)
}

// Sources returns the union of tables the given entries read, in a stable order.
func Sources(list ...Entry) []model.Source {
	seen := make(map[model.Source]bool)
	var out []model.Source
	for _, src := range []model.Source{model.SourceRides, model.SourceCustomers, model.SourceDaily} {
		for _, e := range list {
			for _, s := range e.Sources {
				if s == src && !seen[src] {
					seen[src] = true
					out = append(out, src)
				}
			}
		}
	}
	return out
}
