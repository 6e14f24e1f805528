package catalog

import "ride-insights/internal/model"

// Snapshot is the read-only data a report runs against. It is loaded once per run
// and never mutated; reports copy before sorting.
type Snapshot struct {
	Rides     []model.Ride
	Customers []model.CustomerSummary
	Days      []model.DailySummary
}
