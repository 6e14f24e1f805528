package catalog

import (
	"strings"

	"ride-insights/internal/model"
)

const (
	ratingMin = 0
	ratingMax = 5
)

// dataIntegrity reports the validation counters the ingestion contract promises to keep at zero.
func dataIntegrity(s *Snapshot) model.Table {
	b := newTable("Check", "Count")

	var missingCustomer, missingVehicle, missingStatus, missingDate int
	var negativeValue, negativeDistance, badDriverRating, badCustomerRating int
	var successWithoutValue, unknownCategory, duplicates int
	seen := make(map[string]struct{}, len(s.Rides))
	for _, r := range s.Rides {
		if _, dup := seen[r.BookingID]; dup {
			duplicates++
		}
		seen[r.BookingID] = struct{}{}

		if strings.TrimSpace(r.CustomerID) == "" {
			missingCustomer++
		}
		if strings.TrimSpace(r.VehicleType) == "" {
			missingVehicle++
		}
		if strings.TrimSpace(r.BookingStatus) == "" {
			missingStatus++
		}
		if strings.TrimSpace(r.Date) == "" {
			missingDate++
		}
		if r.BookingValue != nil && *r.BookingValue < 0 {
			negativeValue++
		}
		if r.RideDistance != nil && *r.RideDistance < 0 {
			negativeDistance++
		}
		if outOfRange(r.DriverRatings) {
			badDriverRating++
		}
		if outOfRange(r.CustomerRating) {
			badCustomerRating++
		}
		if r.IsSuccess() && r.BookingValue == nil {
			successWithoutValue++
		}
		if !r.StatusCategory.Valid() {
			unknownCategory++
		}
	}

	b.add("total_rows", len(s.Rides))
	b.add("unique_booking_ids", len(seen))
	b.add("duplicate_booking_ids", duplicates)
	b.add("missing_customer_ids", missingCustomer)
	b.add("missing_vehicle_types", missingVehicle)
	b.add("missing_booking_status", missingStatus)
	b.add("missing_dates", missingDate)
	b.add("negative_booking_values", negativeValue)
	b.add("negative_distances", negativeDistance)
	b.add("invalid_driver_ratings", badDriverRating)
	b.add("invalid_customer_ratings", badCustomerRating)
	b.add("successful_without_booking_value", successWithoutValue)
	b.add("unknown_status_categories", unknownCategory)
	return b.table()
}

func outOfRange(v *float64) bool {
	return v != nil && (*v < ratingMin || *v > ratingMax)
}
