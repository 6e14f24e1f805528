package ingest

import (
	"cmp"
	"slices"

	"ride-insights/internal/model"
)

// Dataset is everything one ingestion run writes.
type Dataset struct {
	Rides     []model.Ride
	Customers []model.CustomerSummary
	Days      []model.DailySummary
	Vehicles  []model.VehicleSummary
}

// nullableSum follows SQL SUM/AVG: null when no non-null input was seen.
type nullableSum struct {
	sum float64
	n   int
}

func (s *nullableSum) add(v *float64) {
	if v == nil {
		return
	}
	s.sum += *v
	s.n++
}

func (s nullableSum) total() *float64 {
	if s.n == 0 {
		return nil
	}
	v := s.sum
	return &v
}

func (s nullableSum) mean() *float64 {
	if s.n == 0 {
		return nil
	}
	v := s.sum / float64(s.n)
	return &v
}

// Summarize derives the customer, daily and vehicle summary tables from cleaned rides.
// Each output is ordered by its key.
func Summarize(rides []model.Ride) Dataset {
	type customerAcc struct {
		row    model.CustomerSummary
		spent  nullableSum
		rating nullableSum
	}
	type dayAcc struct {
		row     model.DailySummary
		revenue nullableSum
	}
	type vehicleAcc struct {
		row            model.VehicleSummary
		revenue        nullableSum
		distance       nullableSum
		driverRating   nullableSum
		customerRating nullableSum
	}

	customers := make(map[string]*customerAcc)
	days := make(map[string]*dayAcc)
	vehicles := make(map[string]*vehicleAcc)

	for _, r := range rides {
		success := int64(0)
		if r.IsSuccess() {
			success = 1
		}

		c, ok := customers[r.CustomerID]
		if !ok {
			c = &customerAcc{row: model.CustomerSummary{CustomerID: r.CustomerID}}
			customers[r.CustomerID] = c
		}
		c.row.TotalBookings++
		c.row.SuccessfulBookings += success
		c.spent.add(r.BookingValue)
		c.rating.add(r.CustomerRating)
		if r.Date > c.row.LastBookingDate {
			c.row.LastBookingDate = r.Date
		}

		d, ok := days[r.Date]
		if !ok {
			d = &dayAcc{row: model.DailySummary{Date: r.Date}}
			days[r.Date] = d
		}
		d.row.TotalBookings++
		d.row.SuccessfulBookings += success
		d.revenue.add(r.BookingValue)

		v, ok := vehicles[r.VehicleType]
		if !ok {
			v = &vehicleAcc{row: model.VehicleSummary{VehicleType: r.VehicleType}}
			vehicles[r.VehicleType] = v
		}
		v.row.TotalBookings++
		v.row.SuccessfulBookings += success
		v.revenue.add(r.BookingValue)
		v.distance.add(r.RideDistance)
		v.driverRating.add(r.DriverRatings)
		v.customerRating.add(r.CustomerRating)
	}

	out := Dataset{Rides: rides}
	for _, c := range customers {
		c.row.TotalSpent = c.spent.total()
		c.row.AvgRatingGiven = c.rating.mean()
		out.Customers = append(out.Customers, c.row)
	}
	for _, d := range days {
		d.row.TotalRevenue = d.revenue.total()
		d.row.AvgBookingValue = d.revenue.mean()
		out.Days = append(out.Days, d.row)
	}
	for _, v := range vehicles {
		v.row.TotalRevenue = v.revenue.total()
		v.row.AvgBookingValue = v.revenue.mean()
		v.row.TotalDistance = v.distance.total()
		v.row.AvgDistance = v.distance.mean()
		v.row.AvgDriverRating = v.driverRating.mean()
		v.row.AvgCustomerRating = v.customerRating.mean()
		out.Vehicles = append(out.Vehicles, v.row)
	}

	slices.SortFunc(out.Customers, func(a, b model.CustomerSummary) int { return cmp.Compare(a.CustomerID, b.CustomerID) })
	slices.SortFunc(out.Days, func(a, b model.DailySummary) int { return cmp.Compare(a.Date, b.Date) })
	slices.SortFunc(out.Vehicles, func(a, b model.VehicleSummary) int { return cmp.Compare(a.VehicleType, b.VehicleType) })
	return out
}
