package catalog

import (
	"cmp"
	"slices"
	"strings"

	"ride-insights/internal/model"
)

const paymentUPI = "UPI"

func successfulBookings(s *Snapshot) model.Table {
	b := newTable("Booking_ID", "Date", "Customer_ID", "Vehicle_Type", "Pickup_Location", "Drop_Location",
		"Booking_Value", "Payment_Method", "Ride_Distance", "Driver_Ratings", "Customer_Rating")

	rows := filterRides(s.Rides, model.Ride.IsSuccess)
	sortByDateDesc(rows)
	for _, r := range rows {
		b.add(r.BookingID, r.Date, r.CustomerID, r.VehicleType, r.PickupLocation, r.DropLocation,
			num(r.BookingValue), text(r.PaymentMethod), num(r.RideDistance), num(r.DriverRatings), num(r.CustomerRating))
	}
	return b.table()
}

func upiPayments(s *Snapshot) model.Table {
	b := newTable("Booking_ID", "Date", "Customer_ID", "Vehicle_Type", "Booking_Status", "Booking_Value")

	rows := filterRides(s.Rides, func(r model.Ride) bool {
		return r.PaymentMethod != nil && *r.PaymentMethod == paymentUPI
	})
	sortByDateDesc(rows)
	for _, r := range rows {
		b.add(r.BookingID, r.Date, r.CustomerID, r.VehicleType, r.BookingStatus, num(r.BookingValue))
	}
	return b.table()
}

func incompleteRides(s *Snapshot) model.Table {
	b := newTable("Booking_ID", "Date", "Customer_ID", "Vehicle_Type", "Incomplete_Rides_Reason")

	rows := filterRides(s.Rides, func(r model.Ride) bool {
		return r.StatusCategory == model.StatusIncomplete
	})
	sortByDateDesc(rows)
	for _, r := range rows {
		b.add(r.BookingID, r.Date, r.CustomerID, r.VehicleType, reasonOrDefault(r.IncompleteReason))
	}
	return b.table()
}

func overviewMetrics(s *Snapshot) model.Table {
	b := newTable("Total_Bookings", "Successful_Bookings", "Success_Rate", "Total_Revenue", "Unique_Customers",
		"Avg_Driver_Rating", "Avg_Customer_Rating", "Total_Distance")

	var (
		successful                     int
		revenue, distance              float64
		driverSum, customerSum         float64
		driverRatings, customerRatings int
		customers                      = make(map[string]struct{})
	)
	for _, r := range s.Rides {
		customers[r.CustomerID] = struct{}{}
		if !r.IsSuccess() {
			continue
		}
		successful++
		if r.BookingValue == nil {
			b.skip(r.BookingID, "successful booking without Booking_Value")
		} else {
			revenue += *r.BookingValue
		}
		if r.RideDistance != nil {
			distance += *r.RideDistance
		}
		if r.DriverRatings != nil {
			driverSum += *r.DriverRatings
			driverRatings++
		}
		if r.CustomerRating != nil {
			customerSum += *r.CustomerRating
			customerRatings++
		}
	}

	b.add(len(s.Rides), successful, num(percent(float64(successful), float64(len(s.Rides)))),
		round2(revenue), len(customers), num(mean(driverSum, driverRatings)),
		num(mean(customerSum, customerRatings)), round2(distance))
	return b.table()
}

func totalSuccessfulRevenue(s *Snapshot) model.Table {
	b := newTable("Successful_Rides", "Total_Booking_Value")

	var successful int
	var total float64
	for _, r := range s.Rides {
		if !r.IsSuccess() {
			continue
		}
		if r.BookingValue == nil {
			b.skip(r.BookingID, "successful booking without Booking_Value")
			continue
		}
		successful++
		total += *r.BookingValue
	}
	b.add(successful, round2(total))
	return b.table()
}

func bookingStatusDistribution(s *Snapshot) model.Table {
	b := newTable("Status_Category", "Count", "Percentage")

	counts := make(map[model.StatusCategory]int)
	var counted int
	for _, r := range s.Rides {
		if !r.StatusCategory.Valid() {
			b.skip(r.BookingID, "unknown Status_Category "+string(r.StatusCategory))
			continue
		}
		counts[r.StatusCategory]++
		counted++
	}

	present := make([]model.StatusCategory, 0, len(counts))
	for _, c := range model.StatusCategories {
		if counts[c] > 0 {
			present = append(present, c)
		}
	}
	// Stable sort keeps the category display order on equal counts.
	slices.SortStableFunc(present, func(a, c model.StatusCategory) int {
		return cmp.Compare(counts[c], counts[a])
	})
	for _, c := range present {
		b.add(c.Label(), counts[c], num(percent(float64(counts[c]), float64(counted))))
	}
	return b.table()
}

func hourlyDemand(s *Snapshot) model.Table {
	b := newTable("Hour", "Total_Bookings", "Successful_Bookings", "Cancelled_Bookings", "Success_Rate")

	type bucket struct{ total, success, cancelled int }
	var hours [24]bucket
	for _, r := range s.Rides {
		if r.Hour < 0 || r.Hour > 23 {
			b.skip(r.BookingID, "Hour out of range")
			continue
		}
		h := &hours[r.Hour]
		h.total++
		switch r.StatusCategory {
		case model.StatusSuccess:
			h.success++
		case model.StatusCancelledByCustomer, model.StatusCancelledByDriver:
			h.cancelled++
		}
	}
	for hour, h := range hours {
		if h.total == 0 {
			continue
		}
		b.add(hour, h.total, h.success, h.cancelled, num(percent(float64(h.success), float64(h.total))))
	}
	return b.table()
}

func filterRides(rides []model.Ride, keep func(model.Ride) bool) []model.Ride {
	out := make([]model.Ride, 0)
	for _, r := range rides {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// sortByDateDesc sorts newest first; equal dates keep their input order.
func sortByDateDesc(rows []model.Ride) {
	slices.SortStableFunc(rows, func(a, b model.Ride) int {
		return strings.Compare(b.Date, a.Date)
	})
}
