package catalog

import (
	"cmp"
	"slices"
	"strings"

	"ride-insights/internal/model"
)

const (
	minPickupBookings = 100
	topPickupLimit    = 10
)

func paymentMethodAnalysis(s *Snapshot) model.Table {
	b := newTable("Payment_Method", "Total_Transactions", "Total_Revenue", "Avg_Transaction_Value", "Usage_Percent")

	type group struct {
		method  string
		count   int
		revenue float64
	}
	groups := make(map[string]*group)
	var withPayment int
	for _, r := range s.Rides {
		if r.PaymentMethod == nil {
			continue
		}
		withPayment++
		if !r.IsSuccess() {
			continue
		}
		if r.BookingValue == nil {
			b.skip(r.BookingID, "successful booking without Booking_Value")
			continue
		}
		g, ok := groups[*r.PaymentMethod]
		if !ok {
			g = &group{method: *r.PaymentMethod}
			groups[*r.PaymentMethod] = g
		}
		g.count++
		g.revenue += *r.BookingValue
	}

	list := make([]*group, 0, len(groups))
	for _, g := range groups {
		list = append(list, g)
	}
	slices.SortFunc(list, func(a, c *group) int {
		if o := cmp.Compare(c.revenue, a.revenue); o != 0 {
			return o
		}
		return strings.Compare(a.method, c.method)
	})
	for _, g := range list {
		b.add(g.method, g.count, round2(g.revenue), num(mean(g.revenue, g.count)),
			num(percent(float64(g.count), float64(withPayment))))
	}
	return b.table()
}

func topPickupLocations(s *Snapshot) model.Table {
	b := newTable("Pickup_Location", "Total_Bookings", "Successful_Bookings", "Success_Rate", "Total_Revenue")

	type group struct {
		location       string
		total, success int
		revenue        float64
	}
	groups := make(map[string]*group)
	for _, r := range s.Rides {
		if strings.TrimSpace(r.PickupLocation) == "" {
			b.skip(r.BookingID, "booking without Pickup_Location")
			continue
		}
		g, ok := groups[r.PickupLocation]
		if !ok {
			g = &group{location: r.PickupLocation}
			groups[r.PickupLocation] = g
		}
		g.total++
		if r.IsSuccess() {
			g.success++
			if r.BookingValue != nil {
				g.revenue += *r.BookingValue
			}
		}
	}

	list := make([]*group, 0, len(groups))
	for _, g := range groups {
		if g.total >= minPickupBookings {
			list = append(list, g)
		}
	}
	slices.SortFunc(list, func(a, c *group) int {
		if o := cmp.Compare(c.total, a.total); o != 0 {
			return o
		}
		return strings.Compare(a.location, c.location)
	})
	for _, g := range take(list, topPickupLimit) {
		b.add(g.location, g.total, g.success, num(percent(float64(g.success), float64(g.total))), round2(g.revenue))
	}
	return b.table()
}
