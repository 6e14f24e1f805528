package catalog

import (
	"cmp"
	"slices"
	"strings"

	"ride-insights/internal/model"
)

const (
	topByBookingsLimit = 5
	topBySpendLimit    = 10
)

// Segment thresholds on Total_Spent, evaluated top-down.
const (
	highValueFloor   = 5000
	mediumValueFloor = 2000
	regularFloor     = 500
)

const (
	SegmentHighValue   = "High Value"
	SegmentMediumValue = "Medium Value"
	SegmentRegular     = "Regular"
	SegmentOccasional  = "Occasional"
)

// Segments lists the value segments from highest to lowest.
var Segments = []string{SegmentHighValue, SegmentMediumValue, SegmentRegular, SegmentOccasional}

// Segment places a customer's total spend on the value ladder. The first matching rung wins.
func Segment(spent float64) string {
	switch {
	case spent >= highValueFloor:
		return SegmentHighValue
	case spent >= mediumValueFloor:
		return SegmentMediumValue
	case spent >= regularFloor:
		return SegmentRegular
	default:
		return SegmentOccasional
	}
}

type customerActivity struct {
	id              string
	total, success  int
	valued          int
	spent           float64
	successRate     *float64
	avgBookingValue *float64
}

func aggregateCustomers(b *tableBuilder, rides []model.Ride) []*customerActivity {
	byID := make(map[string]*customerActivity)
	for _, r := range rides {
		c, ok := byID[r.CustomerID]
		if !ok {
			c = &customerActivity{id: r.CustomerID}
			byID[r.CustomerID] = c
		}
		c.total++
		if !r.IsSuccess() {
			continue
		}
		c.success++
		if r.BookingValue == nil {
			b.skip(r.BookingID, "successful booking without Booking_Value")
			continue
		}
		c.valued++
		c.spent += *r.BookingValue
	}

	out := make([]*customerActivity, 0, len(byID))
	for _, c := range byID {
		c.successRate = percent(float64(c.success), float64(c.total))
		c.avgBookingValue = mean(c.spent, c.valued)
		out = append(out, c)
	}
	return out
}

func addCustomerRows(b *tableBuilder, list []*customerActivity) {
	for _, c := range list {
		b.add(c.id, c.total, c.success, round2(c.spent), num(c.avgBookingValue), num(c.successRate))
	}
}

var customerColumns = []string{"Customer_ID", "Total_Bookings", "Successful_Bookings", "Total_Spent", "Avg_Booking_Value", "Success_Rate"}

func topCustomersByBookings(s *Snapshot) model.Table {
	b := newTable(customerColumns...)

	list := aggregateCustomers(b, s.Rides)
	slices.SortFunc(list, func(a, c *customerActivity) int {
		if o := cmp.Compare(c.total, a.total); o != 0 {
			return o
		}
		return strings.Compare(a.id, c.id)
	})
	addCustomerRows(b, take(list, topByBookingsLimit))
	return b.table()
}

func topCustomersBySpend(s *Snapshot) model.Table {
	b := newTable(customerColumns...)

	list := aggregateCustomers(b, s.Rides)
	list = slices.DeleteFunc(list, func(c *customerActivity) bool { return c.spent <= 0 })
	slices.SortFunc(list, func(a, c *customerActivity) int {
		if o := cmp.Compare(c.spent, a.spent); o != 0 {
			return o
		}
		return strings.Compare(a.id, c.id)
	})
	addCustomerRows(b, take(list, topBySpendLimit))
	return b.table()
}

func customerSegmentation(s *Snapshot) model.Table {
	b := newTable("Segment", "Customer_Count", "Total_Revenue", "Avg_Spent", "Revenue_Share_Percent")

	type segment struct {
		count   int
		revenue float64
	}
	segments := make(map[string]*segment, len(Segments))
	for _, name := range Segments {
		segments[name] = &segment{}
	}

	var total float64
	for _, c := range s.Customers {
		if c.TotalSpent == nil {
			b.skip(c.CustomerID, "customer summary without Total_Spent")
			continue
		}
		seg := segments[Segment(*c.TotalSpent)]
		seg.count++
		seg.revenue += *c.TotalSpent
		total += *c.TotalSpent
	}

	for _, name := range Segments {
		seg := segments[name]
		b.add(name, seg.count, round2(seg.revenue), num(mean(seg.revenue, seg.count)), num(percent(seg.revenue, total)))
	}
	return b.table()
}
