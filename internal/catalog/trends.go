package catalog

import (
	"slices"
	"strings"

	"ride-insights/internal/model"
)

// dailyRevenueTrend walks the days in date order carrying the previous day's revenue.
// The first day has no predecessor, and growth over a zero-revenue day is undefined.
func dailyRevenueTrend(s *Snapshot) model.Table {
	b := newTable("Date", "Total_Bookings", "Successful_Bookings", "Revenue", "Previous_Day_Revenue", "Revenue_Growth_Percent")

	days := slices.Clone(s.Days)
	slices.SortStableFunc(days, func(a, c model.DailySummary) int {
		return strings.Compare(a.Date, c.Date)
	})

	var (
		prev     *float64
		lastDate string
	)
	for _, d := range days {
		if d.TotalRevenue == nil {
			b.skip(d.Date, "daily summary without Total_Revenue")
			continue
		}
		if lastDate != "" && d.Date == lastDate {
			b.skip(d.Date, "duplicate daily summary date")
			continue
		}
		revenue := round2(*d.TotalRevenue)
		var growth *float64
		if prev != nil && *prev != 0 {
			growth = rounded((revenue - *prev) / *prev * 100)
		}
		b.add(d.Date, d.TotalBookings, d.SuccessfulBookings, revenue, num(prev), num(growth))

		current := revenue
		prev = &current
		lastDate = d.Date
	}
	return b.table()
}
