package catalog

import (
	"cmp"
	"slices"
	"strings"

	"ride-insights/internal/model"
)

// minPatternBookings suppresses (vehicle, hour) groups too small to read a rate from.
const minPatternBookings = 10

func customerCancellationRate(s *Snapshot) model.Table {
	return cancellationRate(s, model.StatusCancelledByCustomer, "Cancelled_By_Customer")
}

func driverCancellationRate(s *Snapshot) model.Table {
	return cancellationRate(s, model.StatusCancelledByDriver, "Cancelled_By_Driver")
}

func cancellationRate(s *Snapshot, category model.StatusCategory, column string) model.Table {
	b := newTable("Total_Bookings", column, "Cancellation_Rate")

	var cancelled int
	for _, r := range s.Rides {
		if r.StatusCategory == category {
			cancelled++
		}
	}
	b.add(len(s.Rides), cancelled, num(percent(float64(cancelled), float64(len(s.Rides)))))
	return b.table()
}

func driverCancellationReasons(s *Snapshot) model.Table {
	return cancellationReasons(s, model.StatusCancelledByDriver, func(r model.Ride) *string { return r.CanceledByDriver })
}

func customerCancellationReasons(s *Snapshot) model.Table {
	return cancellationReasons(s, model.StatusCancelledByCustomer, func(r model.Ride) *string { return r.CanceledByCustomer })
}

func cancellationReasons(s *Snapshot, category model.StatusCategory, reason func(model.Ride) *string) model.Table {
	b := newTable("Reason", "Count", "Share_Percent")

	counts := make(map[string]int)
	var total int
	for _, r := range s.Rides {
		if r.StatusCategory != category {
			continue
		}
		counts[reasonOrDefault(reason(r))]++
		total++
	}

	reasons := make([]string, 0, len(counts))
	for k := range counts {
		reasons = append(reasons, k)
	}
	slices.SortFunc(reasons, func(a, c string) int {
		if o := cmp.Compare(counts[c], counts[a]); o != 0 {
			return o
		}
		return strings.Compare(a, c)
	})
	for _, k := range reasons {
		b.add(k, counts[k], num(percent(float64(counts[k]), float64(total))))
	}
	return b.table()
}

func cancellationPatternByVehicleHour(s *Snapshot) model.Table {
	b := newTable("Vehicle_Type", "Hour", "Total_Bookings", "Customer_Cancellations", "Driver_Cancellations",
		"Customer_Cancel_Rate", "Driver_Cancel_Rate", "Cancellation_Rate")

	type key struct {
		vehicle string
		hour    int
	}
	type group struct {
		key
		total, byCustomer, byDriver int
		rate                        *float64
	}
	groups := make(map[key]*group)
	for _, r := range s.Rides {
		k := key{vehicle: r.VehicleType, hour: r.Hour}
		g, ok := groups[k]
		if !ok {
			g = &group{key: k}
			groups[k] = g
		}
		g.total++
		switch r.StatusCategory {
		case model.StatusCancelledByCustomer:
			g.byCustomer++
		case model.StatusCancelledByDriver:
			g.byDriver++
		}
	}

	list := make([]*group, 0, len(groups))
	for _, g := range groups {
		if g.total < minPatternBookings {
			continue
		}
		g.rate = percent(float64(g.byCustomer+g.byDriver), float64(g.total))
		list = append(list, g)
	}
	slices.SortFunc(list, func(a, c *group) int {
		if o := strings.Compare(a.vehicle, c.vehicle); o != 0 {
			return o
		}
		if o := compareDesc(a.rate, c.rate); o != 0 {
			return o
		}
		return cmp.Compare(a.hour, c.hour)
	})
	for _, g := range list {
		total := float64(g.total)
		b.add(g.vehicle, g.hour, g.total, g.byCustomer, g.byDriver,
			num(percent(float64(g.byCustomer), total)), num(percent(float64(g.byDriver), total)), num(g.rate))
	}
	return b.table()
}
