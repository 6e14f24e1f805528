package catalog

import (
	"math"
	"slices"
	"strings"

	"ride-insights/internal/model"
)

const (
	primeSedan      = "Prime Sedan"
	highRatingFloor = 4.0
)

func avgDistanceByVehicle(s *Snapshot) model.Table {
	b := newTable("Vehicle_Type", "Total_Rides", "Avg_Distance", "Min_Distance", "Max_Distance", "Total_Distance")

	type group struct {
		vehicle       string
		count         int
		sum, min, max float64
		avg           *float64
	}
	groups := make(map[string]*group)
	var order []string
	for _, r := range s.Rides {
		if !r.IsSuccess() {
			continue
		}
		if r.RideDistance == nil {
			b.skip(r.BookingID, "successful booking without Ride_Distance")
			continue
		}
		d := *r.RideDistance
		if d <= 0 {
			continue
		}
		g, ok := groups[r.VehicleType]
		if !ok {
			g = &group{vehicle: r.VehicleType, min: math.Inf(1), max: math.Inf(-1)}
			groups[r.VehicleType] = g
			order = append(order, r.VehicleType)
		}
		g.count++
		g.sum += d
		g.min = math.Min(g.min, d)
		g.max = math.Max(g.max, d)
	}

	list := make([]*group, 0, len(order))
	for _, v := range order {
		g := groups[v]
		g.avg = mean(g.sum, g.count)
		list = append(list, g)
	}
	slices.SortFunc(list, func(a, c *group) int {
		if o := compareDesc(a.avg, c.avg); o != 0 {
			return o
		}
		return strings.Compare(a.vehicle, c.vehicle)
	})
	for _, g := range list {
		b.add(g.vehicle, g.count, num(g.avg), round2(g.min), round2(g.max), round2(g.sum))
	}
	return b.table()
}

func avgCustomerRatingByVehicle(s *Snapshot) model.Table {
	b := newTable("Vehicle_Type", "Rated_Rides", "Avg_Customer_Rating")

	type group struct {
		vehicle string
		count   int
		sum     float64
		avg     *float64
	}
	groups := make(map[string]*group)
	for _, r := range s.Rides {
		if !r.IsSuccess() || r.CustomerRating == nil {
			continue
		}
		g, ok := groups[r.VehicleType]
		if !ok {
			g = &group{vehicle: r.VehicleType}
			groups[r.VehicleType] = g
		}
		g.count++
		g.sum += *r.CustomerRating
	}

	list := make([]*group, 0, len(groups))
	for _, g := range groups {
		g.avg = mean(g.sum, g.count)
		list = append(list, g)
	}
	slices.SortFunc(list, func(a, c *group) int {
		if o := compareDesc(a.avg, c.avg); o != 0 {
			return o
		}
		return strings.Compare(a.vehicle, c.vehicle)
	})
	for _, g := range list {
		b.add(g.vehicle, g.count, num(g.avg))
	}
	return b.table()
}

func primeSedanDriverRatings(s *Snapshot) model.Table {
	b := newTable("Vehicle_Type", "Rated_Rides", "Max_Driver_Rating", "Min_Driver_Rating", "Avg_Driver_Rating")

	var (
		count           int
		sum             float64
		lowest, highest *float64
	)
	for _, r := range s.Rides {
		if r.VehicleType != primeSedan || !r.IsSuccess() || r.DriverRatings == nil {
			continue
		}
		v := *r.DriverRatings
		count++
		sum += v
		if highest == nil || v > *highest {
			highest = &v
		}
		if lowest == nil || v < *lowest {
			lowest = &v
		}
	}
	if highest != nil {
		highest = rounded(*highest)
		lowest = rounded(*lowest)
	}
	b.add(primeSedan, count, num(highest), num(lowest), num(mean(sum, count)))
	return b.table()
}

func highRatedRidesByVehicle(s *Snapshot) model.Table {
	b := newTable("Vehicle_Type", "Rated_Rides", "High_Rated_Rides", "High_Rated_Percent")

	type group struct {
		vehicle     string
		rated, high int
		share       *float64
	}
	groups := make(map[string]*group)
	for _, r := range s.Rides {
		if !r.IsSuccess() || r.DriverRatings == nil || r.CustomerRating == nil {
			continue
		}
		g, ok := groups[r.VehicleType]
		if !ok {
			g = &group{vehicle: r.VehicleType}
			groups[r.VehicleType] = g
		}
		g.rated++
		if *r.DriverRatings >= highRatingFloor && *r.CustomerRating >= highRatingFloor {
			g.high++
		}
	}

	list := make([]*group, 0, len(groups))
	for _, g := range groups {
		g.share = percent(float64(g.high), float64(g.rated))
		list = append(list, g)
	}
	slices.SortFunc(list, func(a, c *group) int {
		if o := compareDesc(a.share, c.share); o != 0 {
			return o
		}
		return strings.Compare(a.vehicle, c.vehicle)
	})
	for _, g := range list {
		b.add(g.vehicle, g.rated, g.high, num(g.share))
	}
	return b.table()
}

func vehiclePerformance(s *Snapshot) model.Table {
	b := newTable("Vehicle_Type", "Total_Bookings", "Successful_Bookings", "Success_Rate", "Total_Revenue",
		"Avg_Booking_Value", "Avg_Distance", "Avg_Driver_Rating", "Avg_Customer_Rating")

	type group struct {
		vehicle                           string
		total, success                    int
		revenue                           float64
		valued, distances, drivers, custs int
		distance, driverSum, custSum      float64
	}
	groups := make(map[string]*group)
	for _, r := range s.Rides {
		g, ok := groups[r.VehicleType]
		if !ok {
			g = &group{vehicle: r.VehicleType}
			groups[r.VehicleType] = g
		}
		g.total++
		if !r.IsSuccess() {
			continue
		}
		g.success++
		if r.BookingValue == nil {
			b.skip(r.BookingID, "successful booking without Booking_Value")
		} else {
			g.revenue += *r.BookingValue
			g.valued++
		}
		if r.RideDistance != nil {
			g.distance += *r.RideDistance
			g.distances++
		}
		if r.DriverRatings != nil {
			g.driverSum += *r.DriverRatings
			g.drivers++
		}
		if r.CustomerRating != nil {
			g.custSum += *r.CustomerRating
			g.custs++
		}
	}

	list := make([]*group, 0, len(groups))
	for _, g := range groups {
		list = append(list, g)
	}
	slices.SortFunc(list, func(a, c *group) int {
		if a.revenue != c.revenue {
			if a.revenue > c.revenue {
				return -1
			}
			return 1
		}
		return strings.Compare(a.vehicle, c.vehicle)
	})
	for _, g := range list {
		b.add(g.vehicle, g.total, g.success, num(percent(float64(g.success), float64(g.total))), round2(g.revenue),
			num(mean(g.revenue, g.valued)), num(mean(g.distance, g.distances)),
			num(mean(g.driverSum, g.drivers)), num(mean(g.custSum, g.custs)))
	}
	return b.table()
}
