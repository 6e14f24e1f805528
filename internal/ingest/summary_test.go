package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ride-insights/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestSummarize(t *testing.T) {
	rides := []model.Ride{
		{BookingID: "B1", Date: "2024-07-02", CustomerID: "C2", VehicleType: "Mini", StatusCategory: model.StatusSuccess, BookingValue: ptr(300.0), RideDistance: ptr(12.0), CustomerRating: ptr(4.0), DriverRatings: ptr(5.0)},
		{BookingID: "B2", Date: "2024-07-01", CustomerID: "C2", VehicleType: "Mini", StatusCategory: model.StatusCancelledByDriver, RideDistance: ptr(0.0)},
		{BookingID: "B3", Date: "2024-07-01", CustomerID: "C1", VehicleType: "Auto", StatusCategory: model.StatusSuccess, BookingValue: ptr(100.0), RideDistance: ptr(4.0), CustomerRating: ptr(5.0)},
		{BookingID: "B4", Date: "2024-07-02", CustomerID: "C1", VehicleType: "Auto", StatusCategory: model.StatusCancelledByCustomer, RideDistance: ptr(0.0)},
	}

	data := Summarize(rides)
	require.Len(t, data.Rides, 4)

	require.Equal(t, []string{"C1", "C2"}, []string{data.Customers[0].CustomerID, data.Customers[1].CustomerID})
	c2 := data.Customers[1]
	require.Equal(t, int64(2), c2.TotalBookings)
	require.Equal(t, int64(1), c2.SuccessfulBookings)
	require.Equal(t, 300.0, *c2.TotalSpent)
	require.Equal(t, 4.0, *c2.AvgRatingGiven)
	require.Equal(t, "2024-07-02", c2.LastBookingDate)

	require.Equal(t, "2024-07-01", data.Days[0].Date)
	day1 := data.Days[0]
	require.Equal(t, int64(2), day1.TotalBookings)
	require.Equal(t, 100.0, *day1.TotalRevenue)
	require.Equal(t, 100.0, *day1.AvgBookingValue, "average ignores null booking values")

	auto := data.Vehicles[0]
	require.Equal(t, "Auto", auto.VehicleType)
	require.Equal(t, 4.0, *auto.TotalDistance)
	require.Equal(t, 2.0, *auto.AvgDistance)
	require.Nil(t, auto.AvgDriverRating)
}

func TestSummarize_AllNullRevenue(t *testing.T) {
	data := Summarize([]model.Ride{
		{BookingID: "B1", Date: "2024-07-05", CustomerID: "C9", VehicleType: "Bike", StatusCategory: model.StatusCancelledByDriver},
	})

	require.Nil(t, data.Days[0].TotalRevenue)
	require.Nil(t, data.Customers[0].TotalSpent)
	require.Nil(t, data.Vehicles[0].TotalRevenue)
}
