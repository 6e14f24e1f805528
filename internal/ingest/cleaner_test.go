package ingest

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"ride-insights/internal/model"
)

func rec(fields map[string]string) Record {
	out := Record{
		"Booking_ID": "", "Date": "2024-07-01", "Time": "08:30:00", "Booking_Status": "Success",
		"Customer_ID": "C1", "Vehicle_Type": "Mini", "Pickup_Location": "Koramangala",
		"Drop_Location": "Indiranagar", "V_TAT": "null", "C_TAT": "null",
		"Canceled_Rides_by_Customer": "null", "Canceled_Rides_by_Driver": "null",
		"Incomplete_Rides": "null", "Incomplete_Rides_Reason": "null", "Booking_Value": "null",
		"Payment_Method": "null", "Ride_Distance": "null", "Driver_Ratings": "null", "Customer_Rating": "null",
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func clean(t *testing.T, records ...Record) ([]model.Ride, Stats) {
	t.Helper()
	rides, stats, err := NewCleaner(zerolog.Nop()).Clean(records)
	require.NoError(t, err)
	return rides, stats
}

func TestClean_SuccessRide(t *testing.T) {
	rides, stats := clean(t, rec(map[string]string{
		"Booking_ID": "CNR1", "Date": "2024-07-03", "Time": "17:45:10",
		"Booking_Value": "250", "Ride_Distance": "10", "Driver_Ratings": "4.5", "Customer_Rating": "4.8",
	}))

	require.Len(t, rides, 1)
	r := rides[0]
	require.Equal(t, model.StatusSuccess, r.StatusCategory)
	require.Equal(t, "2024-07-03", r.Date)
	require.Equal(t, "17:45:10", r.Time)
	require.Equal(t, 17, r.Hour)
	require.Equal(t, "Wednesday", r.Weekday)
	require.Equal(t, "Cash", *r.PaymentMethod, "missing payment on success defaults to cash")
	require.InDelta(t, 25.0, *r.RevenuePerKM, 1e-9)
	require.Nil(t, r.VTAT)
	require.Equal(t, 1, stats.PaymentDefaulted)
	require.Equal(t, 1, stats.ByCategory[model.StatusSuccess])
}

func TestClean_CancelledRide(t *testing.T) {
	rides, _ := clean(t, rec(map[string]string{
		"Booking_ID": "CNR2", "Booking_Status": "Canceled by Customer",
		"Canceled_Rides_by_Customer": "Driver is not moving towards pickup location",
	}))

	r := rides[0]
	require.Equal(t, model.StatusCancelledByCustomer, r.StatusCategory)
	require.Equal(t, 0.0, *r.RideDistance, "non-success distance defaults to zero")
	require.Nil(t, r.PaymentMethod)
	require.Nil(t, r.RevenuePerKM)
	require.Equal(t, "Driver is not moving towards pickup location", *r.CanceledByCustomer)
}

func TestClean_IncompleteFlag(t *testing.T) {
	rides, _ := clean(t, rec(map[string]string{
		"Booking_ID": "CNR3", "Booking_Status": "Driver Not Found", "Incomplete_Rides": "Yes",
	}))
	require.Equal(t, model.StatusCancelledByDriver, rides[0].StatusCategory, "status text wins over the flag")

	rides, _ = clean(t, rec(map[string]string{
		"Booking_ID": "CNR4", "Booking_Status": "Dropped", "Incomplete_Rides": "Yes",
	}))
	require.Equal(t, model.StatusIncomplete, rides[0].StatusCategory)
}

func TestClean_Drops(t *testing.T) {
	rides, stats := clean(t,
		rec(map[string]string{"Booking_ID": "null"}),
		rec(map[string]string{"Booking_ID": "CNR1"}),
		rec(map[string]string{"Booking_ID": "CNR1"}),
		rec(map[string]string{"Booking_ID": "CNR2", "Date": "someday"}),
		rec(map[string]string{"Booking_ID": "CNR3", "Time": ""}),
		rec(map[string]string{"Booking_ID": "CNR4", "Booking_Value": "-10"}),
		rec(map[string]string{"Booking_ID": "CNR5", "Ride_Distance": "-1", "Booking_Status": "Canceled by Driver"}),
	)

	require.Len(t, rides, 1)
	require.Equal(t, 7, stats.Read)
	require.Equal(t, 1, stats.Kept)
	require.Equal(t, 1, stats.DroppedMissingKey)
	require.Equal(t, 1, stats.DroppedDuplicate)
	require.Equal(t, 2, stats.DroppedInvalidDate)
	require.Equal(t, 2, stats.DroppedNegative)
	require.Equal(t, stats.Read, stats.Kept+stats.Dropped())
}

func TestClean_CoercesBadNumbers(t *testing.T) {
	rides, stats := clean(t, rec(map[string]string{
		"Booking_ID": "CNR1", "Booking_Value": "abc", "Ride_Distance": "1,250", "Customer_Rating": "NaN",
	}))

	r := rides[0]
	require.Nil(t, r.BookingValue)
	require.Equal(t, 1250.0, *r.RideDistance)
	require.Nil(t, r.CustomerRating)
	require.Nil(t, r.RevenuePerKM)
	require.Equal(t, 1, stats.CoercedToNull)
}

func TestClean_DateAndTimeLayouts(t *testing.T) {
	tests := []struct {
		date, time  string
		wantDate    string
		wantTime    string
		wantWeekday string
	}{
		{"2024-07-01 00:00:00", "2024-07-01 09:05:00", "2024-07-01", "09:05:00", "Monday"},
		{"7/2/2024", "9:05 PM", "2024-07-02", "21:05:00", "Tuesday"},
		{"45474", "0.5", "2024-07-01", "12:00:00", "Monday"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			rides, _ := clean(t, rec(map[string]string{"Booking_ID": "CNR1", "Date": tt.date, "Time": tt.time}))
			require.Len(t, rides, 1)
			require.Equal(t, tt.wantDate, rides[0].Date)
			require.Equal(t, tt.wantTime, rides[0].Time)
			require.Equal(t, tt.wantWeekday, rides[0].Weekday)
		})
	}
}

func TestClean_MissingHeaders(t *testing.T) {
	_, _, err := NewCleaner(zerolog.Nop()).Clean([]Record{{"Booking_ID": "CNR1", "Date": "2024-07-01"}})
	require.ErrorContains(t, err, "Booking_Status")
}
