package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"ride-insights/internal/model"
)

// RequiredHeaders must be present in every source file.
var RequiredHeaders = []string{
	"Booking_ID", "Date", "Time", "Booking_Status", "Customer_ID", "Vehicle_Type",
}

const defaultPaymentMethod = "Cash"

var nullTokens = map[string]bool{
	"": true, "null": true, "none": true, "nan": true, "n/a": true, "na": true,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"1/2/2006",
	"1/2/06",
	"01-02-06",
	"02-01-2006",
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Stats summarises one cleaning pass.
type Stats struct {
	Read               int                          `json:"read"`
	Kept               int                          `json:"kept"`
	DroppedMissingKey  int                          `json:"dropped_missing_key"`
	DroppedInvalidDate int                          `json:"dropped_invalid_date"`
	DroppedNegative    int                          `json:"dropped_negative"`
	DroppedDuplicate   int                          `json:"dropped_duplicate"`
	CoercedToNull      int                          `json:"coerced_to_null"`
	PaymentDefaulted   int                          `json:"payment_defaulted"`
	ByCategory         map[model.StatusCategory]int `json:"by_category"`
}

func (s Stats) Dropped() int {
	return s.DroppedMissingKey + s.DroppedInvalidDate + s.DroppedNegative + s.DroppedDuplicate
}

// SuccessRate is the share of kept rides that succeeded, in percent.
func (s Stats) SuccessRate() float64 {
	if s.Kept == 0 {
		return 0
	}
	return float64(s.ByCategory[model.StatusSuccess]) / float64(s.Kept) * 100
}

type Cleaner struct {
	log zerolog.Logger
}

func NewCleaner(log zerolog.Logger) *Cleaner {
	return &Cleaner{log: log.With().Str("component", "cleaner").Logger()}
}

// Clean turns raw records into rides. Rows that cannot be keyed, dated or that
// carry negative amounts are dropped; unparseable optional numbers become null.
func (c *Cleaner) Clean(records []Record) ([]model.Ride, Stats, error) {
	stats := Stats{Read: len(records), ByCategory: make(map[model.StatusCategory]int)}
	if len(records) > 0 {
		var missing []string
		for _, h := range RequiredHeaders {
			if _, ok := records[0][h]; !ok {
				missing = append(missing, h)
			}
		}
		if len(missing) > 0 {
			return nil, stats, fmt.Errorf("source is missing columns: %s", strings.Join(missing, ", "))
		}
	}

	seen := make(map[string]bool, len(records))
	rides := make([]model.Ride, 0, len(records))
	for i, rec := range records {
		line := i + 2

		id := nullable(rec["Booking_ID"])
		if id == nil {
			stats.DroppedMissingKey++
			c.log.Warn().Int("line", line).Msg("row without Booking_ID dropped")
			continue
		}
		if seen[*id] {
			stats.DroppedDuplicate++
			c.log.Warn().Str("booking_id", *id).Msg("duplicate Booking_ID dropped")
			continue
		}

		day, err := parseDate(rec["Date"])
		if err != nil {
			stats.DroppedInvalidDate++
			c.log.Warn().Str("booking_id", *id).Err(err).Msg("row dropped")
			continue
		}
		clock, err := parseClock(rec["Time"])
		if err != nil {
			stats.DroppedInvalidDate++
			c.log.Warn().Str("booking_id", *id).Err(err).Msg("row dropped")
			continue
		}

		ride := model.Ride{
			BookingID:          *id,
			Date:               day.Format("2006-01-02"),
			Time:               clock.Format("15:04:05"),
			Hour:               clock.Hour(),
			Weekday:            day.Weekday().String(),
			CustomerID:         strings.TrimSpace(rec["Customer_ID"]),
			VehicleType:        strings.TrimSpace(rec["Vehicle_Type"]),
			PickupLocation:     strings.TrimSpace(rec["Pickup_Location"]),
			DropLocation:       strings.TrimSpace(rec["Drop_Location"]),
			BookingStatus:      strings.TrimSpace(rec["Booking_Status"]),
			CanceledByCustomer: nullable(rec["Canceled_Rides_by_Customer"]),
			CanceledByDriver:   nullable(rec["Canceled_Rides_by_Driver"]),
			IncompleteRides:    nullable(rec["Incomplete_Rides"]),
			IncompleteReason:   nullable(rec["Incomplete_Rides_Reason"]),
			PaymentMethod:      nullable(rec["Payment_Method"]),
		}
		ride.StatusCategory = model.CategorizeStatus(ride.BookingStatus, ride.IncompleteRides)

		numbers := []struct {
			column string
			dst    **float64
		}{
			{"V_TAT", &ride.VTAT},
			{"C_TAT", &ride.CTAT},
			{"Booking_Value", &ride.BookingValue},
			{"Ride_Distance", &ride.RideDistance},
			{"Driver_Ratings", &ride.DriverRatings},
			{"Customer_Rating", &ride.CustomerRating},
		}
		for _, n := range numbers {
			v, ok := parseNumber(rec[n.column])
			if !ok {
				stats.CoercedToNull++
				c.log.Warn().Str("booking_id", ride.BookingID).Str("column", n.column).Str("value", rec[n.column]).Msg("non-numeric value set to null")
			}
			*n.dst = v
		}

		if isNegative(ride.BookingValue) || isNegative(ride.RideDistance) {
			stats.DroppedNegative++
			c.log.Warn().Str("booking_id", ride.BookingID).Msg("row with negative value or distance dropped")
			continue
		}

		if ride.IsSuccess() {
			if ride.PaymentMethod == nil {
				method := defaultPaymentMethod
				ride.PaymentMethod = &method
				stats.PaymentDefaulted++
			}
			if ride.RideDistance != nil && *ride.RideDistance > 0 && ride.BookingValue != nil {
				perKM := *ride.BookingValue / *ride.RideDistance
				ride.RevenuePerKM = &perKM
			}
		} else if ride.RideDistance == nil {
			zero := 0.0
			ride.RideDistance = &zero
		}

		seen[ride.BookingID] = true
		stats.ByCategory[ride.StatusCategory]++
		rides = append(rides, ride)
	}

	stats.Kept = len(rides)
	c.log.Info().
		Int("read", stats.Read).
		Int("kept", stats.Kept).
		Int("dropped", stats.Dropped()).
		Int("coerced_to_null", stats.CoercedToNull).
		Str("success_rate", strconv.FormatFloat(stats.SuccessRate(), 'f', 2, 64)).
		Msg("cleaning finished")

	return rides, stats, nil
}

func nullable(raw string) *string {
	v := strings.TrimSpace(raw)
	if nullTokens[strings.ToLower(v)] {
		return nil
	}
	return &v
}

// parseNumber returns nil for null tokens. ok is false when a non-null value did not parse.
func parseNumber(raw string) (*float64, bool) {
	v := nullable(raw)
	if v == nil {
		return nil, true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(*v, ",", ""), 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}

func isNegative(v *float64) bool {
	return v != nil && *v < 0
}

func parseDate(raw string) (time.Time, error) {
	v := nullable(raw)
	if v == nil {
		return time.Time{}, fmt.Errorf("missing Date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *v); err == nil {
			return t, nil
		}
	}
	// Unformatted workbook cells carry the spreadsheet serial number.
	if serial, err := strconv.ParseFloat(*v, 64); err == nil && serial >= 1 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised Date %q", *v)
}

func parseClock(raw string) (time.Time, error) {
	v := nullable(raw)
	if v == nil {
		return time.Time{}, fmt.Errorf("missing Time")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, *v); err == nil {
			return t, nil
		}
	}
	if fraction, err := strconv.ParseFloat(*v, 64); err == nil && fraction >= 0 && fraction < 1 {
		seconds := min(int(fraction*86400+0.5), 86399)
		return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(seconds) * time.Second), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised Time %q", *v)
}
