package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ride-insights/internal/export"
	"ride-insights/internal/metrics"
	"ride-insights/internal/model"
)

type Pipeline struct {
	reader   *Reader
	cleaner  *Cleaner
	loader   *Loader
	cleanCSV string
	log      zerolog.Logger
}

// Result describes a finished ingestion run.
type Result struct {
	RunID     uuid.UUID     `json:"run_id"`
	Source    string        `json:"source"`
	Stats     Stats         `json:"stats"`
	Customers int           `json:"customers"`
	Days      int           `json:"days"`
	Vehicles  int           `json:"vehicles"`
	CleanCSV  string        `json:"clean_csv,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// NewPipeline wires the stages. cleanCSV is optional; when set the cleaned rides are
// also written there.
func NewPipeline(reader *Reader, cleaner *Cleaner, loader *Loader, cleanCSV string, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		reader:   reader,
		cleaner:  cleaner,
		loader:   loader,
		cleanCSV: cleanCSV,
		log:      log,
	}
}

// Run reads, cleans, summarises and loads source. Queries must not run concurrently.
func (p *Pipeline) Run(ctx context.Context, source string) (Result, error) {
	started := time.Now()
	result := Result{RunID: uuid.New(), Source: source}
	log := p.log.With().Str("run_id", result.RunID.String()).Str("source", source).Logger()

	log.Info().Msg("ingestion started")

	records, err := p.reader.Read(ctx, source)
	if err != nil {
		return result, fmt.Errorf("read: %w", err)
	}
	log.Info().Int("records", len(records)).Msg("source read")

	rides, stats, err := p.cleaner.Clean(records)
	result.Stats = stats
	if err != nil {
		return result, fmt.Errorf("clean: %w", err)
	}

	data := Summarize(rides)
	result.Customers = len(data.Customers)
	result.Days = len(data.Days)
	result.Vehicles = len(data.Vehicles)

	if p.cleanCSV != "" {
		if err := writeCleanCSV(p.cleanCSV, rides); err != nil {
			return result, fmt.Errorf("write cleaned csv: %w", err)
		}
		result.CleanCSV = p.cleanCSV
		log.Info().Str("path", p.cleanCSV).Msg("cleaned rides written")
	}

	if err := p.loader.Load(ctx, data); err != nil {
		return result, fmt.Errorf("load: %w", err)
	}

	result.Duration = time.Since(started)
	metrics.RecordIngest(stats.Read, stats.Kept, stats.Dropped(), result.Duration)
	log.Info().
		Int("kept", stats.Kept).
		Int("dropped", stats.Dropped()).
		Dur("duration", result.Duration).
		Msg("ingestion finished")
	return result, nil
}

var cleanColumns = []string{
	"Booking_ID", "Date", "Time", "Hour", "Weekday", "Customer_ID", "Vehicle_Type",
	"Pickup_Location", "Drop_Location", "Booking_Status", "Status_Category", "V_TAT", "C_TAT",
	"Canceled_Rides_by_Customer", "Canceled_Rides_by_Driver", "Incomplete_Rides",
	"Incomplete_Rides_Reason", "Booking_Value", "Payment_Method", "Ride_Distance",
	"Driver_Ratings", "Customer_Rating", "Revenue_Per_KM",
}

func writeCleanCSV(path string, rides []model.Ride) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	table := model.Table{Name: "rides_clean", Columns: cleanColumns, Rows: make([][]any, 0, len(rides))}
	for _, r := range rides {
		table.Rows = append(table.Rows, []any{
			r.BookingID, r.Date, r.Time, r.Hour, r.Weekday, r.CustomerID, r.VehicleType,
			r.PickupLocation, r.DropLocation, r.BookingStatus, string(r.StatusCategory), r.VTAT, r.CTAT,
			r.CanceledByCustomer, r.CanceledByDriver, r.IncompleteRides,
			r.IncompleteReason, r.BookingValue, r.PaymentMethod, r.RideDistance,
			r.DriverRatings, r.CustomerRating, r.RevenuePerKM,
		})
	}
	return export.WriteFile(path, table, export.FormatCSV)
}
