package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"ride-insights/internal/catalog"
	"ride-insights/internal/metrics"
	"ride-insights/internal/model"
)

var ErrPermissionDenied = errors.New("permission denied")

// System is the principal used by local tooling and by the API when auth is disabled.
var System = model.Principal{Role: model.RoleAdmin}

// maxParallelReports bounds RunAll fan-out. Entries are CPU bound over a shared snapshot.
const maxParallelReports = 4

type SnapshotLoader interface {
	Load(ctx context.Context, sources ...model.Source) (*catalog.Snapshot, error)
}

type ReportService struct {
	snapshots SnapshotLoader
	log       zerolog.Logger
}

func NewReportService(snapshots SnapshotLoader, log zerolog.Logger) *ReportService {
	return &ReportService{
		snapshots: snapshots,
		log:       log.With().Str("component", "reports").Logger(),
	}
}

// List returns the reports the principal may run, in catalog order.
func (s *ReportService) List(principal model.Principal) []model.ReportInfo {
	var out []model.ReportInfo
	for _, e := range catalog.Entries() {
		if allowed(principal, e) {
			out = append(out, e.Info())
		}
	}
	return out
}

func (s *ReportService) Run(ctx context.Context, principal model.Principal, name string) (model.Table, error) {
	entry, err := catalog.Lookup(name)
	if err != nil {
		return model.Table{}, err
	}
	if !allowed(principal, entry) {
		return model.Table{}, ErrPermissionDenied
	}

	started := time.Now()
	snapshot, err := s.snapshots.Load(ctx, entry.Sources...)
	if err != nil {
		metrics.RecordReport(entry.Name, 0, err, time.Since(started))
		return model.Table{}, err
	}

	return s.execute(entry, snapshot, started), nil
}

// RunAll loads one snapshot covering every permitted report and executes the
// entries concurrently. Results keep catalog order.
func (s *ReportService) RunAll(ctx context.Context, principal model.Principal) ([]model.Table, error) {
	if !principal.CanReadReports() {
		return nil, ErrPermissionDenied
	}

	var list []catalog.Entry
	for _, e := range catalog.Entries() {
		if allowed(principal, e) {
			list = append(list, e)
		}
	}

	started := time.Now()
	snapshot, err := s.snapshots.Load(ctx, catalog.Sources(list...)...)
	if err != nil {
		return nil, err
	}

	tables := make([]model.Table, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReports)
	for i, entry := range list {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tables[i] = s.execute(entry, snapshot, time.Now())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Info().Int("reports", len(tables)).Dur("duration", time.Since(started)).Msg("all reports executed")
	return tables, nil
}

func (s *ReportService) execute(entry catalog.Entry, snapshot *catalog.Snapshot, started time.Time) model.Table {
	table := entry.Execute(snapshot)
	elapsed := time.Since(started)

	for _, issue := range table.Issues {
		s.log.Warn().Str("report", entry.Name).Str("key", issue.Key).Str("reason", issue.Reason).Msg("row skipped")
	}
	s.log.Info().
		Str("report", entry.Name).
		Int("rows", len(table.Rows)).
		Int("skipped", table.Skipped).
		Dur("duration", elapsed).
		Msg("report executed")

	metrics.RecordReport(entry.Name, table.Skipped, nil, elapsed)
	return table
}

func allowed(principal model.Principal, entry catalog.Entry) bool {
	if !principal.CanReadReports() {
		return false
	}
	return !entry.RowLevel || principal.CanReadRowLevel()
}
