// Package leads orchestrates lead discovery runs: it searches places, scrapes
// the websites it finds or is given, verifies the collected emails and
// assembles result rows.
package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"leadfinder/internal/config"
	"leadfinder/pkg/domain"
	"leadfinder/pkg/email"
	"leadfinder/pkg/logger"
	"leadfinder/pkg/metrics"
	"leadfinder/pkg/places"
	"leadfinder/pkg/serrors"
	"leadfinder/pkg/website"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "leadfinder/internal/leads"

// Default batch limits, used when Options leaves a field unset.
const (
	DefaultMaxWebsites = 100
	DefaultMaxQueries  = 20
	DefaultMaxResults  = 20
)

// Options configure how many items a single run processes.
// These settings are typically derived from application configuration.
type Options struct {
	// MaxWebsites is the number of websites processed in websites mode. Excess
	// items are dropped silently.
	MaxWebsites int
	// MaxQueries is the number of queries processed in places mode. Excess
	// items are dropped silently.
	MaxQueries int
	// DefaultMaxResults is the places result count used when a request does
	// not ask for one.
	DefaultMaxResults int
	// TracerProvider creates the run spans. Nil means the global provider.
	TracerProvider trace.TracerProvider
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxWebsites:       cfg.Runner.MaxWebsites,
		MaxQueries:        cfg.Runner.MaxQueries,
		DefaultMaxResults: cfg.Runner.DefaultMaxResults,
	}
}

// runner is the concrete implementation of the Runner interface.
// Items are processed one after another; only email verification fans out.
type runner struct {
	options  Options
	scraper  website.Scraper
	searcher places.Searcher
	verifier email.Verifier

	tracer      trace.Tracer
	runDuration metric.Float64Histogram
	rowsTotal   metric.Int64Counter
}

// New creates a Runner wired to the given scraper, places searcher and email
// verifier. Metric instruments are created on the global OpenTelemetry meter
// provider.
func New(scraper website.Scraper, searcher places.Searcher, verifier email.Verifier, options Options) (Runner, error) {
	if options.MaxWebsites <= 0 {
		options.MaxWebsites = DefaultMaxWebsites
	}
	if options.MaxQueries <= 0 {
		options.MaxQueries = DefaultMaxQueries
	}
	if options.DefaultMaxResults <= 0 {
		options.DefaultMaxResults = DefaultMaxResults
	}

	if options.TracerProvider == nil {
		options.TracerProvider = otel.GetTracerProvider()
	}

	meter := otel.Meter(instrumentationName)
	runDuration, err := meter.Float64Histogram("leadfinder.run.duration",
		metric.WithDescription("Duration of lead discovery runs."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create run duration histogram: %w", err)
	}
	rowsTotal, err := meter.Int64Counter("leadfinder.run.rows",
		metric.WithDescription("Result rows produced by lead discovery runs."))
	if err != nil {
		return nil, fmt.Errorf("could not create rows counter: %w", err)
	}

	return &runner{
		options:     options,
		scraper:     scraper,
		searcher:    searcher,
		verifier:    verifier,
		tracer:      options.TracerProvider.Tracer(instrumentationName),
		runDuration: runDuration,
		rowsTotal:   rowsTotal,
	}, nil
}

// Run validates the request and dispatches it by mode. An empty mode means
// domain.ModePlaces. Any places search failure aborts the run and no rows are
// returned.
func (r *runner) Run(ctx context.Context, req domain.RunRequest) ([]domain.Row, error) {
	if len(req.Items) == 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "items must be a non-empty list")
	}
	mode := req.Mode
	if mode == "" {
		mode = domain.ModePlaces
	}
	if mode != domain.ModeWebsites && mode != domain.ModePlaces {
		return nil, serrors.With(serrors.ErrBadRequest, "unknown mode %q", mode)
	}

	ctx = logger.WithFields(ctx, zap.String("mode", string(mode)))
	ctx, span := r.tracer.Start(ctx, "leads.Run", trace.WithAttributes(
		attribute.String("mode", string(mode)),
		attribute.Int("items", len(req.Items)),
		attribute.Bool("verify", req.Verify),
	))
	defer span.End()

	start := time.Now()
	var (
		rows []domain.Row
		err  error
	)
	if mode == domain.ModeWebsites {
		rows, err = r.runWebsites(ctx, req.Items, req.Verify)
	} else {
		rows, err = r.runPlaces(ctx, req.Items, r.maxResults(req.MaxResults), req.Verify)
	}
	r.record(ctx, span, string(mode), start, len(rows), err)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// PlacesReport runs a single places query and renders its rows as CSV.
func (r *runner) PlacesReport(ctx context.Context, query string, maxResults int, verify bool) (*domain.Report, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "textQuery is required")
	}

	ctx = logger.WithFields(ctx, zap.String("mode", "report"))
	ctx, span := r.tracer.Start(ctx, "leads.PlacesReport", trace.WithAttributes(
		attribute.String("query", query),
		attribute.Bool("verify", verify),
	))
	defer span.End()

	start := time.Now()
	businesses, err := r.search(ctx, query, r.maxResults(maxResults))
	if err != nil {
		r.record(ctx, span, "report", start, 0, err)

		return nil, err
	}

	rows := make([]domain.ReportRow, 0, len(businesses))
	plain := make([]domain.Row, 0, len(businesses))
	for _, b := range businesses {
		row := r.businessRow(ctx, b, verify)
		rows = append(rows, domain.ReportRow{Row: row, Query: query, Verified: verify})
		plain = append(plain, row)
	}
	r.record(ctx, span, "report", start, len(rows), nil)

	return &domain.Report{
		Count: len(rows),
		Rows:  rows,
		CSV:   RenderCSV(plain),
	}, nil
}

// runWebsites scrapes every website item, up to MaxWebsites. Each item yields
// exactly one row; blank items yield an empty row without being scraped.
func (r *runner) runWebsites(ctx context.Context, items []string, verify bool) ([]domain.Row, error) {
	items = firstN(items, r.options.MaxWebsites)
	rows := make([]domain.Row, 0, len(items))
	for _, item := range items {
		if err := interrupted(ctx); err != nil {
			return nil, err
		}

		site := strings.TrimSpace(item)
		if site == "" {
			rows = append(rows, domain.Row{Emails: []string{}, VerifiedEmails: []string{}})

			continue
		}
		emails, verified := r.collect(ctx, site, verify)
		rows = append(rows, domain.Row{
			Website:        site,
			Emails:         emails,
			VerifiedEmails: verified,
		})
	}

	return rows, nil
}

// runPlaces searches every query item, up to MaxQueries, and produces one row
// per business found.
func (r *runner) runPlaces(ctx context.Context, items []string, maxResults int, verify bool) ([]domain.Row, error) {
	items = firstN(items, r.options.MaxQueries)
	rows := make([]domain.Row, 0, len(items))
	for _, item := range items {
		if err := interrupted(ctx); err != nil {
			return nil, err
		}

		query := strings.TrimSpace(item)
		if query == "" {
			continue
		}
		businesses, err := r.search(ctx, query, maxResults)
		if err != nil {
			return nil, err
		}
		for _, b := range businesses {
			rows = append(rows, r.businessRow(ctx, b, verify))
		}
	}

	return rows, nil
}

func (r *runner) search(ctx context.Context, query string, maxResults int) ([]domain.Business, error) {
	ctx, span := r.tracer.Start(ctx, "leads.search", trace.WithAttributes(
		attribute.String("query", query),
		attribute.Int("maxResults", maxResults),
	))
	defer span.End()

	businesses, err := r.searcher.Search(ctx, query, maxResults)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		logger.Error(ctx, "places search failed", zap.String("query", query), zap.Error(err))

		return nil, fmt.Errorf("could not search places for %q: %w", query, err)
	}
	logger.Debug(ctx, "places search done", zap.String("query", query), zap.Int("results", len(businesses)))

	return businesses, nil
}

// businessRow builds the row of a business, scraping its website when it has one.
func (r *runner) businessRow(ctx context.Context, b domain.Business, verify bool) domain.Row {
	row := domain.Row{
		Name:           b.Name,
		Phone:          b.Phone,
		Website:        b.Website,
		Address:        b.Address,
		Rating:         b.Rating,
		Emails:         []string{},
		VerifiedEmails: []string{},
	}
	if strings.TrimSpace(b.Website) != "" {
		row.Emails, row.VerifiedEmails = r.collect(ctx, strings.TrimSpace(b.Website), verify)
	}

	return row
}

// collect scrapes site and, when asked, keeps the deliverable subset of the
// emails found. Both returned slices are non-nil.
func (r *runner) collect(ctx context.Context, site string, verify bool) ([]string, []string) {
	ctx = logger.WithFields(ctx, zap.String("website", site))
	ctx, span := r.tracer.Start(ctx, "leads.collect", trace.WithAttributes(attribute.String("website", site)))
	defer span.End()

	emails := r.scraper.Scrape(ctx, site)
	if emails == nil {
		emails = []string{}
	}

	verified := []string{}
	if verify && len(emails) > 0 {
		if v := r.verifier.Verify(ctx, emails); v != nil {
			verified = v
		}
	}
	span.SetAttributes(attribute.Int("emails", len(emails)), attribute.Int("verified", len(verified)))
	logger.Debug(ctx, "website processed", zap.Int("emails", len(emails)), zap.Int("verified", len(verified)))

	return emails, verified
}

func (r *runner) maxResults(n int) int {
	if n <= 0 {
		return r.options.DefaultMaxResults
	}

	return places.ClampResults(n)
}

func (r *runner) record(ctx context.Context, span trace.Span, mode string, start time.Time, rows int, err error) {
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
		span.RecordError(err)
		span.SetStatus(codes.Error, "run failed")
	}
	attrs := metric.WithAttributes(attribute.String("mode", mode), attribute.String("result", result))
	r.runDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	r.rowsTotal.Add(ctx, int64(rows), attrs)

	logger.Info(ctx, "run finished",
		zap.Int("rows", rows),
		zap.Duration("took", time.Since(start)),
		zap.String("result", result))
}

// interrupted reports the request context ending between two items.
func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return serrors.Wrap(serrors.ErrTimeout, err, "run interrupted")
	}

	return nil
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}

	return items
}
