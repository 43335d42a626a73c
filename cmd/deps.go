package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"leadfinder/internal/config"
	"leadfinder/internal/leads"
	"leadfinder/pkg/email"
	"leadfinder/pkg/logger"
	"leadfinder/pkg/places/googleplaces"
	"leadfinder/pkg/website"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// setupTracing installs the global tracer provider. Finished spans are written
// to the application logger. The returned function flushes and stops it.
func setupTracing(ctx context.Context) func(ctx context.Context) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(logger.NewSpanLogger(logger.Get(ctx))))
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop tracer provider", zap.Error(err))
		}
	}
}

// newResolver prefers the miekg/dns resolver and falls back to the system
// resolver when no nameserver can be determined.
func newResolver(ctx context.Context, cfg *config.Config) email.MXResolver {
	r, err := email.NewDNSResolver(cfg.Verifier.Nameservers, cfg.Verifier.Timeout)
	if err != nil {
		logger.Warn(ctx, "could not create DNS resolver, using the system resolver", zap.Error(err))

		return net.DefaultResolver
	}
	logger.Debug(ctx, "using nameservers", zap.Strings("servers", r.Servers()))

	return r
}

// newRunner builds the lead runner and everything it depends on from configuration.
func newRunner(ctx context.Context, cfg *config.Config) (leads.Runner, error) {
	verifier := email.NewMXVerifier(
		newResolver(ctx, cfg),
		email.NewDisposableDomains(cfg.Verifier.ExtraDisposableDomains...),
		email.Options{
			Timeout:     cfg.Verifier.Timeout,
			Concurrency: cfg.Verifier.Concurrency,
		})

	scraper := website.NewScraper(
		website.NewHTTPClient(ctx, website.ClientOptions{
			Timeout:      cfg.Scraper.Timeout,
			UserAgent:    cfg.Scraper.UserAgent,
			MaxRedirects: cfg.Scraper.MaxRedirects,
		}),
		website.Options{
			AssumeHTTPS:     cfg.Scraper.AssumeHTTPS,
			RequireSuccess:  cfg.Scraper.RequireSuccess,
			MaxContactPages: cfg.Scraper.MaxContactPages,
			MaxEmails:       cfg.Scraper.MaxEmails,
		})

	if cfg.Places.APIKey == "" {
		logger.Warn(ctx, "PLACES_API_KEY is not set, places searches will be rejected")
	}
	searcher := googleplaces.New(&http.Client{Timeout: cfg.Places.Timeout}, cfg.Places.BaseURL, cfg.Places.APIKey)

	runner, err := leads.New(scraper, searcher, verifier, leads.NewOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("could not create runner: %w", err)
	}

	return runner, nil
}
