package email

import (
	"context"
	"time"

	"leadfinder/pkg/logger"
	"leadfinder/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configure how MX checks are performed.
type Options struct {
	// Timeout bounds a single MX lookup.
	Timeout time.Duration
	// Concurrency caps the lookups running at once inside one Verify call.
	Concurrency int
}

// MXVerifier implements Verifier with a disposable-domain blocklist followed by
// an MX lookup. It is safe for concurrent use.
type MXVerifier struct {
	options    Options
	resolver   MXResolver
	disposable DisposableDomains
}

var _ Verifier = (*MXVerifier)(nil)

// NewMXVerifier constructs an MXVerifier.
func NewMXVerifier(resolver MXResolver, disposable DisposableDomains, opts Options) *MXVerifier {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	return &MXVerifier{
		options:    opts,
		resolver:   resolver,
		disposable: disposable,
	}
}

// IsDeliverable reports whether the domain of address has at least one MX record.
// Addresses without a domain and disposable domains are rejected without a lookup.
// This proves that the domain can receive mail, not that the mailbox exists.
func (v *MXVerifier) IsDeliverable(ctx context.Context, address string) bool {
	domain := Domain(address)
	if domain == "" {
		metrics.MXChecks.WithLabelValues(metrics.ResultInvalid).Inc()

		return false
	}
	if v.disposable.Contains(domain) {
		metrics.MXChecks.WithLabelValues(metrics.ResultDisposable).Inc()

		return false
	}

	if v.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.options.Timeout)
		defer cancel()
	}

	mxs, err := v.resolver.LookupMX(ctx, domain)
	if err != nil {
		logger.Debug(ctx, "MX lookup failed", zap.String("domain", domain), zap.Error(err))
		metrics.MXChecks.WithLabelValues(metrics.ResultError).Inc()

		return false
	}
	if len(mxs) == 0 {
		metrics.MXChecks.WithLabelValues(metrics.ResultEmpty).Inc()

		return false
	}

	metrics.MXChecks.WithLabelValues(metrics.ResultOK).Inc()

	return true
}

// Verify checks all addresses concurrently, at most Concurrency at a time, and
// returns the deliverable ones in their input order. It never returns nil.
func (v *MXVerifier) Verify(ctx context.Context, addresses []string) []string {
	ok := make([]bool, len(addresses))

	var g errgroup.Group
	g.SetLimit(v.options.Concurrency)
	for i, address := range addresses {
		i, address := i, address
		g.Go(func() error {
			ok[i] = v.IsDeliverable(ctx, address)

			return nil
		})
	}
	_ = g.Wait()

	out := make([]string, 0, len(addresses))
	for i, address := range addresses {
		if ok[i] {
			out = append(out, address)
		}
	}

	return out
}
