// Package website fetches business websites and collects the email
// addresses they publish, following a few contact-like pages.
package website

import (
	"context"
	"net/url"
	"strings"
	"time"

	"leadfinder/pkg/email"
	"leadfinder/pkg/logger"
	"leadfinder/pkg/metrics"

	"github.com/PuerkitoBio/goquery"
	"github.com/imroc/req/v3"
	"go.uber.org/zap"
)

// contactKeywords select links worth following from the landing page.
var contactKeywords = []string{"contact", "about", "support"} //nolint: gochecknoglobals

// Scraper collects the email addresses published on a website.
//
//go:generate mockgen -package mockwebsite -source=scraper.go -destination=mock/mockwebsite.go
type Scraper interface {
	// Scrape returns the addresses found on the site at rawURL, lowercased, without
	// duplicates and in first-seen order. Fetch failures yield an empty slice.
	Scrape(ctx context.Context, rawURL string) []string
}

// Options configure the scraping behaviour.
type Options struct {
	// AssumeHTTPS prefixes scheme-less URLs with https://. When false, callers
	// must pass absolute http(s) URLs; anything else yields no emails.
	AssumeHTTPS bool
	// RequireSuccess treats non-2xx responses as failed fetches.
	RequireSuccess bool
	// MaxContactPages is the number of contact/about/support pages followed.
	MaxContactPages int
	// MaxEmails caps the addresses returned per site; zero means no cap.
	MaxEmails int
}

// HTMLScraper implements Scraper over HTTP with goquery for HTML parsing.
// It is safe for concurrent use.
type HTMLScraper struct {
	client  *req.Client
	options Options
}

var _ Scraper = (*HTMLScraper)(nil)

// NewScraper constructs an HTMLScraper fetching pages with client.
func NewScraper(client *req.Client, opts Options) *HTMLScraper {
	return &HTMLScraper{client: client, options: opts}
}

// page is a fetched and parsed HTML document.
type page struct {
	url  *url.URL
	body string
	doc  *goquery.Document
}

// emails returns mailto targets first, then addresses in the raw body.
func (p *page) emails() []string {
	return email.Merge(nil, 0, mailtoEmails(p.doc), email.Extract(p.body))
}

// Scrape fetches rawURL, collects mailto and plain-text addresses, then does
// the same for up to MaxContactPages linked contact-like pages. Errors on the
// linked pages are skipped one by one.
func (s *HTMLScraper) Scrape(ctx context.Context, rawURL string) []string {
	target := strings.TrimSpace(rawURL)
	if s.options.AssumeHTTPS {
		target = EnsureScheme(target)
	}
	if !hasWebScheme(target) {
		logger.Debug(ctx, "skipping URL without http(s) scheme", zap.String("url", rawURL))

		return []string{}
	}

	landing, ok := s.fetch(ctx, target)
	if !ok {
		return []string{}
	}

	found := email.Merge([]string{}, s.options.MaxEmails, landing.emails())
	for _, link := range s.contactLinks(landing) {
		if s.options.MaxEmails > 0 && len(found) >= s.options.MaxEmails {
			break
		}
		sub, ok := s.fetch(ctx, link)
		if !ok {
			continue
		}
		found = email.Merge(found, s.options.MaxEmails, sub.emails())
	}

	return found
}

// fetch downloads and parses a page. Failures are logged and reported as !ok.
func (s *HTMLScraper) fetch(ctx context.Context, target string) (*page, bool) {
	start := time.Now()
	resp, err := s.client.R().SetContext(ctx).Get(target)
	metrics.PageFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Debug(ctx, "could not fetch page", zap.String("url", target), zap.Error(err))
		metrics.PageFetches.WithLabelValues(metrics.ResultError).Inc()

		return nil, false
	}
	if s.options.RequireSuccess && !resp.IsSuccessState() {
		logger.Debug(ctx, "page returned unsuccessful status",
			zap.String("url", target),
			zap.Int("status", resp.StatusCode))
		metrics.PageFetches.WithLabelValues(metrics.ResultStatus).Inc()

		return nil, false
	}
	metrics.PageFetches.WithLabelValues(metrics.ResultOK).Inc()

	p := &page{body: resp.String()}

	// links resolve against the final URL after redirects
	if resp.Response != nil && resp.Response.Request != nil && resp.Response.Request.URL != nil {
		p.url = resp.Response.Request.URL
	} else if p.url, err = url.Parse(target); err != nil {
		return nil, false
	}

	p.doc, err = goquery.NewDocumentFromReader(strings.NewReader(p.body))
	if err != nil {
		logger.Debug(ctx, "could not parse page", zap.String("url", target), zap.Error(err))
	}

	return p, true
}

// contactLinks returns up to MaxContactPages absolute http(s) URLs whose link
// text or href mentions one of contactKeywords, excluding the page itself.
func (s *HTMLScraper) contactLinks(p *page) []string {
	if p.doc == nil || s.options.MaxContactPages <= 0 {
		return nil
	}

	seen := map[string]struct{}{CanonicalURL(p.url): {}}
	var links []string
	p.doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if !followable(href) {
			return true
		}
		if !mentionsContact(href) && !mentionsContact(sel.Text()) {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := p.url.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return true
		}

		key := CanonicalURL(abs)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
		abs.Fragment = ""
		links = append(links, abs.String())

		return len(links) < s.options.MaxContactPages
	})

	return links
}

// mailtoEmails returns the addresses of all mailto: links, query strings stripped.
func mailtoEmails(doc *goquery.Document) []string {
	out := []string{}
	if doc == nil {
		return out
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if !hasPrefixFold(href, "mailto:") {
			return
		}
		target := href[len("mailto:"):]
		if i := strings.IndexByte(target, '?'); i >= 0 {
			target = target[:i]
		}
		if decoded, err := url.PathUnescape(target); err == nil {
			target = decoded
		}
		out = append(out, email.Extract(target)...)
	})

	return out
}

func followable(href string) bool {
	switch {
	case href == "", strings.HasPrefix(href, "#"):
		return false
	case hasPrefixFold(href, "mailto:"), hasPrefixFold(href, "tel:"), hasPrefixFold(href, "javascript:"):
		return false
	default:
		return true
	}
}

func mentionsContact(s string) bool {
	s = strings.ToLower(s)
	for _, k := range contactKeywords {
		if strings.Contains(s, k) {
			return true
		}
	}

	return false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
