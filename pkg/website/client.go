package website

import (
	"context"
	"net/http"
	"time"

	"leadfinder/pkg/logger"

	"github.com/imroc/req/v3"
	"go.uber.org/zap"
)

// DefaultUserAgent identifies the scraper honestly so site operators can
// recognise its traffic.
const DefaultUserAgent = "lead-finder/1.0 (public contact discovery; respects robots)"

// ClientOptions configure the HTTP client used for page fetches.
type ClientOptions struct {
	// Timeout bounds a single request including redirects and body read.
	Timeout time.Duration
	// UserAgent overrides DefaultUserAgent when set.
	UserAgent string
	// MaxRedirects bounds the redirects followed per request; zero means req's default.
	MaxRedirects int
}

// NewHTTPClient builds a *req.Client for page fetches. Proxies are taken from
// HTTP_PROXY / HTTPS_PROXY / NO_PROXY. When the context logger is at debug
// level every response is logged with its status.
func NewHTTPClient(ctx context.Context, opts ClientOptions) *req.Client {
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	client := req.C().
		SetUserAgent(ua).
		SetTimeout(opts.Timeout).
		SetProxy(http.ProxyFromEnvironment)

	if opts.MaxRedirects > 0 {
		client.SetRedirectPolicy(req.MaxRedirectPolicy(opts.MaxRedirects))
	}

	if logger.IsDebug(ctx) {
		attachDebugHook(ctx, client)
	}

	return client
}

// attachDebugHook logs method, URL and status of every response, plus a body
// snippet for unsuccessful ones.
func attachDebugHook(ctx context.Context, client *req.Client) {
	client.OnAfterResponse(func(_ *req.Client, resp *req.Response) error {
		if resp.Response == nil || resp.Request == nil || resp.Request.RawRequest == nil {
			return nil
		}
		fields := []zap.Field{
			zap.String("method", resp.Request.RawRequest.Method),
			zap.String("url", resp.Request.RawRequest.URL.String()),
			zap.Int("status", resp.StatusCode),
		}
		if !resp.IsSuccessState() {
			body := resp.String()
			if len(body) > 512 {
				body = body[:512]
			}
			fields = append(fields, zap.String("body", body))
		}
		logger.Debug(ctx, "http response", fields...)

		return nil
	})
}
