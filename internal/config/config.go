package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, the places API,
// website scraping, email verification and batch limits.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set.
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Host is the interface the HTTP server binds to; empty means all interfaces
		Host string `env:"HTTP_HOST" yaml:"host"`
		// Port is the TCP port the HTTP server will listen on
		Port int `env:"PORT" env-default:"3000" yaml:"port"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"16m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request.
		// A batch of 100 websites with contact pages can take several minutes.
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"15m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxBodyBytes caps the size of request bodies
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"2097152" yaml:"maxBodyBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Places contains the places-search API settings
	Places struct {
		// APIKey is the credential sent with every search; searches fail without it
		APIKey string `env:"PLACES_API_KEY" yaml:"apiKey"`
		// BaseURL is the root of the places API
		BaseURL string `env:"PLACES_BASE_URL" env-default:"https://places.googleapis.com" yaml:"baseURL"`
		// Timeout bounds a single search call
		Timeout time.Duration `env:"PLACES_TIMEOUT" env-default:"15s" yaml:"timeout"`
	} `yaml:"places"`

	// Scraper contains website scraping settings
	Scraper struct {
		// Timeout bounds every single page fetch
		Timeout time.Duration `env:"SCRAPER_TIMEOUT" env-default:"15s" yaml:"timeout"`
		// UserAgent overrides the default descriptive user agent
		UserAgent string `env:"SCRAPER_USER_AGENT" yaml:"userAgent"`
		// AssumeHTTPS prefixes scheme-less URLs with https://
		AssumeHTTPS bool `env:"SCRAPER_ASSUME_HTTPS" env-default:"true" yaml:"assumeHTTPS"`
		// RequireSuccess treats non-2xx responses as failed fetches
		RequireSuccess bool `env:"SCRAPER_REQUIRE_SUCCESS" env-default:"true" yaml:"requireSuccess"`
		// MaxContactPages is the number of contact/about/support pages followed per site
		MaxContactPages int `env:"SCRAPER_MAX_CONTACT_PAGES" env-default:"3" yaml:"maxContactPages"`
		// MaxEmails caps the emails returned per site
		MaxEmails int `env:"SCRAPER_MAX_EMAILS" env-default:"50" yaml:"maxEmails"`
		// MaxRedirects bounds redirects followed per fetch
		MaxRedirects int `env:"SCRAPER_MAX_REDIRECTS" env-default:"5" yaml:"maxRedirects"`
	} `yaml:"scraper"`

	// Verifier contains email MX verification settings
	Verifier struct {
		// Timeout bounds a single MX lookup
		Timeout time.Duration `env:"VERIFIER_TIMEOUT" env-default:"12s" yaml:"timeout"`
		// Concurrency caps the MX lookups running at once for one item
		Concurrency int `env:"VERIFIER_CONCURRENCY" env-default:"10" yaml:"concurrency"`
		// Nameservers are host[:port] DNS servers; empty means the ones in /etc/resolv.conf
		Nameservers []string `env:"VERIFIER_NAMESERVERS" env-separator:"," yaml:"nameservers"`
		// ExtraDisposableDomains extends the built-in disposable domain list
		ExtraDisposableDomains []string `env:"VERIFIER_EXTRA_DISPOSABLE_DOMAINS" env-separator:"," yaml:"extraDisposableDomains"` //nolint: lll
	} `yaml:"verifier"`

	// Runner contains batch limits
	Runner struct {
		// MaxWebsites is the number of websites processed per run; the rest are dropped
		MaxWebsites int `env:"RUNNER_MAX_WEBSITES" env-default:"100" yaml:"maxWebsites"`
		// MaxQueries is the number of queries processed per run; the rest are dropped
		MaxQueries int `env:"RUNNER_MAX_QUERIES" env-default:"20" yaml:"maxQueries"`
		// DefaultMaxResults is used when a request does not set maxResults
		DefaultMaxResults int `env:"RUNNER_DEFAULT_MAX_RESULTS" env-default:"20" yaml:"defaultMaxResults"`
	} `yaml:"runner"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.HTTP.Host, strconv.Itoa(c.HTTP.Port))
}

// Load receives the path for yaml config file and returns a filled Config struct.
// A missing file is not an error: the configuration is then read from the
// environment alone.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
