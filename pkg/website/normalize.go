package website

import (
	"net"
	"net/url"
	"strings"
)

// EnsureScheme prefixes a scheme-less address with https://.
// Addresses that already carry a scheme are returned trimmed but unchanged.
func EnsureScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return raw
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.Contains(raw, "://"):
		return raw
	default:
		return "https://" + raw
	}
}

// hasWebScheme reports whether raw is an absolute http(s) URL with a host.
func hasWebScheme(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)

	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// CanonicalURL returns a comparable form of u used to avoid fetching the
// same page twice:
//   - scheme and host are lower-cased
//   - default ports (http:80, https:443) are dropped
//   - an empty path becomes "/" and a trailing slash is removed elsewhere
//   - the fragment is removed
func CanonicalURL(u *url.URL) string {
	c := *u
	c.Scheme = strings.ToLower(c.Scheme)
	c.Fragment = ""
	c.RawFragment = ""

	host := strings.ToLower(c.Host)
	if h, port, err := net.SplitHostPort(host); err == nil {
		if (c.Scheme == "http" && port == "80") || (c.Scheme == "https" && port == "443") {
			host = h
			if strings.Contains(h, ":") {
				host = "[" + h + "]"
			}
		}
	}
	c.Host = host

	if c.Path == "" {
		c.Path = "/"
	}
	if c.Path != "/" {
		c.Path = strings.TrimRight(c.Path, "/")
		c.RawPath = ""
		if c.Path == "" {
			c.Path = "/"
		}
	}

	return c.String()
}
