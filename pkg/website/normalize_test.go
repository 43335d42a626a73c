package website_test

import (
	"net/url"
	"testing"

	"leadfinder/pkg/website"

	"github.com/stretchr/testify/require"
)

func TestEnsureScheme(t *testing.T) {
	cases := map[string]string{
		"example.com":              "https://example.com",
		"  example.com/contact ":   "https://example.com/contact",
		"//cdn.example.com":        "https://cdn.example.com",
		"http://example.com":       "http://example.com",
		"https://example.com/path": "https://example.com/path",
		"":                         "",
	}
	for in, want := range cases {
		require.Equal(t, want, website.EnsureScheme(in), in)
	}
}

func TestCanonicalURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "lowercase scheme and host; add root path", in: "HTTP://Example.COM", out: "http://example.com/"},
		{name: "remove default http port", in: "http://example.com:80/path", out: "http://example.com/path"},
		{name: "remove default https port", in: "https://example.com:443/", out: "https://example.com/"},
		{name: "keep non-default port", in: "http://example.com:8080/", out: "http://example.com:8080/"},
		{name: "drop trailing slash", in: "https://example.com/contact/", out: "https://example.com/contact"},
		{name: "remove fragment", in: "https://example.com/about#team", out: "https://example.com/about"},
		{name: "keep query", in: "https://example.com/p?id=2", out: "https://example.com/p?id=2"},
		{name: "ipv6 default port", in: "http://[2001:db8::1]:80/a", out: "http://[2001:db8::1]/a"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := url.Parse(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.out, website.CanonicalURL(u))
		})
	}
}
