// Package email finds email addresses in text and checks whether their
// domains can receive mail.
package email

import (
	"regexp"
	"strings"
)

// pattern matches local-part@domain.tld with a TLD of at least two letters.
var pattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`) //nolint: gochecknoglobals

// assetSuffixes are file extensions that look like TLDs in names such as logo@2x.png.
var assetSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".css", ".js"} //nolint: gochecknoglobals

// Extract returns the lowercased, deduplicated email addresses found in text,
// in order of first appearance. It never returns nil.
func Extract(text string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, m := range pattern.FindAllString(text, -1) {
		m = strings.ToLower(m)
		if isAsset(m) {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}

	return out
}

// Match reports whether s is exactly one email address.
func Match(s string) bool {
	loc := pattern.FindStringIndex(s)

	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

// Domain returns the lowercased domain part of an address, or "" when there is none.
func Domain(address string) string {
	i := strings.LastIndex(address, "@")
	if i < 0 {
		return ""
	}

	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(address[i+1:])), ".")
}

func isAsset(address string) bool {
	for _, s := range assetSuffixes {
		if strings.HasSuffix(address, s) {
			return true
		}
	}

	return false
}

// Merge appends the addresses of each list to dst, skipping case-insensitive
// duplicates, until dst holds limit entries. A limit <= 0 means no limit.
func Merge(dst []string, limit int, lists ...[]string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, e := range dst {
		seen[strings.ToLower(e)] = struct{}{}
	}
	for _, list := range lists {
		for _, e := range list {
			if limit > 0 && len(dst) >= limit {
				return dst
			}
			k := strings.ToLower(e)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			dst = append(dst, k)
		}
	}

	return dst
}
