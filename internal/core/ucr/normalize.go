package ucr

import "strings"

// NormalizeDomain canonicalizes a raw domain or URL for storage and matching:
// trims whitespace, lowercases, strips the scheme, a leading "www.", any
// path/query/fragment, a port suffix, and a trailing dot
func NormalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	if d == "" {
		return ""
	}
	if i := strings.Index(d, "://"); i >= 0 {
		d = d[i+3:]
	}
	d = strings.TrimPrefix(d, "www.")
	for _, sep := range []byte{'/', '?', '#'} {
		if i := strings.IndexByte(d, sep); i >= 0 {
			d = d[:i]
		}
	}
	if i := strings.IndexByte(d, ':'); i >= 0 {
		d = d[:i]
	}
	return strings.TrimSuffix(d, ".")
}
