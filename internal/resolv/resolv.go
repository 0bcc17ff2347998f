// Package resolv turns document identifiers into the hostnames used to select
// library specific validation.
package resolv

import (
	"net/url"
	"strings"
)

// Hostname returns the lower cased host of a URI, without any port.  A bare
// hostname is returned normalized.  If no host can be found, Hostname returns
// the empty string.
func Hostname(uri string) string {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return ""
	}

	if !strings.Contains(uri, "://") {
		uri = "//" + uri
	}

	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}

	return strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
}

// Candidates lists the names a host may be registered under, most specific
// first: the host itself, then each parent domain down to two labels.
//
//	Candidates("iiif.lib.harvard.edu") == []string{"iiif.lib.harvard.edu", "lib.harvard.edu", "harvard.edu"}
func Candidates(host string) []string {
	host = Hostname(host)
	if host == "" {
		return nil
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return []string{host}
	}

	candidates := make([]string, 0, len(labels)-1)
	for i := 0; i <= len(labels)-2; i++ {
		candidates = append(candidates, strings.Join(labels[i:], "."))
	}
	return candidates
}
