package lookup

import (
	"net/url"
	"strings"
)

// DefaultBase is the external dictionary search URL prefix.
const DefaultBase = "https://jisho.org/search/"

// Link builds the external dictionary search URL for surface. An empty
// base means DefaultBase. The surface is path-escaped.
func Link(base, surface string) string {
	if base == "" {
		base = DefaultBase
	}
	if !strings.HasSuffix(base, "/") && !strings.HasSuffix(base, "=") {
		base += "/"
	}
	if strings.HasSuffix(base, "=") {
		return base + url.QueryEscape(surface)
	}
	return base + url.PathEscape(surface)
}
