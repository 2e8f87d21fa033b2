// Package route builds ZeroDB API paths.
package route

import (
	"net/url"
	"strings"
)

// Prefix is prepended to every API path.
const Prefix = "/api/v1"

// Path joins segments under Prefix. Each segment is path-escaped, so an
// identifier containing "/" or "?" stays a single segment.
func Path(segments ...string) string {
	var b strings.Builder
	b.WriteString(Prefix)
	for _, s := range segments {
		if s == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// Project builds a path under /zerodb/{projectID}.
func Project(projectID string, segments ...string) string {
	return Path(append([]string{"zerodb", projectID}, segments...)...)
}
