// file: internal/export/rewrite.go
// version: 1.1.0
// guid: 34455667-7a8b-9c0d-1e2f-304152637485

// Package export serializes a decoded library to CSV, M3U8, JSON, YAML and
// SQLite, rewriting track locations for the deployment target.
package export

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PathRewriter maps library-native track locations (iTunes file:// URLs) to
// deployment paths: prefix swap, URL unescape, optional NFD normalization.
type PathRewriter struct {
	SourcePrefix string // locations must start with this to be exported
	TargetPrefix string // replaces SourcePrefix in the output
	Normalize    bool   // apply Unicode NFD, matching HFS+-style filenames
}

// Rewrite returns the rewritten path and whether the location matched the
// source prefix. Locations that do not match are excluded from exports.
func (r *PathRewriter) Rewrite(location string) (string, bool) {
	if location == "" {
		return "", false
	}
	if r.SourcePrefix != "" && !strings.HasPrefix(location, r.SourcePrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(location, r.SourcePrefix)

	unescaped, err := url.PathUnescape(rest)
	if err != nil {
		// Not valid percent-encoding; keep the raw form.
		unescaped = rest
	}

	out := r.TargetPrefix + unescaped
	if r.Normalize {
		out = norm.NFD.String(out)
	}
	return out, true
}
