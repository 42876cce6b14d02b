// Package slug normalizes and resolves URL-facing catalog slugs.
//
// Marketing URLs are human-edited and drift from the slugs stored in the
// content provider: case differences, underscores, stray punctuation,
// pluralization, the historical "vending-" prefix and legacy aliases. This
// package owns the reconciliation rules; it is pure string work with no I/O.
package slug

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// separators matches runs of whitespace and underscores.
	separators = regexp.MustCompile(`[\s_]+`)
	// invalid matches anything outside the slug charset.
	invalid = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses consecutive hyphens left behind by stripping.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// Normalize converts a raw, possibly percent-encoded URL segment into the
// canonical slug form: lowercase, hyphen-separated, charset [a-z0-9-].
//
// Normalize is idempotent and never fails; empty input yields "".
func Normalize(raw string) string {
	s := Decode(raw)
	s = strings.ToLower(strings.TrimSpace(s))
	s = separators.ReplaceAllString(s, "-")
	s = invalid.ReplaceAllString(s, "")
	s = multiHyphen.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// Decode percent-decodes a URL segment, returning the input unchanged when it
// is not valid percent-encoding. Routing layers usually decode already, but
// double-encoded links from old campaign emails still reach us.
func Decode(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}

	return decoded
}
