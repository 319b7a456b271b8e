// Package naming canonicalizes filename stems into a kebab-case form that is
// safe for clean URLs and case-sensitive deploy targets.
package naming

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^a-zA-Z0-9.\-/]+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Canonical normalizes a filename stem (no extension). The policy, in order:
// percent-decode, underscores to hyphens, whitespace runs to a single hyphen,
// any character outside [A-Za-z0-9.-/] to a hyphen, collapse hyphen runs,
// trim leading/trailing hyphens.
//
// The function is pure and idempotent: Canonical(Canonical(s)) == Canonical(s).
func Canonical(stem string) string {
	if decoded, err := url.PathUnescape(stem); err == nil {
		stem = decoded
	}
	stem = norm.NFC.String(stem)
	stem = strings.ReplaceAll(stem, "_", "-")
	stem = whitespaceRun.ReplaceAllString(strings.TrimSpace(stem), "-")
	stem = disallowed.ReplaceAllString(stem, "-")
	stem = hyphenRun.ReplaceAllString(stem, "-")
	return strings.Trim(stem, "-")
}

// SplitExt splits a filename into stem and extension. Unlike filepath.Ext the
// extension of a dotfile like ".env" is empty, matching rename planning rules.
func SplitExt(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}
