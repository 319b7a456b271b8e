package rewrite

import (
	"regexp"
	"strings"
)

// attrPattern matches href/src attribute values delimited by quotes.
// The value class excludes both quote characters, so the closing delimiter
// always pairs with the opening one in well-formed markup.
var attrPattern = regexp.MustCompile(`(?i)(\b(?:href|src)\s*=\s*["'])([^"']+)(["'])`)

// cssURLPattern matches stylesheet url(...) arguments, optionally quoted.
var cssURLPattern = regexp.MustCompile(`(?i)(url\(\s*["']?)([^"')]+)(["']?\s*\))`)

// replaceToken replaces occurrences of old with new only on path-token
// boundaries: the match may not be preceded or followed by a character that
// could extend it into a longer path. This keeps the catch-all pass from
// rewriting unintended substrings inside other paths or words.
func replaceToken(text, old, repl string) string {
	if old == "" || !strings.Contains(text, old) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for {
		i := strings.Index(text, old)
		if i < 0 {
			b.WriteString(text)
			break
		}

		end := i + len(old)
		before := byte(0)
		if i > 0 {
			before = text[i-1]
		}
		after := byte(0)
		if end < len(text) {
			after = text[end]
		}

		b.WriteString(text[:i])
		if (i == 0 || !isPathTokenByte(before)) && (end == len(text) || !isPathTokenByte(after)) {
			b.WriteString(repl)
		} else {
			b.WriteString(old)
		}
		text = text[end:]
	}
	return b.String()
}

// isPathTokenByte reports whether c can be part of a path token. Matching the
// canonical output alphabet plus separators and percent-escapes.
func isPathTokenByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '.', '_', '-', '~', '%', '/':
		return true
	}
	return false
}
