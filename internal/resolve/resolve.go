// Package resolve maps raw reference strings found in text content onto
// canonical root-absolute paths. Resolution is purely lexical: it depends on
// the post-rename tree layout only through the rename mapping, never on disk
// reads, and it never fails — a reference that cannot be resolved comes back
// unchanged.
package resolve

import (
	"path"
	"regexp"
	"strings"

	"github.com/kadeem-campbell/siteclean/internal/config"
	"github.com/kadeem-campbell/siteclean/internal/rename"
	"github.com/kadeem-campbell/siteclean/internal/routes"
	"github.com/kadeem-campbell/siteclean/internal/site"
)

// skipPrefixes mark references that must never be touched: external protocols,
// page fragments, data URIs, script protocol, and unresolved build-time
// template placeholders.
var skipPrefixes = []string{
	"http:", "https:", "mailto:", "tel:", "#", "data:", "javascript:", "${",
}

var parentEscape = regexp.MustCompile(`^\.\.//+`)

// Resolver normalizes references against the fixed route table, the asset
// rules, and the rename mapping for one run. All three inputs are read-only.
type Resolver struct {
	rules   *config.AssetRules
	routes  *routes.Table
	mapping rename.Mapping
}

// New builds a resolver. mapping may be nil when no renames were planned.
func New(rules *config.AssetRules, table *routes.Table, mapping rename.Mapping) *Resolver {
	return &Resolver{rules: rules, routes: table, mapping: mapping}
}

// Skip reports whether ref must pass through every stage untouched.
func Skip(ref string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	return false
}

// Resolve maps one reference found inside containingFile (root-relative POSIX
// path) onto its canonical form: legacy routes normalized, path expressed
// root-absolutely, rename mapping applied. Malformed references degrade to
// the unchanged input; no error ever propagates per reference.
func (r *Resolver) Resolve(ref, containingFile string) string {
	v := strings.TrimSpace(ref)
	if v == "" || Skip(v) {
		return ref
	}

	v = r.routes.Normalize(v)
	v = r.absolutize(v, containingFile)
	return r.substitute(v)
}

// absolutize expresses a site-internal reference root-absolutely where
// possible. References that escape the tree root keep their current form.
func (r *Resolver) absolutize(v, containingFile string) string {
	if strings.HasPrefix(v, "/") {
		return v
	}

	// A bare filename with a recognized asset extension lives at the root.
	if !strings.Contains(v, "/") && r.rules.IsBareRootExt(path.Ext(v)) {
		return "/" + v
	}

	v = parentEscape.ReplaceAllString(v, "/")
	if strings.HasPrefix(v, "/") {
		return v
	}

	joined := path.Join(site.ContainingDir(containingFile), v)
	if joined == ".." || strings.HasPrefix(joined, "../") {
		return v
	}
	if joined == "." {
		return "/"
	}
	return "/" + joined
}

// substitute applies the rename mapping, trying the root-absolute key first
// and the relative form for references that stayed relative.
func (r *Resolver) substitute(v string) string {
	if r.mapping == nil {
		return v
	}
	if rel, ok := strings.CutPrefix(v, "/"); ok {
		if dst, found := r.mapping[rel]; found {
			return "/" + dst
		}
		return v
	}
	if dst, found := r.mapping[v]; found {
		return dst
	}
	return v
}
