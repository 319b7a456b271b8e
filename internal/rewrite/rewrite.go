// Package rewrite scans every text-bearing file in the build tree and rewrites
// path references to their canonical form. Content is treated as a character
// stream: markup attributes and stylesheet url() arguments are pattern-matched,
// never parsed into a DOM.
package rewrite

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/kadeem-campbell/siteclean/internal/config"
	"github.com/kadeem-campbell/siteclean/internal/logfields"
	"github.com/kadeem-campbell/siteclean/internal/rename"
	"github.com/kadeem-campbell/siteclean/internal/resolve"
	"github.com/kadeem-campbell/siteclean/internal/site"
)

// Rewriter applies the resolver across a tree and persists changed files.
// All fields are read-only during a rewrite pass, so files are independent.
type Rewriter struct {
	rules    *config.AssetRules
	resolver *resolve.Resolver
	mapping  rename.Mapping
}

// New builds a rewriter over the post-rename tree state.
func New(rules *config.AssetRules, resolver *resolve.Resolver, mapping rename.Mapping) *Rewriter {
	return &Rewriter{rules: rules, resolver: resolver, mapping: mapping}
}

// RewriteTree rewrites every recognized text file under root and returns the
// root-relative paths of the files whose content changed. Unchanged files are
// not rewritten. With dryRun set, intended updates are logged only.
func (rw *Rewriter) RewriteTree(root string, dryRun bool) ([]string, error) {
	files, err := site.Snapshot(root)
	if err != nil {
		return nil, err
	}

	var changed []string
	for _, rel := range files {
		if !rw.rules.IsTextFile(rel) {
			continue
		}

		abs := filepath.Join(root, filepath.FromSlash(rel))
		content, err := site.ReadText(abs)
		if err != nil {
			return nil, err
		}

		updated := rw.RewriteContent(content, rel)
		if updated == content {
			continue
		}

		changed = append(changed, rel)
		if dryRun {
			slog.Info("Would update references", logfields.Path(rel))
			continue
		}
		if err := site.WriteText(abs, updated); err != nil {
			return nil, err
		}
		slog.Debug("Updated references", logfields.Path(rel))
	}
	return changed, nil
}

// RewriteContent runs the three occurrence passes over one file's content:
// markup attributes, stylesheet url() arguments, then the raw-token catch-all
// for remaining occurrences of old paths (embedded metadata and the like).
func (rw *Rewriter) RewriteContent(content, rel string) string {
	content = attrPattern.ReplaceAllStringFunc(content, func(m string) string {
		parts := attrPattern.FindStringSubmatch(m)
		return parts[1] + rw.resolver.Resolve(strings.TrimSpace(parts[2]), rel) + parts[3]
	})

	content = cssURLPattern.ReplaceAllStringFunc(content, func(m string) string {
		parts := cssURLPattern.FindStringSubmatch(m)
		return parts[1] + rw.resolver.Resolve(strings.TrimSpace(parts[2]), rel) + parts[3]
	})

	for _, e := range rw.mapping.Sorted() {
		content = replaceToken(content, "/"+e.Source, "/"+e.Target)
		content = replaceToken(content, e.Source, e.Target)
	}
	return content
}
