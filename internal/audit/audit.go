// Package audit reports references in the build output that are still not
// root-absolute after a cleanup run. It is read-only: findings are surfaced
// for the operator, nothing is rewritten here.
package audit

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/kadeem-campbell/siteclean/internal/markdown"
	"github.com/kadeem-campbell/siteclean/internal/resolve"
	"github.com/kadeem-campbell/siteclean/internal/site"
)

// Finding is one reference that is neither root-absolute nor skippable.
type Finding struct {
	File   string // root-relative path of the containing file
	Ref    string // the offending reference
	Source string // where it was found: attr, css-url, html, markdown
}

var (
	attrRefPattern = regexp.MustCompile(`(?i)(?:href|src)\s*=\s*["']([^"']+)["']`)
	cssRefPattern  = regexp.MustCompile(`(?i)url\(\s*["']?([^"')]+)["']?\s*\)`)
)

// Scan walks the build output and returns non-root local references found in
// markup and stylesheets. With deep set, HTML files are additionally parsed
// for link-bearing elements and Markdown files for link destinations.
func Scan(buildDir string, deep bool) ([]Finding, error) {
	files, err := site.Snapshot(buildDir)
	if err != nil {
		return nil, err
	}

	var findings []Finding
	record := func(file, ref, source string) {
		ref = strings.TrimSpace(ref)
		if ref == "" || resolve.Skip(ref) || strings.HasPrefix(ref, "/") {
			return
		}
		findings = append(findings, Finding{File: file, Ref: ref, Source: source})
	}

	for _, rel := range files {
		ext := strings.ToLower(filepath.Ext(rel))
		switch ext {
		case ".html", ".css":
		case ".md":
			if !deep {
				continue
			}
		default:
			continue
		}

		content, err := site.ReadText(filepath.Join(buildDir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}

		switch ext {
		case ".html":
			for _, m := range attrRefPattern.FindAllStringSubmatch(content, -1) {
				record(rel, m[1], "attr")
			}
			if deep {
				for _, link := range extractHTMLRefs(content) {
					record(rel, link, "html")
				}
			}
		case ".css":
			for _, m := range cssRefPattern.FindAllStringSubmatch(content, -1) {
				record(rel, m[1], "css-url")
			}
		case ".md":
			for _, link := range markdown.ExtractLinks([]byte(content)) {
				record(rel, link.Destination, "markdown")
			}
		}
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		return findings[i].Ref < findings[j].Ref
	})
	return dedupe(findings), nil
}

func dedupe(findings []Finding) []Finding {
	out := findings[:0]
	var last Finding
	for i, f := range findings {
		if i > 0 && f.File == last.File && f.Ref == last.Ref {
			continue
		}
		out = append(out, f)
		last = f
	}
	return out
}
