// Package deploy holds the post-rewrite collaborators that make the build
// output deployable: presence checks for required files and upkeep of the
// _redirects control file. Both read the rewriter's output tree; neither is
// part of the rename-and-rewrite core.
package deploy

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kadeem-campbell/siteclean/internal/logfields"
	"github.com/kadeem-campbell/siteclean/internal/site"
)

// RequiredFiles must exist in a complete build output. Missing entries are
// reported, never fatal: the build continues but the deploy is incomplete.
var RequiredFiles = []string{
	"index.html",
	"_redirects",
	"_headers",
	"robots.txt",
	"sitemap.xml",
	"llms.txt",
	"schema.json",
	"feed.xml",
	"feed.json",
	"manifest.webmanifest",
	"sw.js",
	"offline.html",
	"about/index.html",
	"events/index.html",
	"team/index.html",
}

// requiredRedirects are the canonical 301 lines for retired routes.
var requiredRedirects = []string{
	"/about.html    /about/    301",
	"/events.html   /events/   301",
	"/team.html     /team/     301",
	"/events-tech-mixer.html    /events/    301",
	"/events/ctc-deliveroo-mixer.html    /events/    301",
}

// CheckStructure returns the required files missing from the build output.
func CheckStructure(buildDir string) []string {
	var missing []string
	for _, rel := range RequiredFiles {
		if _, err := os.Stat(filepath.Join(buildDir, filepath.FromSlash(rel))); err != nil {
			missing = append(missing, rel)
		}
	}
	if len(missing) > 0 {
		slog.Warn("Missing required files", logfields.Count(len(missing)))
		for _, m := range missing {
			slog.Warn("Missing required file", logfields.Path(m))
		}
	}
	return missing
}

// TidyRedirects appends any missing canonical legacy redirects to the
// _redirects file. A missing _redirects file is left alone: CheckStructure
// already reports it. Returns whether the file was (or would be) changed.
func TidyRedirects(buildDir string, dryRun bool) (bool, error) {
	path := filepath.Join(buildDir, "_redirects")
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}

	content, err := site.ReadText(path)
	if err != nil {
		return false, err
	}
	lines := strings.Split(content, "\n")

	existing := make(map[string]struct{})
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		existing[trimmed] = struct{}{}
	}

	changed := false
	for _, line := range requiredRedirects {
		if _, ok := existing[line]; !ok {
			lines = append(lines, line)
			changed = true
		}
	}
	if !changed {
		return false, nil
	}

	if dryRun {
		slog.Info("Would update _redirects with missing legacy routes", logfields.DryRun(true))
		return true, nil
	}

	out := strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
	if err := site.WriteText(path, out); err != nil {
		return false, err
	}
	slog.Info("Updated _redirects with missing legacy routes")
	return true, nil
}
