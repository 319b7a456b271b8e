// Package routes normalizes deprecated page routes onto their canonical
// clean-URL replacements. The table is fixed for the duration of a run and is
// consulted by the reference resolver before any path resolution happens.
package routes

import "regexp"

var slashRun = regexp.MustCompile(`//+`)

// Table maps legacy page references onto clean URLs. Read-only after construction.
type Table struct {
	pages    map[string]string
	sections map[string]struct{}
}

// Default returns the route table for the site: the retired flat .html pages,
// the deprecated event sub-pages, and the section routes that must carry a
// trailing slash.
func Default() *Table {
	t := &Table{
		pages:    make(map[string]string),
		sections: make(map[string]struct{}),
	}

	t.AddPage("team.html", "/team/")
	t.AddPage("events.html", "/events/")
	t.AddPage("about.html", "/about/")

	// Retired one-off event pages all redirect to the events index.
	t.AddPage("events-tech-mixer.html", "/events/")
	t.AddPage("events/ctc-deliveroo-mixer.html", "/events/")

	t.AddSection("/about")
	t.AddSection("/events")
	t.AddSection("/team")

	return t
}

// AddPage registers a legacy page route. Both the bare form and the
// leading-slash form are matched.
func (t *Table) AddPage(old, clean string) {
	t.pages[old] = clean
	t.pages["/"+old] = clean
}

// AddSection registers a root-absolute section route that must end with a
// trailing slash.
func (t *Table) AddSection(route string) {
	t.sections[route] = struct{}{}
}

// Normalize maps a site-internal reference onto its canonical route. The
// caller is responsible for filtering out external/scheme-prefixed references
// first. References with no legacy meaning come back with only duplicate
// slashes collapsed.
func (t *Table) Normalize(ref string) string {
	ref = slashRun.ReplaceAllString(ref, "/")

	// The home page file is the root route.
	if ref == "index.html" || ref == "/index.html" {
		return "/"
	}

	if clean, ok := t.pages[ref]; ok {
		return clean
	}

	if _, ok := t.sections[ref]; ok {
		return ref + "/"
	}

	return ref
}
