package config

import (
	"path"
	"strings"
)

// AssetRules classifies files for rename planning and reference rewriting.
// The tables are read-only for the duration of a run and are passed explicitly
// into the planner and resolver rather than consulted as globals.
type AssetRules struct {
	// AssetDirs lists top-level directories whose files are rename-eligible
	// by default.
	AssetDirs []string `yaml:"asset_dirs"`

	// BinaryExts are extensions treated as binary assets (rename-eligible by
	// default, never rewritten as text).
	BinaryExts []string `yaml:"binary_exts"`

	// TextExts are extensions scanned by the reference rewriter.
	TextExts []string `yaml:"text_exts"`

	// BareRootExts are extensions that make a bare filename reference (no
	// separator) resolve to the tree root.
	BareRootExts []string `yaml:"bare_root_exts"`

	// ReservedNames are deploy-platform control files that are never renamed.
	ReservedNames []string `yaml:"reserved_names"`

	// DocumentsDir is the top-level directory whose file names are considered
	// intentional and stable.
	DocumentsDir string `yaml:"documents_dir"`

	assetDirSet map[string]struct{}
	binarySet   map[string]struct{}
	textSet     map[string]struct{}
	bareRootSet map[string]struct{}
	reservedSet map[string]struct{}
}

// DefaultAssetRules returns the compiled-in rule tables.
func DefaultAssetRules() *AssetRules {
	r := &AssetRules{
		AssetDirs:  []string{"img", "cards", "icons", "socials", "vids", "Documents"},
		BinaryExts: []string{".png", ".jpg", ".jpeg", ".webp", ".svg", ".gif", ".mp4", ".webm", ".woff", ".woff2", ".ttf", ".otf", ".pdf"},
		TextExts:   []string{".html", ".css", ".js", ".json", ".xml", ".txt", ".webmanifest", ".md"},
		BareRootExts: []string{
			".jpg", ".jpeg", ".png", ".webp", ".svg", ".gif", ".mp4", ".webm", ".pdf", ".css", ".js",
		},
		ReservedNames: []string{"_redirects", "_headers"},
		DocumentsDir:  "Documents",
	}
	r.index()
	return r
}

// index builds lookup sets from the slice fields. Must be called again after
// any mutation of the exported fields (Load does this).
func (r *AssetRules) index() {
	r.assetDirSet = toSet(r.AssetDirs, false)
	r.binarySet = toSet(r.BinaryExts, true)
	r.textSet = toSet(r.TextExts, true)
	r.bareRootSet = toSet(r.BareRootExts, true)
	r.reservedSet = toSet(r.ReservedNames, false)
}

func toSet(items []string, lower bool) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, it := range items {
		if lower {
			it = strings.ToLower(it)
		}
		s[it] = struct{}{}
	}
	return s
}

// IsAssetDir reports whether a top-level directory is rename-eligible by default.
func (r *AssetRules) IsAssetDir(dir string) bool {
	_, ok := r.assetDirSet[dir]
	return ok
}

// IsBinaryExt reports whether ext (any case, leading dot) is a binary asset extension.
func (r *AssetRules) IsBinaryExt(ext string) bool {
	_, ok := r.binarySet[strings.ToLower(ext)]
	return ok
}

// IsTextFile reports whether a path should be scanned by the rewriter.
func (r *AssetRules) IsTextFile(p string) bool {
	_, ok := r.textSet[strings.ToLower(path.Ext(p))]
	return ok
}

// IsBareRootExt reports whether a bare filename with this extension is assumed
// to live at the tree root.
func (r *AssetRules) IsBareRootExt(ext string) bool {
	_, ok := r.bareRootSet[strings.ToLower(ext)]
	return ok
}

// IsReservedName reports whether name is a deploy-platform control file.
func (r *AssetRules) IsReservedName(name string) bool {
	_, ok := r.reservedSet[name]
	return ok
}
