package rename

import (
	"log/slog"
	"strings"

	"github.com/kadeem-campbell/siteclean/internal/config"
	"github.com/kadeem-campbell/siteclean/internal/logfields"
	"github.com/kadeem-campbell/siteclean/internal/naming"
	"github.com/kadeem-campbell/siteclean/internal/site"
)

// Options controls which files the planner considers.
type Options struct {
	// RenameAll extends rename eligibility to non-asset files.
	RenameAll bool
}

// Plan walks the tree under root and returns the rename mapping. Planning
// never mutates the filesystem; the full mapping is computed before any rename
// is applied so the walk never reads its own writes.
func Plan(root string, rules *config.AssetRules, opts Options) (Mapping, error) {
	files, err := site.Snapshot(root)
	if err != nil {
		return nil, err
	}

	mapping := make(Mapping)
	targets := make(map[string]struct{})

	for _, rel := range files {
		parts := strings.Split(rel, "/")
		name := parts[len(parts)-1]

		// Dotfiles and deploy control files are never renamed.
		if strings.HasPrefix(name, ".") || rules.IsReservedName(name) {
			continue
		}

		// Names under the documents directory are intentional.
		if parts[0] == rules.DocumentsDir {
			continue
		}

		// Page-folder entrypoints keep their name regardless of case.
		if strings.EqualFold(name, "index.html") {
			continue
		}

		stem, ext := naming.SplitExt(name)
		isAsset := rules.IsAssetDir(parts[0]) || rules.IsBinaryExt(ext)
		if !isAsset && !opts.RenameAll {
			continue
		}

		newName := naming.Canonical(stem) + strings.ToLower(ext)
		if newName == name {
			continue
		}

		dir := strings.Join(parts[:len(parts)-1], "/")
		newRel := joinRel(dir, newName)

		if _, taken := targets[newRel]; taken {
			// Collision on the canonical name: fall back to only fixing the
			// extension casing, and give up on this file if that collides too.
			fallback := joinRel(dir, stem+strings.ToLower(ext))
			if _, taken := targets[fallback]; fallback != rel && !taken {
				mapping[rel] = fallback
				targets[fallback] = struct{}{}
			} else {
				slog.Debug("Skipping rename, target collides", logfields.Source(rel), logfields.Target(newRel))
			}
			continue
		}

		mapping[rel] = newRel
		targets[newRel] = struct{}{}
	}

	return mapping, nil
}

func joinRel(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
