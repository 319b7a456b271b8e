package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kadeem-campbell/siteclean/internal/config"
	"github.com/kadeem-campbell/siteclean/internal/logfields"
	"github.com/kadeem-campbell/siteclean/internal/site"
)

// BuildOptions drive a full copy-and-clean build.
type BuildOptions struct {
	RenameAll bool
	DryRun    bool
	// KeepOut refuses to delete a pre-existing output directory.
	KeepOut bool
}

// Build produces a cleaned copy of srcDir at outDir: it settles ownership of
// the output directory, copies the site, then runs the cleanup pipeline on the
// copy. In dry-run mode nothing is copied or removed; the pipeline previews
// directly against the source tree.
func Build(cfg *config.Config, srcDir, outDir string, opts BuildOptions) (*Result, error) {
	if _, err := os.Stat(srcDir); err != nil {
		return nil, fmt.Errorf("site root not found: %w", err)
	}

	buildDir := outDir
	if opts.DryRun {
		buildDir = srcDir
		slog.Info("Dry run, previewing against source tree", logfields.Path(srcDir))
	} else {
		if _, err := os.Stat(outDir); err == nil {
			if opts.KeepOut {
				return nil, fmt.Errorf("output directory already exists: %s", outDir)
			}
			slog.Info("Removing existing output directory", logfields.Path(outDir))
			if err := os.RemoveAll(outDir); err != nil {
				return nil, fmt.Errorf("failed to remove output directory %s: %w", outDir, err)
			}
		}
		if err := site.CopyTree(srcDir, outDir); err != nil {
			return nil, err
		}
	}

	plan := NewPlanBuilder(cfg).
		WithBuildDir(buildDir).
		WithRenameAll(opts.RenameAll).
		WithDryRun(opts.DryRun).
		Build()
	return Run(plan)
}
