package rename

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kadeem-campbell/siteclean/internal/logfields"
)

// Apply executes the mapping against the tree under root, deepest paths first.
// A source missing at apply time has already been moved or removed out of band
// and is skipped. With dryRun set, intended renames are logged and nothing is
// mutated.
func Apply(root string, mapping Mapping, dryRun bool) error {
	for _, e := range mapping.Sorted() {
		oldPath := filepath.Join(root, filepath.FromSlash(e.Source))
		newPath := filepath.Join(root, filepath.FromSlash(e.Target))

		if _, err := os.Lstat(oldPath); err != nil {
			if os.IsNotExist(err) {
				slog.Debug("Rename source gone, skipping", logfields.Source(e.Source))
				continue
			}
			return fmt.Errorf("failed to stat rename source %s: %w", e.Source, err)
		}

		if dryRun {
			slog.Info("Would rename", logfields.Source(e.Source), logfields.Target(e.Target))
			continue
		}

		if err := os.MkdirAll(filepath.Dir(newPath), 0o750); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", e.Target, err)
		}
		if err := os.Rename(oldPath, newPath); err != nil {
			return fmt.Errorf("failed to rename %s to %s: %w", e.Source, e.Target, err)
		}
		slog.Debug("Renamed", logfields.Source(e.Source), logfields.Target(e.Target))
	}
	return nil
}
