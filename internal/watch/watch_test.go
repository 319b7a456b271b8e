package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kadeem-campbell/siteclean/internal/config"
	"github.com/kadeem-campbell/siteclean/internal/pipeline"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o640))
}

func TestWatchInitialBuildAndChangeDrivenRebuild(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFile(t, src, "index.html", `<img src="img/Hero Shot.PNG">`)
	writeFile(t, src, "img/Hero Shot.PNG", "binary-ish")

	var builds atomic.Int32
	w, err := New(config.Default(), Options{
		SourceDir: src,
		OutDir:    out,
		Debounce:  30 * time.Millisecond,
		OnResult: func(result *pipeline.Result, err error) {
			require.NoError(t, err)
			builds.Add(1)
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return builds.Load() >= 1 }, 2*time.Second, 10*time.Millisecond,
		"initial build did not complete")
	require.FileExists(t, filepath.Join(out, "img", "Hero-Shot.png"))

	writeFile(t, src, "css/New Styles.CSS", "h1 {}")
	require.Eventually(t, func() bool { return builds.Load() >= 2 }, 2*time.Second, 10*time.Millisecond,
		"change did not trigger a rebuild")
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(out, "css", "New-Styles.css"))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher to stop")
	}
}

func TestWatchIgnoresOutputNestedUnderSource(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(src, "public")
	writeFile(t, src, "index.html", "<html></html>")

	w, err := New(config.Default(), Options{SourceDir: src, OutDir: out})
	require.NoError(t, err)
	defer w.fsw.Close()

	require.True(t, w.ignore(filepath.Join(out, "index.html")))
	require.True(t, w.ignore(out))
	require.False(t, w.ignore(filepath.Join(src, "index.html")))
}

func TestWatchMissingSourceFails(t *testing.T) {
	w, err := New(config.Default(), Options{
		SourceDir: filepath.Join(t.TempDir(), "nope"),
		OutDir:    filepath.Join(t.TempDir(), "out"),
	})
	if err == nil {
		defer w.fsw.Close()
	}
	// WalkDir tolerates a vanished root, but the watch must not claim a
	// directory it never registered.
	if err == nil {
		require.Empty(t, w.fsw.WatchList())
	}
}
