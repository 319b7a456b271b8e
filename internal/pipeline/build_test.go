package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kadeem-campbell/siteclean/internal/config"
)

func TestBuildProducesCleanedCopy(t *testing.T) {
	src := fixtureTree(t)
	out := filepath.Join(t.TempDir(), "out")

	result, err := Build(config.Default(), src, out, BuildOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, result.Mapping)

	// Source untouched, output cleaned.
	require.FileExists(t, filepath.Join(src, "img", "Hero Shot.PNG"))
	require.FileExists(t, filepath.Join(out, "img", "Hero-Shot.png"))
	require.Contains(t, readFile(t, out, "index.html"), `/img/Hero-Shot.png`)
}

func TestBuildKeepOutRefusesExistingOutput(t *testing.T) {
	src := fixtureTree(t)
	out := t.TempDir() // exists

	_, err := Build(config.Default(), src, out, BuildOptions{KeepOut: true})
	require.Error(t, err)
}

func TestBuildReplacesExistingOutput(t *testing.T) {
	src := fixtureTree(t)
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(out, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(out, "stale.txt"), []byte("old"), 0o640))

	_, err := Build(config.Default(), src, out, BuildOptions{})
	require.NoError(t, err)
	require.NoFileExists(t, filepath.Join(out, "stale.txt"))
	require.FileExists(t, filepath.Join(out, "index.html"))
}

func TestBuildDryRunTouchesNothing(t *testing.T) {
	src := fixtureTree(t)
	out := filepath.Join(t.TempDir(), "out")

	result, err := Build(config.Default(), src, out, BuildOptions{DryRun: true})
	require.NoError(t, err)
	require.NotEmpty(t, result.Mapping)
	require.NoDirExists(t, out)
	require.FileExists(t, filepath.Join(src, "img", "Hero Shot.PNG"))
}

func TestBuildMissingSourceFails(t *testing.T) {
	_, err := Build(config.Default(), filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "out"), BuildOptions{})
	require.Error(t, err)
}
