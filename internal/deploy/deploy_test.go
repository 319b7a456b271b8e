package deploy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o640))
}

func TestCheckStructureReportsMissing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", "home")
	writeFile(t, root, "_redirects", "")

	missing := CheckStructure(root)
	require.Contains(t, missing, "robots.txt")
	require.Contains(t, missing, "about/index.html")
	require.NotContains(t, missing, "index.html")
	require.NotContains(t, missing, "_redirects")
}

func TestCheckStructureCompleteTree(t *testing.T) {
	root := t.TempDir()
	for _, rel := range RequiredFiles {
		writeFile(t, root, rel, "x")
	}
	require.Empty(t, CheckStructure(root))
}

func TestTidyRedirectsAppendsMissingLines(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "_redirects", "# comments stay\n/about.html    /about/    301\n")

	changed, err := TidyRedirects(root, false)
	require.NoError(t, err)
	require.True(t, changed)

	content, err := os.ReadFile(filepath.Join(root, "_redirects"))
	require.NoError(t, err)
	s := string(content)
	require.Contains(t, s, "# comments stay")
	require.Contains(t, s, "/team.html     /team/     301")
	require.Contains(t, s, "/events/ctc-deliveroo-mixer.html    /events/    301")
	require.Equal(t, 1, strings.Count(s, "/about.html    /about/    301"), "existing line not duplicated")
	require.True(t, strings.HasSuffix(s, "\n"))
}

func TestTidyRedirectsNoopWhenComplete(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "_redirects", strings.Join(requiredRedirects, "\n")+"\n")

	changed, err := TidyRedirects(root, false)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestTidyRedirectsMissingFileIgnored(t *testing.T) {
	changed, err := TidyRedirects(t.TempDir(), false)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestTidyRedirectsDryRun(t *testing.T) {
	root := t.TempDir()
	original := "/about.html    /about/    301\n"
	writeFile(t, root, "_redirects", original)

	changed, err := TidyRedirects(root, true)
	require.NoError(t, err)
	require.True(t, changed)

	content, err := os.ReadFile(filepath.Join(root, "_redirects"))
	require.NoError(t, err)
	require.Equal(t, original, string(content), "dry run must not mutate")
}
