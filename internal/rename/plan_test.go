package rename

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kadeem-campbell/siteclean/internal/config"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(rel), 0o640))
}

func planTree(t *testing.T, opts Options, files ...string) Mapping {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		writeFile(t, root, f)
	}
	mapping, err := Plan(root, config.DefaultAssetRules(), opts)
	require.NoError(t, err)
	return mapping
}

func TestPlanCanonicalizesAssetNames(t *testing.T) {
	mapping := planTree(t, Options{},
		"img/Hero Shot.PNG",
		"img/already-clean.png",
		"vids/Intro_Final.MP4",
	)

	require.Equal(t, Mapping{
		"img/Hero Shot.PNG":    "img/Hero-Shot.png",
		"vids/Intro_Final.MP4": "vids/Intro-Final.mp4",
	}, mapping)
}

func TestPlanSkipsProtectedFiles(t *testing.T) {
	mapping := planTree(t, Options{RenameAll: true},
		"Index.HTML",
		"about/INDEX.html",
		".hidden FILE.txt",
		"_redirects",
		"_headers",
		"Documents/Annual Report 2024.pdf",
	)
	require.Empty(t, mapping)
}

func TestPlanNonAssetsNeedRenameAll(t *testing.T) {
	files := []string{"pages/Old Page.html"}

	require.Empty(t, planTree(t, Options{}, files...))

	mapping := planTree(t, Options{RenameAll: true}, files...)
	require.Equal(t, Mapping{"pages/Old Page.html": "pages/Old-Page.html"}, mapping)
}

func TestPlanBinaryExtensionEligibleAnywhere(t *testing.T) {
	mapping := planTree(t, Options{}, "misc/Team Photo.JPG")
	require.Equal(t, Mapping{"misc/Team Photo.JPG": "misc/Team-Photo.jpg"}, mapping)
}

func TestPlanCollisionFallsBackToExtensionFix(t *testing.T) {
	// Both canonicalize to img/a-b.png; the second planned file keeps its stem
	// and only fixes the extension casing.
	mapping := planTree(t, Options{},
		"img/a b.png",
		"img/a_b.PNG",
	)

	require.Equal(t, Mapping{
		"img/a b.png": "img/a-b.png",
		"img/a_b.PNG": "img/a_b.png",
	}, mapping)
}

func TestPlanCollisionWithNoUsableFallbackSkips(t *testing.T) {
	// Fallback equals the original name, so the second file is left untouched.
	mapping := planTree(t, Options{},
		"img/a b.png",
		"img/a_b.png",
	)

	require.Equal(t, Mapping{"img/a b.png": "img/a-b.png"}, mapping)
}

func TestPlanInvariants(t *testing.T) {
	mapping := planTree(t, Options{RenameAll: true},
		"img/Hero Shot.PNG",
		"img/Hero_Shot.PNG",
		"img/Hero%20Shot.PNG",
		"cards/Card One.webp",
		"misc/notes FILE.txt",
	)

	seen := make(map[string]string)
	for src, dst := range mapping {
		require.NotEqual(t, src, dst, "a path never maps to itself")
		prev, dup := seen[dst]
		require.False(t, dup, "target %s planned for both %s and %s", dst, prev, src)
		seen[dst] = src
	}
}
