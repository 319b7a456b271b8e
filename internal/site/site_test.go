package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o640))
}

func TestSnapshotSortedRelative(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", "<html></html>")
	writeFile(t, root, "img/Hero Shot.PNG", "png")
	writeFile(t, root, "about/index.html", "about")

	files, err := Snapshot(root)
	require.NoError(t, err)
	require.Equal(t, []string{"about/index.html", "img/Hero Shot.PNG", "index.html"}, files)
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "index.html", "home")
	writeFile(t, src, "img/a.png", "a")

	dst := filepath.Join(t.TempDir(), "out")
	require.NoError(t, CopyTree(src, dst))

	files, err := Snapshot(dst)
	require.NoError(t, err)
	require.Equal(t, []string{"img/a.png", "index.html"}, files)

	content, err := ReadText(filepath.Join(dst, "index.html"))
	require.NoError(t, err)
	require.Equal(t, "home", content)
}

func TestCopyTreeRefusesExistingOutput(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir() // already exists
	require.Error(t, CopyTree(src, dst))
}

func TestReadTextToleratesInvalidUTF8(t *testing.T) {
	root := t.TempDir()
	raw := []byte{'h', 'i', 0xff, 0xfe, '!'}
	require.NoError(t, os.WriteFile(filepath.Join(root, "odd.txt"), raw, 0o640))

	content, err := ReadText(filepath.Join(root, "odd.txt"))
	require.NoError(t, err)
	require.Equal(t, string(raw), content, "bytes pass through untouched")
}

func TestWriteTextCreatesParents(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "deep", "nested", "file.txt")
	require.NoError(t, WriteText(p, "x"))

	content, err := ReadText(p)
	require.NoError(t, err)
	require.Equal(t, "x", content)
}

func TestContainingDir(t *testing.T) {
	require.Equal(t, "blog/post", ContainingDir("blog/post/index.html"))
	require.Equal(t, "", ContainingDir("index.html"))
}
