package utils

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	w := zip.NewWriter(out)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "pkg.zip")
	writeZip(t, zipPath, map[string]string{
		"zing-dimmer/README.md":                                "readme",
		"zing-dimmer/custom_components/zing_dimmer/sensor.py": "sensor",
	})

	dest := filepath.Join(dir, "out")
	require.NoError(t, ExtractZip(zipPath, dest))

	content, err := os.ReadFile(filepath.Join(dest, "zing-dimmer", "custom_components", "zing_dimmer", "sensor.py"))
	require.NoError(t, err)
	assert.Equal(t, "sensor", string(content))
}

func TestExtractZipRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "evil.zip")
	writeZip(t, zipPath, map[string]string{"../escape.txt": "nope"})

	err := ExtractZip(zipPath, filepath.Join(dir, "out"))
	assert.Error(t, err)
}

func TestArchiveRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "zing-dimmer-v1.0.0"), 0755))

	root, err := ArchiveRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "zing-dimmer-v1.0.0"), root)

	// Two top entries mean the archive has no wrapping directory.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "loose.txt"), []byte("x"), 0644))
	root, err = ArchiveRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestFindDir(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "repo", "custom_components", "zing_dimmer")
	require.NoError(t, os.MkdirAll(want, 0755))

	assert.Equal(t, want, FindDir(dir, "custom_components/zing_dimmer"))
	assert.Equal(t, "", FindDir(dir, "custom_components/other"))
}

func TestCopyTreeReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "a.txt"), []byte("a"), 0644))

	require.NoError(t, os.MkdirAll(dst, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "stale.txt"), []byte("old"), 0644))

	require.NoError(t, CopyTree(src, dst))

	_, err := os.Stat(filepath.Join(dst, "stale.txt"))
	assert.True(t, os.IsNotExist(err))
	content, err := os.ReadFile(filepath.Join(dst, "sub", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(content))
}

func TestListFilesByExt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "card.js"), []byte("js"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CARD2.JS"), []byte("js"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("md"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist.js"), 0755))

	files := ListFilesByExt(dir, ".js")
	assert.Len(t, files, 2)
}
