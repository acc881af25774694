package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	for _, name := range []string{
		"b.hcl",
		"a.HCL",
		"nested/c.hcl",
		"nested/skip.txt",
		".hidden/d.hcl",
	} {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	// --- Act ---
	files, err := FindFilesByExtension(root, ".hcl")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.HCL"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.hcl"),
	}, files)
}

func TestFindFilesByExtension_SingleFile(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "seed.hcl")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))

	files, err := FindFilesByExtension(p, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{p}, files)

	files, err = FindFilesByExtension(p, ".json")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFilesByExtension_Errors(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".hcl")
	assert.True(t, os.IsNotExist(err))

	assert.Panics(t, func() { _, _ = FindFilesByExtension(".") })
}

func TestIsDir(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "f")
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	assert.True(t, IsDir(root))
	assert.False(t, IsDir(p))
	assert.False(t, IsDir(filepath.Join(root, "missing")))
}
