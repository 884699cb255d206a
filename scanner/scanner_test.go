package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerFindsDialectFiles(t *testing.T) {
	tempDir := t.TempDir()

	files := map[string]string{
		"analysis.R":       "mutate(dat, r = !!ensym(a))",
		"prep.r":           "groups <- syms(cols)",
		"notes.txt":        "This is a text file",
		"scripts/helper.R": "f <- g",
	}

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}

	scanned, err := New(tempDir, ".R", ".r").Scan()
	require.NoError(t, err)
	require.Len(t, scanned, 3)

	// results come back sorted by path
	paths := make([]string, len(scanned))
	for i, f := range scanned {
		paths[i] = f.Path
		assert.Greater(t, f.Size, int64(0))
	}
	assert.Equal(t, []string{
		filepath.Join(tempDir, "analysis.R"),
		filepath.Join(tempDir, "prep.r"),
		filepath.Join(tempDir, "scripts", "helper.R"),
	}, paths)
}

func TestScannerNoExtensionsAcceptsAll(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "anything.xyz"), []byte("x"), 0o644))

	scanned, err := New(tempDir).Scan()
	require.NoError(t, err)
	assert.Len(t, scanned, 1)
}

func TestScannerMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing")).Scan()
	assert.Error(t, err)
}
