package colref

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colref/colref/rewrite"
)

func TestRewriteFacade(t *testing.T) {
	t.Parallel()
	got, err := Rewrite(`mutate(dat, result = !!typed_as_name(arg)*2)`)
	require.NoError(t, err)
	assert.Equal(t, `mutate(dat, result = !!ensym(arg)*2)`, got)
}

func TestCheckFacade(t *testing.T) {
	t.Parallel()
	matches, err := Check(`summarise(dat, m = mean(!!value_as_name(col)))`)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "value_as_name", matches[0].Callee)
	assert.Equal(t, "sym", matches[0].Native)
	assert.Equal(t, rewrite.VariantValueName, matches[0].Variant)
}

func TestCollectFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sub := filepath.Join(dir, "scripts")
	require.NoError(t, os.Mkdir(sub, 0o755))

	rfile := filepath.Join(dir, "analysis.R")
	lower := filepath.Join(sub, "prep.r")
	other := filepath.Join(dir, "README.md")
	for _, p := range []string{rfile, lower, other} {
		require.NoError(t, os.WriteFile(p, []byte("x <- 1\n"), 0o644))
	}

	files, err := CollectFiles([]string{dir})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{rfile, lower}, files)

	// explicit file arguments are kept regardless of extension
	files, err = CollectFiles([]string{other})
	require.NoError(t, err)
	assert.Equal(t, []string{other}, files)

	_, err = CollectFiles([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestRewriteFile(t *testing.T) {
	t.Parallel()
	engine := New(DefaultConfig(), nil)

	t.Run("write in place", func(t *testing.T) {
		t.Parallel()
		src := "mutate(dat, r = !!typed_as_name(a))\n"
		path := filepath.Join(t.TempDir(), "analysis.R")
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

		changed, before, out, err := RewriteFile(engine, path, true)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, src, before)
		assert.Equal(t, "mutate(dat, r = !!ensym(a))\n", out)

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, out, string(onDisk))
	})

	t.Run("dry run leaves file alone", func(t *testing.T) {
		t.Parallel()
		src := "mutate(dat, r = !!typed_as_name(a))\n"
		path := filepath.Join(t.TempDir(), "analysis.R")
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

		changed, before, out, err := RewriteFile(engine, path, false)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, src, before)
		assert.NotEqual(t, src, out)

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, src, string(onDisk))
	})

	t.Run("rewrite error leaves file alone", func(t *testing.T) {
		t.Parallel()
		src := "group_by(dat, !!!typed_as_name(a))\n"
		path := filepath.Join(t.TempDir(), "analysis.R")
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

		_, _, _, err := RewriteFile(engine, path, true)
		assert.ErrorIs(t, err, rewrite.ErrArityMismatch)

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, src, string(onDisk))
	})

	t.Run("unchanged file is not rewritten", func(t *testing.T) {
		t.Parallel()
		src := "mutate(dat, r = !!ensym(a))\n"
		path := filepath.Join(t.TempDir(), "analysis.R")
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

		changed, _, out, err := RewriteFile(engine, path, true)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, src, out)
	})
}
