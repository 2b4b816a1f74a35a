package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/kitchensage"
	"github.com/fwojciec/kitchensage/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("reads file contents", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pancakes.html")
		writeFile(t, path, `<div class="recipe"></div>`)

		doc, err := fs.NewFetcher().Fetch(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, `<div class="recipe"></div>`, doc)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewFetcher().Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.html"))

		assert.Equal(t, kitchensage.ENOTFOUND, kitchensage.ErrorCode(err))
	})

	t.Run("returns EINVALID for directory", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewFetcher().Fetch(context.Background(), t.TempDir())

		assert.Equal(t, kitchensage.EINVALID, kitchensage.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fs.NewFetcher().Fetch(ctx, "whatever.html")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

// Story: Expanding import sources
// Directories expand to the exports inside them; everything else passes through.

func TestExpandSources_WalksDirectoriesRecursively(t *testing.T) {
	t.Parallel()

	// Given a directory of exports with a nested folder and unrelated files
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.html"), "b")
	writeFile(t, filepath.Join(dir, "a.HTM"), "a")
	writeFile(t, filepath.Join(dir, "images", "a.jpg"), "jpg")
	writeFile(t, filepath.Join(dir, "desserts", "pie.html"), "pie")

	// When I expand it together with a URL and a missing path
	missing := filepath.Join(dir, "missing.html")
	got := fs.ExpandSources([]string{"https://example.com/r.html", dir, missing})

	// Then exports are listed in lexical order and the rest passes through
	assert.Equal(t, []string{
		"https://example.com/r.html",
		filepath.Join(dir, "a.HTM"),
		filepath.Join(dir, "b.html"),
		filepath.Join(dir, "desserts", "pie.html"),
		missing,
	}, got)
}

func TestExpandSources_EmptyDirectoryYieldsNothing(t *testing.T) {
	t.Parallel()

	got := fs.ExpandSources([]string{t.TempDir()})

	assert.Empty(t, got)
}

func TestExpandSources_UnreadableDirectoryFailsAlone(t *testing.T) {
	t.Parallel()
	if os.Geteuid() == 0 {
		t.Skip("root can read any directory")
	}

	// Given an export folder where one nested folder cannot be read
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.html"), "a")
	writeFile(t, filepath.Join(dir, "locked", "b.html"), "b")
	writeFile(t, filepath.Join(dir, "soups", "c.html"), "c")
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	// When I expand it
	got := fs.ExpandSources([]string{dir})

	// Then the readable exports are listed and the locked folder passes through
	assert.Equal(t, []string{
		filepath.Join(dir, "a.html"),
		locked,
		filepath.Join(dir, "soups", "c.html"),
	}, got)

	// And fetching the locked folder reports why it could not be read
	_, err := fs.NewFetcher().Fetch(context.Background(), locked)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestIsExport(t *testing.T) {
	t.Parallel()

	assert.True(t, fs.IsExport("Recipes/Pancakes.html"))
	assert.True(t, fs.IsExport("stew.HTM"))
	assert.False(t, fs.IsExport("index.css"))
	assert.False(t, fs.IsExport("README"))
}
