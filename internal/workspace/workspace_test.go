// Package workspace tests manifest discovery by upward traversal.
// Related: internal/workspace/workspace.go
// Tags: workspace, discovery, pyproject
package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0o644))
}

const validManifest = `[project]
name = "root"
version = "0.1.0"
dependencies = []
`

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("finds manifest in start directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeManifest(t, dir, validManifest)

		ctx, err := Discover(dir)
		require.NoError(t, err)

		assert.Equal(t, dir, ctx.Root)
		assert.Equal(t, filepath.Join(dir, ManifestName), ctx.ManifestPath)
		assert.Equal(t, "root", ctx.Manifest.Project.Name)
		assert.Equal(t, validManifest, string(ctx.RawManifest()))
	})

	t.Run("finds manifest in distant ancestor", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeManifest(t, root, validManifest)
		nested := filepath.Join(root, "a", "b", "c")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		ctx, err := Discover(nested)
		require.NoError(t, err)
		assert.Equal(t, root, ctx.Root)
	})

	t.Run("nearest ancestor wins", func(t *testing.T) {
		t.Parallel()
		outer := t.TempDir()
		writeManifest(t, outer, validManifest)
		inner := filepath.Join(outer, "inner")
		writeManifest(t, inner, validManifest)

		ctx, err := Discover(filepath.Join(inner, "leaf"))
		require.NoError(t, err)
		assert.Equal(t, inner, ctx.Root)
	})

	t.Run("no manifest anywhere", func(t *testing.T) {
		t.Parallel()

		_, err := Discover(t.TempDir())
		require.ErrorIs(t, err, ErrMissingPyproject)
	})

	t.Run("malformed manifest is a failure not a miss", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeManifest(t, dir, "this is not toml = [")

		_, err := Discover(dir)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMissingPyproject)
	})
}
