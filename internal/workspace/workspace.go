// Package workspace discovers the enclosing workspace for a directory by
// walking up the tree until a pyproject.toml is found. The nearest
// manifest-bearing ancestor is treated as the workspace root; a directory
// with no manifest-bearing ancestor is not in a workspace.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skshetry/uv/internal/pyproject"
)

// ManifestName is the file name of a workspace manifest.
const ManifestName = "pyproject.toml"

// ErrMissingPyproject signals that no manifest was found between the start
// directory and the filesystem root. It is a "not in a workspace" outcome,
// not a failure.
var ErrMissingPyproject = errors.New("no pyproject.toml found in directory or any parent")

// Context holds the resolved paths and loaded manifest for a discovered
// workspace.
type Context struct {
	// Root is the directory containing the workspace manifest.
	Root string
	// ManifestPath is the absolute path of the workspace manifest.
	ManifestPath string
	// Manifest is the parsed manifest document.
	Manifest *pyproject.PyProject

	raw []byte
}

// RawManifest returns the manifest text as read from disk.
func (c *Context) RawManifest() []byte {
	return c.raw
}

// Discover walks from start upward looking for a pyproject.toml. It returns
// ErrMissingPyproject when no manifest exists on the path to the filesystem
// root. A manifest that exists but cannot be read or parsed is a discovery
// failure, not a miss.
func Discover(start string) (*Context, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolving discovery start %s: %w", start, err)
	}

	for {
		manifestPath := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(manifestPath); err == nil {
			return load(dir, manifestPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrMissingPyproject
		}
		dir = parent
	}
}

func load(root, manifestPath string) (*Context, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading workspace manifest %s: %w", manifestPath, err)
	}

	doc, err := pyproject.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("workspace manifest %s: %w", manifestPath, err)
	}

	return &Context{
		Root:         root,
		ManifestPath: manifestPath,
		Manifest:     doc,
		raw:          data,
	}, nil
}
