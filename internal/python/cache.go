package python

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	goversion "github.com/hashicorp/go-version"
)

// Cache is the on-disk store for managed interpreters. Fetched interpreters
// live under <root>/python/<version>/.
type Cache struct {
	root string
}

// NewCache returns a cache rooted at the given directory. The directory is
// created lazily on first write.
func NewCache(root string) *Cache {
	return &Cache{root: root}
}

// DefaultCacheRoot returns the platform cache directory for uv.
func DefaultCacheRoot() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving user cache directory: %w", err)
	}
	return filepath.Join(dir, "uv"), nil
}

// Root returns the cache root directory.
func (c *Cache) Root() string {
	return c.root
}

// InterpreterDir returns the directory for a managed interpreter version,
// creating it and any missing parents.
func (c *Cache) InterpreterDir(version string) (string, error) {
	dir := filepath.Join(c.root, "python", version)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache directory %s: %w", dir, err)
	}
	return dir, nil
}

// Installed returns the managed interpreters already present in the cache,
// best version first.
func (c *Cache) Installed() []*Interpreter {
	entries, err := os.ReadDir(filepath.Join(c.root, "python"))
	if err != nil {
		return nil
	}

	var found []*Interpreter
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		version, err := goversion.NewVersion(entry.Name())
		if err != nil {
			continue
		}
		path := filepath.Join(c.root, "python", entry.Name())
		found = append(found, NewInterpreter(version, path, SourceManaged))
	}

	// Highest version first.
	sort.Slice(found, func(i, j int) bool {
		return found[i].version.GreaterThan(found[j].version)
	})
	return found
}
