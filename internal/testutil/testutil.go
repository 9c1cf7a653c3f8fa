// Package testutil provides shared fixtures for orchestrator and resolver
// tests: temporary project layouts, stub resolvers, and stub interpreter
// finders that never spawn processes or touch the network.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	goversion "github.com/hashicorp/go-version"

	"github.com/skshetry/uv/internal/netclient"
	"github.com/skshetry/uv/internal/python"
)

// WriteFile writes content to path, creating parent directories. Fails the
// test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// WorkspaceManifest is a minimal workspace-root pyproject.toml used to
// stage an enclosing workspace in tests.
const WorkspaceManifest = `[project]
name = "root"
version = "0.1.0"
dependencies = []

[tool.uv]
dev-dependencies = []

[tool.uv.workspace]
members = []
`

// TempWorkspace creates a temporary directory holding a workspace-root
// manifest and returns its path.
func TempWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	WriteFile(t, filepath.Join(root, "pyproject.toml"), WorkspaceManifest)
	return root
}

// StubResolver satisfies the orchestrator's resolver contract with a fixed
// version or error. It records the last request it saw.
type StubResolver struct {
	Version string
	Err     error

	// LastRequest is the request passed to the most recent FindOrFetch.
	LastRequest *python.Request
	// Calls counts FindOrFetch invocations.
	Calls int
}

// FindOrFetch returns the stubbed interpreter or error.
func (s *StubResolver) FindOrFetch(_ context.Context, req *python.Request, _ python.EnvironmentPreference, _ python.Preference, _ python.FetchPolicy, _ *netclient.Client) (*python.Interpreter, error) {
	s.Calls++
	s.LastRequest = req
	if s.Err != nil {
		return nil, s.Err
	}
	v := goversion.Must(goversion.NewVersion(s.Version))
	return python.NewInterpreter(v, "/usr/bin/python3", python.SourceSystem), nil
}

// StubFinder builds a python.Finder over a fixed map of executable name to
// {path, version}. Probe failures can be simulated with an empty version.
func StubFinder(interpreters map[string][2]string) *python.Finder {
	return &python.Finder{
		LookPath: func(name string) (string, error) {
			if entry, ok := interpreters[name]; ok {
				return entry[0], nil
			}
			return "", os.ErrNotExist
		},
		Probe: func(_ context.Context, path string) (string, error) {
			for _, entry := range interpreters {
				if entry[0] == path {
					if entry[1] == "" {
						return "", os.ErrInvalid
					}
					return entry[1], nil
				}
			}
			return "", os.ErrNotExist
		},
	}
}
