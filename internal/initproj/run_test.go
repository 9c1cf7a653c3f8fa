// Package initproj tests the initialization sequence end to end against a
// temporary filesystem, with the interpreter resolver stubbed out.
// Related: internal/initproj/run.go
// Tags: init, orchestrator, workspace, pin
package initproj

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skshetry/uv/internal/output"
	"github.com/skshetry/uv/internal/pyproject"
	"github.com/skshetry/uv/internal/testutil"
)

// newOrchestrator builds an orchestrator rooted at dir with a stubbed
// resolver and a buffered printer.
func newOrchestrator(dir string, resolver *testutil.StubResolver) (*Orchestrator, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Orchestrator{
		WorkDir:  dir,
		Resolver: resolver,
		Printer:  output.NewPrinterTo(&buf),
	}, &buf
}

func canonical(t *testing.T, dir string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

func TestRun_BareDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "foo")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	resolver := &testutil.StubResolver{Version: "3.12.1"}
	orchestrator, out := newOrchestrator(dir, resolver)

	outcome, err := orchestrator.Run(context.Background(), Request{})
	require.NoError(t, err)

	assert.Equal(t, "foo", outcome.Name)
	assert.Empty(t, outcome.WorkspaceRoot)
	assert.Equal(t, "3.12.1", outcome.PinnedVersion)

	manifest := testutil.ReadFile(t, filepath.Join(dir, "pyproject.toml"))
	assert.Contains(t, manifest, `name = "foo"`)
	assert.Contains(t, manifest, `version = "0.1.0"`)

	module := testutil.ReadFile(t, filepath.Join(dir, "src", "foo", "__init__.py"))
	assert.Contains(t, module, "Hello from foo!")

	assert.Equal(t, "", testutil.ReadFile(t, filepath.Join(dir, "README.md")))
	assert.Equal(t, "3.12.1", testutil.ReadFile(t, filepath.Join(dir, ".python-version")))

	assert.Contains(t, out.String(), "Initialized project")
	assert.NotContains(t, out.String(), " in ", "in-place init reports the bare name only")
}

func TestRun_ExplicitPath(t *testing.T) {
	t.Parallel()

	cwd := t.TempDir()
	target := filepath.Join(t.TempDir(), "bar")

	resolver := &testutil.StubResolver{Version: "3.11.9"}
	orchestrator, out := newOrchestrator(cwd, resolver)

	outcome, err := orchestrator.Run(context.Background(), Request{Path: target, Preview: true})
	require.NoError(t, err)

	assert.Equal(t, "bar", outcome.Name)
	assert.FileExists(t, filepath.Join(target, "pyproject.toml"))
	assert.FileExists(t, filepath.Join(target, "src", "bar", "__init__.py"))
	assert.Contains(t, out.String(), "Initialized project")
	assert.Contains(t, out.String(), " in ", "path-qualified init names the resolved path")
	assert.NotContains(t, out.String(), "experimental", "preview mode suppresses the warning")
}

func TestRun_ExplicitNameOverridesPathSegment(t *testing.T) {
	t.Parallel()

	cwd := t.TempDir()
	target := filepath.Join(t.TempDir(), "ignored-segment")

	orchestrator, _ := newOrchestrator(cwd, &testutil.StubResolver{Version: "3.12.0"})

	outcome, err := orchestrator.Run(context.Background(), Request{Path: target, Name: "actual"})
	require.NoError(t, err)

	assert.Equal(t, "actual", outcome.Name)
	manifest := testutil.ReadFile(t, filepath.Join(target, "pyproject.toml"))
	assert.Contains(t, manifest, `name = "actual"`)
	assert.FileExists(t, filepath.Join(target, "src", "actual", "__init__.py"))
}

func TestRun_InvalidName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		req Request
	}{
		"supplied name invalid": {req: Request{Name: "not a name"}},
		"derived name invalid":  {req: Request{Path: "/tmp/bad segment"}},
		"filesystem root":       {req: Request{Path: "/"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			orchestrator, _ := newOrchestrator(t.TempDir(), &testutil.StubResolver{Version: "3.12.0"})
			_, err := orchestrator.Run(context.Background(), tt.req)

			var invalidName *InvalidNameError
			require.ErrorAs(t, err, &invalidName)
		})
	}
}

func TestRun_AlreadyInitialized(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "foo")
	testutil.WriteFile(t, filepath.Join(dir, "pyproject.toml"), "[project]\nname = \"foo\"\n")

	resolver := &testutil.StubResolver{Version: "3.12.0"}
	orchestrator, _ := newOrchestrator(dir, resolver)

	_, err := orchestrator.Run(context.Background(), Request{})
	require.ErrorIs(t, err, ErrAlreadyInitialized)

	// Nothing was created and the resolver never ran.
	assert.NoDirExists(t, filepath.Join(dir, "src"))
	assert.NoFileExists(t, filepath.Join(dir, "README.md"))
	assert.NoFileExists(t, filepath.Join(dir, ".python-version"))
	assert.Zero(t, resolver.Calls)
}

func TestRun_NoReadme(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "foo")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	orchestrator, _ := newOrchestrator(dir, &testutil.StubResolver{Version: "3.12.0"})
	_, err := orchestrator.Run(context.Background(), Request{NoReadme: true})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "README.md"))
}

func TestRun_NoPin(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "foo")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	resolver := &testutil.StubResolver{Version: "3.12.0"}
	orchestrator, _ := newOrchestrator(dir, resolver)

	_, err := orchestrator.Run(context.Background(), Request{NoPin: true})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, ".python-version"))
	assert.Zero(t, resolver.Calls, "resolver must not run when the pin is suppressed")
}

func TestRun_ExistingPinIsPreserved(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "foo")
	testutil.WriteFile(t, filepath.Join(dir, ".python-version"), "3.8.0")

	orchestrator, _ := newOrchestrator(dir, &testutil.StubResolver{Version: "3.12.1"})
	_, err := orchestrator.Run(context.Background(), Request{})
	require.NoError(t, err)

	assert.Equal(t, "3.8.0", testutil.ReadFile(t, filepath.Join(dir, ".python-version")))
}

func TestRun_ResolverFailureLeavesSkeleton(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "foo")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	resolver := &testutil.StubResolver{Err: errors.New("no interpreter found for 3.99")}
	orchestrator, _ := newOrchestrator(dir, resolver)

	_, err := orchestrator.Run(context.Background(), Request{Python: "3.99"})
	require.Error(t, err)

	// Steps before the pin are commit points; their output stays on disk.
	assert.FileExists(t, filepath.Join(dir, "pyproject.toml"))
	assert.FileExists(t, filepath.Join(dir, "src", "foo", "__init__.py"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))
	assert.NoFileExists(t, filepath.Join(dir, ".python-version"))
}

func TestRun_InsideWorkspace(t *testing.T) {
	t.Parallel()

	root := testutil.TempWorkspace(t)
	member := filepath.Join(root, "pkgs", "leaf")
	require.NoError(t, os.MkdirAll(member, 0o755))

	resolver := &testutil.StubResolver{Version: "3.12.0"}
	orchestrator, out := newOrchestrator(member, resolver)

	outcome, err := orchestrator.Run(context.Background(), Request{})
	require.NoError(t, err)

	assert.Equal(t, "leaf", outcome.Name)
	assert.Equal(t, canonical(t, root), outcome.WorkspaceRoot)

	// A workspace member inherits pinning from the root: no pin file, no
	// resolver call.
	assert.NoFileExists(t, filepath.Join(member, ".python-version"))
	assert.Zero(t, resolver.Calls)

	// The member's own skeleton exists.
	assert.FileExists(t, filepath.Join(member, "pyproject.toml"))
	assert.FileExists(t, filepath.Join(member, "src", "leaf", "__init__.py"))

	// The workspace manifest gained the member path exactly once.
	parsed, err := pyproject.Parse([]byte(testutil.ReadFile(t, filepath.Join(root, "pyproject.toml"))))
	require.NoError(t, err)
	members := parsed.Members()
	require.Len(t, members, 1)
	assert.Equal(t, canonical(t, member), members[0])

	assert.Contains(t, out.String(), "as member of workspace")
}

func TestRun_WorkspaceManifestMalformed(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, "pyproject.toml"), "not = [valid")
	member := filepath.Join(root, "leaf")
	require.NoError(t, os.MkdirAll(member, 0o755))

	orchestrator, _ := newOrchestrator(member, &testutil.StubResolver{Version: "3.12.0"})
	_, err := orchestrator.Run(context.Background(), Request{})

	// A manifest that exists but cannot be parsed is a discovery failure,
	// not a "no workspace" outcome.
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(member, "pyproject.toml"), "discovery fails before any mutation")
}

func TestRun_PassesInterpreterRequestThrough(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "foo")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	resolver := &testutil.StubResolver{Version: "3.11.4"}
	orchestrator, _ := newOrchestrator(dir, resolver)

	_, err := orchestrator.Run(context.Background(), Request{Python: "3.11"})
	require.NoError(t, err)

	require.NotNil(t, resolver.LastRequest)
	assert.Equal(t, "3.11", resolver.LastRequest.String())
	assert.Equal(t, "3.11.4", testutil.ReadFile(t, filepath.Join(dir, ".python-version")))
}

func TestSteps_Order(t *testing.T) {
	t.Parallel()

	var names []string
	for _, s := range (&Orchestrator{}).steps() {
		names = append(names, s.name)
	}

	assert.Equal(t, []string{
		"discover workspace",
		"resolve project directory",
		"resolve package name",
		"check not initialized",
		"create skeleton",
		"create module file",
		"create readme",
		"initialize version control",
		"pin interpreter",
		"register workspace member",
		"report",
	}, names)
}
