package initproj

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skshetry/uv/internal/netclient"
	"github.com/skshetry/uv/internal/output"
	"github.com/skshetry/uv/internal/python"
	"github.com/skshetry/uv/internal/pyproject"
	"github.com/skshetry/uv/internal/vcs"
	"github.com/skshetry/uv/internal/workspace"
)

// ManifestName is the manifest file written for the new package.
const ManifestName = "pyproject.toml"

// PinFileName is the interpreter pin written at the project root.
const PinFileName = ".python-version"

// InterpreterResolver finds or fetches an interpreter for the pin step. It
// is satisfied by *python.Resolver and stubbed in tests.
type InterpreterResolver interface {
	FindOrFetch(ctx context.Context, req *python.Request, env python.EnvironmentPreference, pref python.Preference, fetch python.FetchPolicy, client *netclient.Client) (*python.Interpreter, error)
}

// Orchestrator runs the initialization sequence. The zero value resolves
// collaborators to their defaults on first use.
type Orchestrator struct {
	// WorkDir overrides the current working directory. Used by tests.
	WorkDir string
	// Resolver finds or fetches the interpreter for the pin step.
	Resolver InterpreterResolver
	// Printer receives the status lines. Defaults to stderr.
	Printer *output.Printer
}

// state carries the values the steps hand forward. It lives for exactly one
// Run call.
type state struct {
	ctx context.Context
	req Request

	cwd        string
	ws         *workspace.Context // nil when not inside a workspace
	projectDir string
	name       string
	pinned     string
}

// step is one fallible action in the initialization sequence.
type step struct {
	name string
	run  func(*state) error
}

// Run executes the initialization steps in order, stopping at the first
// failure. Steps are commit points: side effects of completed steps stay on
// disk when a later step fails.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Outcome, error) {
	if !req.Preview {
		o.printer().Warnf("`uv init` is experimental and may change without warning.")
	}

	st := &state{ctx: ctx, req: req}
	for _, s := range o.steps() {
		if err := s.run(st); err != nil {
			return nil, err
		}
	}

	outcome := &Outcome{
		Name:          st.name,
		ProjectDir:    st.projectDir,
		PinnedVersion: st.pinned,
	}
	if st.ws != nil {
		outcome.WorkspaceRoot = st.ws.Root
	}
	return outcome, nil
}

func (o *Orchestrator) steps() []step {
	return []step{
		{"discover workspace", o.discoverWorkspace},
		{"resolve project directory", o.resolveProjectDir},
		{"resolve package name", o.resolveName},
		{"check not initialized", o.checkNotInitialized},
		{"create skeleton", o.createSkeleton},
		{"create module file", o.createModuleFile},
		{"create readme", o.createReadme},
		{"initialize version control", o.initVersionControl},
		{"pin interpreter", o.pinInterpreter},
		{"register workspace member", o.registerMember},
		{"report", o.report},
	}
}

// discoverWorkspace resolves the canonical working directory and looks for
// an enclosing workspace. A missing manifest means "not in a workspace";
// any other discovery failure is fatal.
func (o *Orchestrator) discoverWorkspace(st *state) error {
	cwd := o.WorkDir
	if cwd == "" {
		var err error
		cwd, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving current directory: %w", err)
		}
	}
	canonical, err := filepath.EvalSymlinks(cwd)
	if err != nil {
		return fmt.Errorf("resolving current directory: %w", err)
	}
	st.cwd = canonical

	ws, err := workspace.Discover(canonical)
	switch {
	case err == nil:
		st.ws = ws
	case errors.Is(err, workspace.ErrMissingPyproject):
		st.ws = nil
	default:
		return fmt.Errorf("discovering workspace: %w", err)
	}
	return nil
}

// resolveProjectDir anchors a relative path argument to the canonical
// working directory so later steps and the workspace member entry agree on
// one location.
func (o *Orchestrator) resolveProjectDir(st *state) error {
	switch {
	case st.req.Path == "":
		st.projectDir = st.cwd
	case filepath.IsAbs(st.req.Path):
		st.projectDir = filepath.Clean(st.req.Path)
	default:
		st.projectDir = filepath.Join(st.cwd, st.req.Path)
	}
	return nil
}

func (o *Orchestrator) resolveName(st *state) error {
	if st.req.Name != "" {
		if !ValidPackageName(st.req.Name) {
			return &InvalidNameError{Name: st.req.Name}
		}
		st.name = st.req.Name
		return nil
	}

	name, err := DeriveName(st.projectDir)
	if err != nil {
		return err
	}
	st.name = name
	return nil
}

// checkNotInitialized is the only hard stop before mutation begins.
func (o *Orchestrator) checkNotInitialized(st *state) error {
	if _, err := os.Stat(filepath.Join(st.projectDir, ManifestName)); err == nil {
		return ErrAlreadyInitialized
	}
	return nil
}

// createSkeleton creates the source directory and writes the manifest. The
// manifest is always written fresh; checkNotInitialized has already ruled
// out an existing one.
func (o *Orchestrator) createSkeleton(st *state) error {
	srcDir := filepath.Join(st.projectDir, "src", st.name)
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", srcDir, err)
	}

	manifestPath := filepath.Join(st.projectDir, ManifestName)
	if err := os.WriteFile(manifestPath, []byte(PyProjectTemplate(st.name)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", manifestPath, err)
	}
	return nil
}

// createModuleFile writes the default module only when absent, protecting
// user content across repeated invocations.
func (o *Orchestrator) createModuleFile(st *state) error {
	initPy := filepath.Join(st.projectDir, "src", st.name, "__init__.py")
	_, err := CreateIfAbsent(initPy, InitModuleTemplate(st.name))
	return err
}

func (o *Orchestrator) createReadme(st *state) error {
	if st.req.NoReadme {
		return nil
	}
	_, err := CreateIfAbsent(filepath.Join(st.projectDir, "README.md"), "")
	return err
}

func (o *Orchestrator) initVersionControl(st *state) error {
	if st.req.VCS != VCSGit {
		return nil
	}
	if vcs.InsideRepository(st.projectDir) {
		return nil
	}
	return vcs.Init(st.projectDir)
}

// pinInterpreter writes .python-version, only outside a workspace: members
// inherit pinning from the workspace root.
func (o *Orchestrator) pinInterpreter(st *state) error {
	if st.req.NoPin || st.ws != nil {
		return nil
	}

	client, err := netclient.NewBuilder().
		Connectivity(st.req.Connectivity).
		NativeTLS(st.req.NativeTLS).
		Build()
	if err != nil {
		return fmt.Errorf("building network client: %w", err)
	}

	req, err := python.ParseRequest(st.req.Python)
	if err != nil {
		return err
	}

	stop := o.printer().StartSpinner("Resolving Python interpreter")
	interpreter, err := o.resolver().FindOrFetch(
		st.ctx, req, python.OnlySystem,
		st.req.PythonPreference, st.req.PythonFetch, client,
	)
	stop()
	if err != nil {
		return err
	}

	pinPath := filepath.Join(st.projectDir, PinFileName)
	created, err := CreateIfAbsent(pinPath, interpreter.Version())
	if err != nil {
		return err
	}
	if created {
		st.pinned = interpreter.Version()
	}
	return nil
}

// registerMember rewrites the enclosing workspace manifest with the new
// project added to its member list. The new package's own files stay on
// disk even when this fails.
func (o *Orchestrator) registerMember(st *state) error {
	if st.ws == nil {
		return nil
	}

	editor, err := pyproject.FromDocument(st.ws.RawManifest())
	if err != nil {
		return fmt.Errorf("editing workspace manifest %s: %w", st.ws.ManifestPath, err)
	}
	if err := editor.AddWorkspaceMember(st.projectDir); err != nil {
		return fmt.Errorf("editing workspace manifest %s: %w", st.ws.ManifestPath, err)
	}

	doc, err := editor.Document()
	if err != nil {
		return fmt.Errorf("editing workspace manifest %s: %w", st.ws.ManifestPath, err)
	}
	if err := os.WriteFile(st.ws.ManifestPath, doc, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", st.ws.ManifestPath, err)
	}
	return nil
}

// report writes the status lines. Reporting has no effect on the
// success/failure classification.
func (o *Orchestrator) report(st *state) error {
	p := o.printer()
	if st.ws != nil {
		p.Statusf("Adding %s as member of workspace %s", st.name, st.ws.Root)
	}

	if st.req.Path != "" {
		abs, err := filepath.Abs(st.projectDir)
		if err != nil {
			abs = st.projectDir
		}
		p.Statusf("Initialized project %s in %s", st.name, abs)
	} else {
		p.Statusf("Initialized project %s", st.name)
	}
	return nil
}

func (o *Orchestrator) printer() *output.Printer {
	if o.Printer == nil {
		o.Printer = output.NewPrinter()
	}
	return o.Printer
}

func (o *Orchestrator) resolver() InterpreterResolver {
	if o.Resolver == nil {
		root, err := python.DefaultCacheRoot()
		if err != nil {
			root = filepath.Join(os.TempDir(), "uv-cache")
		}
		o.Resolver = python.NewResolver(python.NewCache(root), "")
	}
	return o.Resolver
}
