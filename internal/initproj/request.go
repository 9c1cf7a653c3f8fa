// Package initproj turns a bare directory into a minimally valid Python
// package: a pyproject.toml, a src layout with a default module, an optional
// README, an optional interpreter pin, and, when the directory sits inside a
// workspace, a member registration in the enclosing workspace manifest.
//
// The orchestration is an ordered list of fallible steps with no rollback:
// each step is a commit point, and a failure stops the sequence leaving
// earlier side effects on disk.
package initproj

import (
	"fmt"

	"github.com/skshetry/uv/internal/netclient"
	"github.com/skshetry/uv/internal/python"
)

// VCSOption selects version control initialization for the new project.
type VCSOption int

const (
	// VCSNone skips version control entirely.
	VCSNone VCSOption = iota
	// VCSGit creates a git repository with a Python .gitignore, unless the
	// project is already inside one.
	VCSGit
)

// ParseVCSOption parses the CLI spelling of a VCSOption.
func ParseVCSOption(s string) (VCSOption, error) {
	switch s {
	case "none", "":
		return VCSNone, nil
	case "git":
		return VCSGit, nil
	default:
		return 0, fmt.Errorf("invalid vcs option %q (expected none or git)", s)
	}
}

// Request carries everything a single initialization needs. All fields are
// read once; nothing is mutated during the run.
type Request struct {
	// Path is the project directory. Empty means the current directory;
	// a relative path is anchored to it. The directory need not exist.
	Path string

	// Name is the package name. Empty means derive it from the final
	// segment of the project directory.
	Name string

	// NoReadme skips README creation entirely.
	NoReadme bool

	// NoPin skips the interpreter pin even outside a workspace.
	NoPin bool

	// Python is the interpreter request for the pin, e.g. "3.12".
	Python string

	// PythonPreference orders managed against system interpreters.
	PythonPreference python.Preference

	// PythonFetch controls downloading a missing interpreter.
	PythonFetch python.FetchPolicy

	// Connectivity is the network mode for the client built before any
	// interpreter fetch.
	Connectivity netclient.Connectivity

	// NativeTLS selects the platform certificate store for downloads.
	NativeTLS bool

	// Preview suppresses the experimental-command warning.
	Preview bool

	// VCS selects version control initialization. Default: none.
	VCS VCSOption
}

// Outcome summarizes a successful initialization.
type Outcome struct {
	// Name is the resolved package name.
	Name string
	// ProjectDir is the resolved project directory.
	ProjectDir string
	// WorkspaceRoot is the enclosing workspace root, or "" when the
	// project was initialized standalone.
	WorkspaceRoot string
	// PinnedVersion is the interpreter version written to the pin file,
	// or "" when no pin was attempted.
	PinnedVersion string
}
