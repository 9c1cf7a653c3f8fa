package python

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// candidateNames lists the executable names discovery probes, newest
// interpreter first. Versioned names come before the bare ones so a request
// like "3.11" resolves without invoking every python on PATH.
var candidateNames = []string{
	"python3.14", "python3.13", "python3.12", "python3.11",
	"python3.10", "python3.9", "python3.8",
	"python3", "python",
}

// Finder locates system interpreters on PATH. The lookup and probe functions
// are injectable so tests can discover without spawning processes.
type Finder struct {
	// LookPath resolves an executable name to a path, like exec.LookPath.
	LookPath func(name string) (string, error)
	// Probe reports the version string ("3.12.1") of the interpreter at
	// the given path.
	Probe func(ctx context.Context, path string) (string, error)
	// VirtualEnv is the active virtual environment root, if any. Under
	// OnlySystem, interpreters inside it are skipped.
	VirtualEnv string
}

// DefaultFinder probes real executables via `<python> --version`.
func DefaultFinder() *Finder {
	return &Finder{
		LookPath:   exec.LookPath,
		Probe:      probeVersion,
		VirtualEnv: os.Getenv("VIRTUAL_ENV"),
	}
}

// FindSystem locates the first PATH interpreter satisfying the request under
// the given environment preference. A nil result with nil error means no
// interpreter matched; probe failures on individual candidates are skipped,
// not fatal.
func (f *Finder) FindSystem(ctx context.Context, req *Request, env EnvironmentPreference) (*Interpreter, error) {
	for _, name := range f.candidates(req) {
		path, err := f.LookPath(name)
		if err != nil {
			continue
		}
		if env == OnlySystem && f.insideVirtualEnv(path) {
			continue
		}

		raw, err := f.Probe(ctx, path)
		if err != nil {
			continue
		}
		version, err := goversion.NewVersion(raw)
		if err != nil {
			continue
		}
		if !req.Matches(version) {
			continue
		}
		return NewInterpreter(version, path, SourceSystem), nil
	}
	return nil, nil
}

// candidates returns the executable names to probe for a request. An
// executable request probes only that name; a versioned request favors the
// matching pythonX.Y name.
func (f *Finder) candidates(req *Request) []string {
	if req.Kind() == KindExecutable {
		return []string{req.Executable()}
	}

	if req.Kind() == KindVersion && req.segments >= 2 {
		segs := req.version.Segments()
		preferred := fmt.Sprintf("python%d.%d", segs[0], segs[1])
		names := []string{preferred}
		for _, name := range candidateNames {
			if name != preferred {
				names = append(names, name)
			}
		}
		return names
	}

	return candidateNames
}

func (f *Finder) insideVirtualEnv(path string) bool {
	if f.VirtualEnv == "" {
		return false
	}
	rel, err := filepath.Rel(f.VirtualEnv, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// probeVersion runs `<path> --version` and extracts the version number from
// output of the form "Python 3.12.1".
func probeVersion(ctx context.Context, path string) (string, error) {
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("probing %s: %w", path, err)
	}

	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) < 2 || fields[0] != "Python" {
		return "", fmt.Errorf("probing %s: unexpected version output %q", path, strings.TrimSpace(string(out)))
	}
	return fields[len(fields)-1], nil
}
