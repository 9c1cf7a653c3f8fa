package python

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Source records where an interpreter came from.
type Source int

const (
	// SourceSystem interpreters were discovered on PATH.
	SourceSystem Source = iota
	// SourceManaged interpreters were fetched from the release index and
	// live under the cache.
	SourceManaged
)

// String returns the source name.
func (s Source) String() string {
	if s == SourceManaged {
		return "managed"
	}
	return "system"
}

// Interpreter is a resolved Python interpreter.
type Interpreter struct {
	version *goversion.Version
	path    string
	source  Source
}

// NewInterpreter constructs an interpreter from a parsed version, its
// executable or archive path, and its source.
func NewInterpreter(version *goversion.Version, path string, source Source) *Interpreter {
	return &Interpreter{version: version, path: path, source: source}
}

// Version returns the interpreter's version string, e.g. "3.12.1".
func (i *Interpreter) Version() string {
	return i.version.String()
}

// Path returns the interpreter's executable or archive path.
func (i *Interpreter) Path() string {
	return i.path
}

// Source returns where the interpreter came from.
func (i *Interpreter) Source() Source {
	return i.source
}

// String describes the interpreter for diagnostics.
func (i *Interpreter) String() string {
	return fmt.Sprintf("cpython %s (%s, %s)", i.Version(), i.source, i.path)
}
