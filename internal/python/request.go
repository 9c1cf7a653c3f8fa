// Package python resolves the interpreter a project should run under. It
// parses interpreter requests, discovers system interpreters on PATH, and
// fetches managed interpreters from a release index when discovery comes up
// empty and the fetch policy allows it.
package python

import (
	"fmt"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// RequestKind distinguishes the forms an interpreter request can take.
type RequestKind int

const (
	// KindAny matches any interpreter.
	KindAny RequestKind = iota
	// KindVersion matches a bare version such as "3.12" or "3.12.1".
	// Partial versions match by prefix: "3.12" accepts any 3.12.x.
	KindVersion
	// KindConstraints matches a comma-separated constraint set such as
	// ">=3.11,<3.13".
	KindConstraints
	// KindExecutable names an executable to look up on PATH.
	KindExecutable
)

var bareVersionRe = regexp.MustCompile(`^\d+(\.\d+){0,2}$`)

// Request is a parsed interpreter request.
type Request struct {
	raw         string
	kind        RequestKind
	version     *goversion.Version
	segments    int
	constraints goversion.Constraints
	executable  string
}

// ParseRequest parses an interpreter request string. An empty string yields
// a request matching any interpreter. Bare versions and constraint sets are
// matched against interpreter versions; anything else is treated as an
// executable name.
func ParseRequest(s string) (*Request, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return &Request{kind: KindAny}, nil
	}

	if bareVersionRe.MatchString(s) {
		v, err := goversion.NewVersion(s)
		if err != nil {
			return nil, fmt.Errorf("parsing interpreter version %q: %w", s, err)
		}
		return &Request{
			raw:      s,
			kind:     KindVersion,
			version:  v,
			segments: strings.Count(s, ".") + 1,
		}, nil
	}

	if strings.ContainsAny(s, "<>=!~,") {
		constraints, err := goversion.NewConstraint(s)
		if err != nil {
			return nil, fmt.Errorf("parsing interpreter constraint %q: %w", s, err)
		}
		return &Request{raw: s, kind: KindConstraints, constraints: constraints}, nil
	}

	return &Request{raw: s, kind: KindExecutable, executable: s}, nil
}

// Kind returns the request form.
func (r *Request) Kind() RequestKind {
	if r == nil {
		return KindAny
	}
	return r.kind
}

// Executable returns the requested executable name for KindExecutable
// requests, or "".
func (r *Request) Executable() string {
	if r == nil {
		return ""
	}
	return r.executable
}

// String returns the original request text, or "any" for the empty request.
func (r *Request) String() string {
	if r == nil || r.raw == "" {
		return "any"
	}
	return r.raw
}

// Matches reports whether an interpreter version satisfies the request.
// Executable requests match any version; the executable name constrains
// discovery, not the version.
func (r *Request) Matches(v *goversion.Version) bool {
	if r == nil {
		return true
	}
	switch r.kind {
	case KindVersion:
		want := r.version.Segments()
		got := v.Segments()
		for i := 0; i < r.segments && i < len(want); i++ {
			if i >= len(got) || want[i] != got[i] {
				return false
			}
		}
		return true
	case KindConstraints:
		return r.constraints.Check(v)
	default:
		return true
	}
}
