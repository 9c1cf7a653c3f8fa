// Package pyproject models the slice of pyproject.toml that uv reads and
// writes: the [project] table, the [tool.uv] table, and the workspace member
// list under [tool.uv.workspace]. Tables outside this slice are not modeled;
// the editor re-emits only the modeled document.
package pyproject

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// PyProject is the parsed manifest document.
type PyProject struct {
	Project Project `toml:"project"`
	Tool    *Tool   `toml:"tool,omitempty"`
}

// Project holds the [project] table metadata.
type Project struct {
	Name           string   `toml:"name"`
	Version        string   `toml:"version"`
	Description    string   `toml:"description,omitempty"`
	Dependencies   []string `toml:"dependencies"`
	Readme         string   `toml:"readme,omitempty"`
	RequiresPython string   `toml:"requires-python,omitempty"`
}

// Tool holds the [tool] table; only the uv namespace is modeled.
type Tool struct {
	UV *UV `toml:"uv,omitempty"`
}

// UV holds the [tool.uv] table.
type UV struct {
	DevDependencies []string   `toml:"dev-dependencies"`
	Workspace       *Workspace `toml:"workspace,omitempty"`
}

// Workspace holds the [tool.uv.workspace] table.
type Workspace struct {
	Members []string `toml:"members"`
}

// IsWorkspaceRoot reports whether the manifest declares a workspace table.
func (p *PyProject) IsWorkspaceRoot() bool {
	return p.Tool != nil && p.Tool.UV != nil && p.Tool.UV.Workspace != nil
}

// Members returns the declared workspace member paths, or nil when the
// manifest declares no workspace.
func (p *PyProject) Members() []string {
	if !p.IsWorkspaceRoot() {
		return nil
	}
	return p.Tool.UV.Workspace.Members
}

// Parse decodes a pyproject.toml document.
func Parse(data []byte) (*PyProject, error) {
	var doc PyProject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing pyproject.toml: %w", err)
	}
	return &doc, nil
}

// Editor mutates a parsed manifest document and serializes it back to text.
type Editor struct {
	doc PyProject
}

// FromDocument parses existing manifest text into an editable document.
func FromDocument(data []byte) (*Editor, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &Editor{doc: *doc}, nil
}

// AddWorkspaceMember registers a project path in the [tool.uv.workspace]
// member list, creating the table if absent. Adding a path that is already a
// member is a no-op, so a member never appears twice.
func (e *Editor) AddWorkspaceMember(path string) error {
	if path == "" {
		return fmt.Errorf("workspace member path must not be empty")
	}
	if e.doc.Tool == nil {
		e.doc.Tool = &Tool{}
	}
	if e.doc.Tool.UV == nil {
		e.doc.Tool.UV = &UV{}
	}
	if e.doc.Tool.UV.Workspace == nil {
		e.doc.Tool.UV.Workspace = &Workspace{}
	}
	for _, member := range e.doc.Tool.UV.Workspace.Members {
		if member == path {
			return nil
		}
	}
	e.doc.Tool.UV.Workspace.Members = append(e.doc.Tool.UV.Workspace.Members, path)
	return nil
}

// Document serializes the edited manifest back to TOML text.
func (e *Editor) Document() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(e.doc); err != nil {
		return nil, fmt.Errorf("serializing pyproject.toml: %w", err)
	}
	return buf.Bytes(), nil
}
