// Package vcs creates and detects git repositories for newly initialized
// projects. It uses the go-git library so no git CLI is required.
package vcs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// InsideRepository reports whether dir is inside an existing git repository,
// walking up through parent directories the way git itself does.
func InsideRepository(dir string) bool {
	_, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	return err == nil
}

// Init creates a git repository at dir and writes a Python .gitignore. An
// already-existing repository at dir is left untouched.
func Init(dir string) error {
	if _, err := git.PlainInit(dir, false); err != nil {
		if errors.Is(err, git.ErrRepositoryAlreadyExists) {
			return nil
		}
		return fmt.Errorf("initializing git repository at %s: %w", dir, err)
	}

	ignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(ignorePath); err == nil {
		return nil
	}
	if err := os.WriteFile(ignorePath, []byte(GitIgnoreTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ignorePath, err)
	}
	return nil
}

// GitIgnoreTemplate returns the default ignore rules for a Python project.
func GitIgnoreTemplate() string {
	return `# Python-generated files
__pycache__/
*.py[oc]
build/
dist/
wheels/
*.egg-info

# Virtual environments
.venv
`
}
