package initproj

import (
	"errors"
	"fmt"
)

// ErrAlreadyInitialized reports a manifest already present in the target
// directory. Initialization never overwrites an existing manifest.
var ErrAlreadyInitialized = errors.New("project is already initialized")

// InvalidNameError reports a supplied or derived package name that fails
// identifier validation.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	if e.Name == "" {
		return "no package name could be derived from the project directory"
	}
	return fmt.Sprintf("invalid package name %q", e.Name)
}
