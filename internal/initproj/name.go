package initproj

import (
	"path/filepath"
	"regexp"
)

// Package names follow the PEP 508 identifier grammar: ASCII letters and
// digits with interior dots, hyphens, or underscores.
var packageNameRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// ValidPackageName reports whether name is a syntactically valid package
// identifier.
func ValidPackageName(name string) bool {
	return packageNameRe.MatchString(name)
}

// DeriveName derives a package name from the final segment of the project
// directory. It returns an InvalidNameError when the segment is empty,
// unavailable (filesystem root), or not a valid identifier.
func DeriveName(projectDir string) (string, error) {
	base := filepath.Base(projectDir)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "", &InvalidNameError{}
	}
	if !ValidPackageName(base) {
		return "", &InvalidNameError{Name: base}
	}
	return base, nil
}
