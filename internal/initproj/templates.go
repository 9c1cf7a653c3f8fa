package initproj

import "fmt"

// PyProjectTemplate renders the minimal manifest for a new package. Only the
// package name is interpolated; every other value is fixed.
func PyProjectTemplate(name string) string {
	return fmt.Sprintf(`[project]
name = "%s"
version = "0.1.0"
description = "Add your description here"
dependencies = []
readme = "README.md"

[tool.uv]
dev-dependencies = []
`, name)
}

// InitModuleTemplate renders the default module file: a greeting function
// embedding the package name.
func InitModuleTemplate(name string) string {
	return fmt.Sprintf(`def hello() -> str:
    return "Hello from %s!"
`, name)
}
