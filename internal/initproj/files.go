package initproj

import (
	"fmt"
	"os"
)

// CreateIfAbsent writes content to path only when no file exists there,
// using an exclusive create so the existence check and the write are a
// single operation. Existing content is never touched. The returned bool
// reports whether a file was created.
func CreateIfAbsent(path, content string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
