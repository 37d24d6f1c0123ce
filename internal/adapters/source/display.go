package source

import (
	"os"
	"path/filepath"
	"strings"
)

// displayPath shortens path relative to the current directory when it lies below it.
func displayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
