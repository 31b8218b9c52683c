package config

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchAssociation returns the template associated with path.
// Patterns are tried in sorted order against the base name first and then the
// slash-separated path, so "*.py" and "src/**/*.go" both work.
func MatchAssociation(associations map[string]string, path string) (string, bool) {
	if path == "" {
		return "", false
	}

	slashPath := filepath.ToSlash(path)
	base := filepath.Base(path)

	for _, pattern := range sortedKeys(associations) {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return associations[pattern], true
		}
		if ok, _ := doublestar.Match(pattern, slashPath); ok {
			return associations[pattern], true
		}
	}
	return "", false
}
