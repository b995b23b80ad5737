package site

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// pageFilter decides which markdown files under the docs dir become pages.
type pageFilter struct {
	include []string
	exclude []string
}

// allows reports whether relPath passes the include and exclude patterns.
// An empty include list includes everything.
func (f pageFilter) allows(relPath string) bool {
	if len(f.include) > 0 && !matchesAny(relPath, f.include) {
		return false
	}
	return !matchesAny(relPath, f.exclude)
}

// matchesAny checks if relPath matches any of the given glob patterns.
// It uses doublestar for ** support and also tries the bare filename.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
