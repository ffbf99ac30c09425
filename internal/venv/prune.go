package venv

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// noisyDirs are never descended into, compared case-sensitively.
var noisyDirs = map[string]bool{
	"node_modules":              true,
	"$RECYCLE.BIN":              true,
	"System Volume Information": true,
}

var noisySubstrings = []string{"temp", "cache", "tmp"}

// SkipDir reports whether a directory with the given base name is pruned
// from a full scan.
func SkipDir(name string) bool {
	if noisyDirs[name] {
		return true
	}
	lower := strings.ToLower(name)
	for _, s := range noisySubstrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// SkipPath re-checks a candidate found during a full scan. rel is the
// candidate's path relative to the scan root. Any component equal to temp,
// cache or tmp, or containing node_modules, rejects it. The root's own
// path is never checked, so a home under a temp directory still scans.
func SkipPath(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		p := strings.ToLower(part)
		switch {
		case p == "temp", p == "cache", p == "tmp":
			return true
		case strings.Contains(p, "node_modules"):
			return true
		}
	}
	return false
}

// matchAny reports whether the slash-separated rel path matches one of the
// doublestar patterns. Invalid patterns never match.
func matchAny(patterns []string, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
