package venv

import (
	"log/slog"
	"os"
	"path/filepath"
)

// ScanDirs lists the environments that sit directly under each of dirs, in
// directory order. Missing or unreadable directories are skipped.
func ScanDirs(dirs []string, log *slog.Logger) []Environment {
	if log == nil {
		log = slog.Default()
	}

	var envs []Environment
	for _, dir := range dirs {
		if !isDir(dir) {
			log.Debug("directory not found", "dir", dir)
			continue
		}
		log.Debug("checking directory", "dir", dir)

		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Debug("cannot read directory", "dir", dir, "error", err)
			continue
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if !isDir(path) {
				continue
			}
			env, ok := Classify(path)
			if !ok {
				log.Debug("skipping non-python folder", "name", entry.Name())
				continue
			}
			log.Debug("added environment", "name", env.Name, "kind", env.Kind)
			envs = append(envs, *env)
		}
	}
	return envs
}

// FindIn returns the first dirs/name that classifies as an environment.
func FindIn(dirs []string, name string, log *slog.Logger) (*Environment, bool) {
	if log == nil {
		log = slog.Default()
	}
	// Names are single path segments; anything else is not a lookup key.
	if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
		return nil, false
	}

	for _, dir := range dirs {
		if !isDir(dir) {
			log.Debug("directory not found", "dir", dir)
			continue
		}
		log.Debug("checking directory", "dir", dir)

		candidate := filepath.Join(dir, name)
		if !isDir(candidate) {
			continue
		}
		if env, ok := Classify(candidate); ok {
			log.Debug("found environment", "kind", env.Kind, "path", env.Path)
			return env, true
		}
	}
	return nil, false
}
