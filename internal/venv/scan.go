package venv

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Stats summarizes a full scan.
type Stats struct {
	Files        int           // pyvenv.cfg files found
	Environments int           // files that classified as environments
	Duration     time.Duration // wall time of walk plus classification
}

// Scanner walks a directory tree looking for Python environments.
type Scanner struct {
	// Root is the top of the tree, usually the user's home directory.
	Root string
	// Workers bounds classification concurrency; <= 0 means runtime.NumCPU().
	Workers int
	// Exclude holds extra doublestar patterns, matched against paths
	// relative to Root, that prune directories from the walk.
	Exclude []string
	Logger  *slog.Logger
}

// NewScanner creates a Scanner rooted at root with default settings.
func NewScanner(root string) *Scanner {
	return &Scanner{Root: root}
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Scanner) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.NumCPU()
}

// ScanAll walks Root and returns every environment found. Symbolic links are
// not followed. Result order is not part of the contract.
func (s *Scanner) ScanAll() ([]Environment, Stats) {
	start := time.Now()
	log := s.logger()

	if s.Root == "" {
		log.Warn("scan root is empty, nothing to scan")
		return nil, Stats{}
	}

	log.Debug("scanning for environment markers", "root", s.Root, "marker", MarkerFile)
	markers := s.findMarkers()
	log.Debug("classifying marker files", "count", len(markers), "workers", s.workers())

	envs := s.classifyAll(markers)
	stats := Stats{
		Files:        len(markers),
		Environments: len(envs),
		Duration:     time.Since(start),
	}
	log.Debug("scan complete", "files", stats.Files, "environments", stats.Environments, "duration", stats.Duration)
	return envs, stats
}

// findMarkers walks the tree and returns the directories that hold a
// pyvenv.cfg file.
func (s *Scanner) findMarkers() []string {
	log := s.logger()
	var dirs []string

	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are common under a home directory.
			log.Debug("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != s.Root {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == s.Root {
				return nil
			}
			if SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			if len(s.Exclude) > 0 {
				if rel, relErr := filepath.Rel(s.Root, path); relErr == nil && matchAny(s.Exclude, rel) {
					log.Debug("excluded by pattern", "path", path)
					return filepath.SkipDir
				}
			}
			return nil
		}

		if d.Name() == MarkerFile && d.Type().IsRegular() {
			dirs = append(dirs, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		log.Warn("walk stopped early", "root", s.Root, "error", err)
	}
	return dirs
}

// classifyAll classifies dirs on a bounded worker pool. Each task writes only
// its own slot, so the slice needs no locking; results are compacted after
// the pool drains.
func (s *Scanner) classifyAll(dirs []string) []Environment {
	log := s.logger()
	slots := make([]*Environment, len(dirs))

	var g errgroup.Group
	g.SetLimit(s.workers())
	for i, dir := range dirs {
		i, dir := i, dir // per-iteration copies (go directive is 1.21)
		g.Go(func() error {
			if rel, err := filepath.Rel(s.Root, dir); err == nil && SkipPath(rel) {
				return nil
			}
			env, ok := Classify(dir)
			if !ok {
				return nil
			}
			log.Debug("found environment", "name", env.Name, "kind", env.Kind, "path", env.Path)
			slots[i] = env
			return nil
		})
	}
	_ = g.Wait()

	envs := make([]Environment, 0, len(slots))
	for _, env := range slots {
		if env != nil {
			envs = append(envs, *env)
		}
	}
	return envs
}
