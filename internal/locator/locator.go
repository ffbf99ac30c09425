// Package locator answers "where is environment X?" for the command-line
// tools. It ties the cache, the configured search directories and the full
// scanner together behind a small API: Resolve, Scan, List and ClearCache.
package locator

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pyvenv/ape/internal/cache"
	"github.com/pyvenv/ape/internal/config"
	"github.com/pyvenv/ape/internal/venv"
)

// ErrNotFound is returned when a name is in neither the cache nor any search directory.
var ErrNotFound = errors.New("environment not found")

// Source says where a result came from.
type Source string

const (
	SourceCache     Source = "cache"
	SourceDirectory Source = "directory"
	SourceScan      Source = "scan"
)

// Locator resolves and lists environments.
type Locator struct {
	cache   *cache.Store
	dirs    []string
	scanner *venv.Scanner
	logger  *slog.Logger
}

// New creates a Locator for the given paths and user config.
func New(paths config.Paths, cfg *config.Config, logger *slog.Logger) *Locator {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{
		cache: cache.NewStore(paths.CacheFile),
		dirs:  config.SearchDirs(paths, cfg),
		scanner: &venv.Scanner{
			Root:    paths.Home,
			Workers: cfg.Scan.Workers,
			Exclude: cfg.Scan.Exclude,
			Logger:  logger,
		},
		logger: logger,
	}
}

// SearchDirs returns the directories checked by Resolve and List.
func (l *Locator) SearchDirs() []string {
	return l.dirs
}

// CachePath returns the cache file location.
func (l *Locator) CachePath() string {
	return l.cache.Path()
}

// HasCache reports whether a cache file exists.
func (l *Locator) HasCache() bool {
	return l.cache.Exists()
}

// Resolve finds the environment called name. The cache is consulted first
// and entries whose activation script has disappeared are skipped. Then
// each search directory is checked for a child called name. The first match
// wins; ErrNotFound is returned when nothing matches.
func (l *Locator) Resolve(name string) (*venv.Environment, Source, error) {
	if env, ok := l.fromCache(name); ok {
		return env, SourceCache, nil
	}

	l.logger.Debug("searching predefined directories", "count", len(l.dirs))
	if env, ok := venv.FindIn(l.dirs, name, l.logger); ok {
		return env, SourceDirectory, nil
	}
	return nil, "", fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (l *Locator) fromCache(name string) (*venv.Environment, bool) {
	if !l.cache.Exists() {
		return nil, false
	}
	l.logger.Debug("checking cache", "path", l.cache.Path())

	envs, err := l.cache.Load()
	if err != nil {
		l.logger.Debug("cache unusable, falling back", "error", err)
		return nil, false
	}
	l.logger.Debug("loaded cache", "environments", len(envs))

	env, ok := FindValid(envs, name)
	if ok {
		l.logger.Debug("found in cache", "name", env.Name, "kind", env.Kind, "path", env.Path)
	}
	return env, ok
}

// FindValid returns the first entry in envs whose name matches name
// case-insensitively and whose activation script still exists.
func FindValid(envs []venv.Environment, name string) (*venv.Environment, bool) {
	for i := range envs {
		if strings.EqualFold(envs[i].Name, name) && envs[i].Valid() {
			return &envs[i], true
		}
	}
	return nil, false
}

// ScanResult is the outcome of a full scan.
type ScanResult struct {
	Environments []venv.Environment
	Stats        venv.Stats
	// SaveErr is set when the cache could not be written. The environments
	// are still valid for this run.
	SaveErr error
}

// Scan walks the whole home directory and replaces the cache with what it finds.
func (l *Locator) Scan() ScanResult {
	envs, stats := l.scanner.ScanAll()
	res := ScanResult{Environments: envs, Stats: stats}

	if err := l.cache.Save(envs, l.scanner.Root); err != nil {
		l.logger.Debug("failed to save cache", "error", err)
		res.SaveErr = err
	} else {
		l.logger.Debug("cache saved", "path", l.cache.Path(), "environments", len(envs))
	}
	return res
}

// List returns the cached environments, or the environments found directly
// under the search directories when the cache is missing or unusable. The
// cache error, if any, is returned alongside the fallback result.
func (l *Locator) List() ([]venv.Environment, Source, error) {
	var cacheErr error
	if l.cache.Exists() {
		envs, err := l.cache.Load()
		if err == nil {
			return envs, SourceCache, nil
		}
		cacheErr = err
		l.logger.Debug("cache unusable, listing predefined directories", "error", err)
	}
	return venv.ScanDirs(l.dirs, l.logger), SourceDirectory, cacheErr
}

// ClearCache removes the cache file. removed is false when none existed.
func (l *Locator) ClearCache() (removed bool, err error) {
	return l.cache.Clear()
}

// Lookup picks an environment from envs by 1-based number or by
// case-insensitive name. Numbers take precedence.
func Lookup(envs []venv.Environment, input string) (*venv.Environment, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, false
	}

	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(envs) {
		return &envs[n-1], true
	}

	for i := range envs {
		if strings.EqualFold(envs[i].Name, input) {
			return &envs[i], true
		}
	}
	return nil, false
}
