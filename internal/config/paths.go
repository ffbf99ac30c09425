package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// CacheFileName is the scan cache, stored in the temp directory.
	CacheFileName = "python_venv_cache.json"
	// ConfigFileName is the optional user config, stored in ~/.config.
	ConfigFileName = "python_venv_config.toml"
)

// ErrHomeUnavailable is returned when the home directory cannot be determined.
var ErrHomeUnavailable = errors.New("home directory unavailable")

// Paths holds every filesystem location the tools touch. It is built once at
// startup and passed down, so tests can point it at a temp tree.
type Paths struct {
	Home       string
	Temp       string
	ConfigFile string
	CacheFile  string
}

// DefaultPaths resolves Paths from the process environment.
//
// Overrides: APE_HOME replaces the home directory, APE_CONFIG_DIR the
// directory holding the config file and APE_CACHE_DIR the directory holding
// the cache file. When no home directory can be found the returned Paths has
// an empty Home and the error wraps ErrHomeUnavailable; callers may keep
// going with an empty search set.
func DefaultPaths() (Paths, error) {
	var p Paths
	var homeErr error

	p.Home = os.Getenv("APE_HOME")
	if p.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			homeErr = fmt.Errorf("%w: %v", ErrHomeUnavailable, err)
		} else {
			p.Home = home
		}
	}

	p.Temp = os.TempDir()

	cacheDir := os.Getenv("APE_CACHE_DIR")
	if cacheDir == "" {
		cacheDir = p.Temp
	}
	p.CacheFile = filepath.Join(cacheDir, CacheFileName)

	configDir := os.Getenv("APE_CONFIG_DIR")
	if configDir == "" {
		// Mirrors the previous tool, which fell back to "." without a profile.
		base := p.Home
		if base == "" {
			base = "."
		}
		configDir = filepath.Join(base, ".config")
	}
	p.ConfigFile = filepath.Join(configDir, ConfigFileName)

	return p, homeErr
}

// PathsForHome builds Paths rooted at home with cache and config placed the
// way DefaultPaths would place them without overrides.
func PathsForHome(home, temp string) Paths {
	return Paths{
		Home:       home,
		Temp:       temp,
		ConfigFile: filepath.Join(home, ".config", ConfigFileName),
		CacheFile:  filepath.Join(temp, CacheFileName),
	}
}
