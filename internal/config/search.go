package config

import (
	"path/filepath"
	"strings"
)

// HomePlaceholder is replaced with the home directory in configured directories.
const HomePlaceholder = "%USERPROFILE%"

// envDirNames are the conventional folders that hold several environments.
var envDirNames = []string{".venv", "venv", ".venvs", "venvs"}

// SearchDirs returns the ordered directories searched for environments by
// name. Configured directories win when there is at least one; otherwise
// the built-in list is used. Configured entries are not checked for
// existence here.
func SearchDirs(p Paths, cfg *Config) []string {
	if cfg != nil && len(cfg.Directories) > 0 {
		dirs := make([]string, 0, len(cfg.Directories))
		for _, d := range cfg.Directories {
			dirs = append(dirs, ExpandHome(d, p.Home))
		}
		return dirs
	}
	if p.Home == "" {
		return nil
	}
	return PredefinedDirs(p.Home)
}

// PredefinedDirs returns the built-in search list for home: each anchor
// directory followed by its .venv, venv, .venvs and venvs subfolders.
func PredefinedDirs(home string) []string {
	anchors := []string{
		home,
		filepath.Join(home, "code"),
		filepath.Join(home, "code", "python"),
		filepath.Join(home, "AppData", "Local", "Programs"),
		filepath.Join(home, "AppData", "Local", "Programs", "Python"),
	}

	dirs := make([]string, 0, len(anchors)*(len(envDirNames)+1))
	for _, anchor := range anchors {
		dirs = append(dirs, anchor)
		for _, name := range envDirNames {
			dirs = append(dirs, filepath.Join(anchor, name))
		}
	}
	return dirs
}

// ExpandHome substitutes %USERPROFILE% anywhere in dir, and a leading "~",
// with home.
func ExpandHome(dir, home string) string {
	dir = strings.ReplaceAll(dir, HomePlaceholder, home)
	if dir == "~" {
		return home
	}
	if strings.HasPrefix(dir, "~/") || strings.HasPrefix(dir, `~\`) {
		return filepath.Join(home, dir[2:])
	}
	return dir
}
