package venv

import (
	"path/filepath"
	"runtime"
)

// Kind is the best-effort classification of an environment.
type Kind string

const (
	KindVenv    Kind = "venv"
	KindConda   Kind = "conda"
	KindUV      Kind = "uv"
	KindUnknown Kind = "unknown"
)

const (
	// MarkerFile is the per-environment config written by venv, virtualenv and uv.
	MarkerFile = "pyvenv.cfg"

	// CondaMetaDir marks a conda environment root.
	CondaMetaDir = "conda-meta"

	// uvMarker identifies pyvenv.cfg files written by uv ("uv = 0.4.18").
	uvMarker = "uv"
)

// ActivationScript is the activation entry point, relative to an environment root.
var ActivationScript = activationScript(runtime.GOOS)

func activationScript(goos string) string {
	if goos == "windows" {
		return filepath.Join("Scripts", "activate.bat")
	}
	return filepath.Join("bin", "activate")
}

// Environment is a discovered Python environment.
type Environment struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"env_type" yaml:"env_type"`
	Path string `json:"path" yaml:"path"`
}

// ActivationPath returns the absolute path of the environment's activation script.
func (e Environment) ActivationPath() string {
	return filepath.Join(e.Path, ActivationScript)
}

// Valid reports whether the activation script still exists on disk.
func (e Environment) Valid() bool {
	return isFile(e.ActivationPath())
}
