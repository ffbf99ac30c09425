package venv

import (
	"bytes"
	"os"
	"path/filepath"
)

// Classify inspects dir and returns the environment rooted there. It returns
// false when dir has no activation script.
func Classify(dir string) (*Environment, bool) {
	if !isFile(filepath.Join(dir, ActivationScript)) {
		return nil, false
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}

	name := filepath.Base(abs)
	if name == "." || name == string(filepath.Separator) {
		return nil, false
	}

	return &Environment{
		Name: name,
		Kind: DetectKind(abs),
		Path: abs,
	}, true
}

// DetectKind guesses how the environment at dir was created. Checks run in
// priority order: conda-meta, then a uv marker inside pyvenv.cfg, then the
// activation script. The uv check is a plain substring match and can
// misclassify a venv whose config happens to mention "uv".
func DetectKind(dir string) Kind {
	if isDir(filepath.Join(dir, CondaMetaDir)) {
		return KindConda
	}

	if data, err := os.ReadFile(filepath.Join(dir, MarkerFile)); err == nil {
		if bytes.Contains(data, []byte(uvMarker)) {
			return KindUV
		}
	}

	if isFile(filepath.Join(dir, ActivationScript)) {
		return KindVenv
	}
	return KindUnknown
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
