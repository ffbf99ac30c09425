package venv

import (
	"os"
	"path/filepath"
	"testing"
)

// mkEnv creates an environment skeleton at root/rel. cfg, when non-empty, is
// written as pyvenv.cfg.
func mkEnv(t *testing.T, root, rel, cfg string) string {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(rel))
	script := filepath.Join(dir, ActivationScript)
	if err := os.MkdirAll(filepath.Dir(script), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(script, []byte("@echo off\n"), 0o644); err != nil {
		t.Fatalf("write activation script: %v", err)
	}
	if cfg != "" {
		if err := os.WriteFile(filepath.Join(dir, MarkerFile), []byte(cfg), 0o644); err != nil {
			t.Fatalf("write %s: %v", MarkerFile, err)
		}
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

const venvCfg = "home = C:\\Python312\ninclude-system-site-packages = false\nversion = 3.12.1\n"

const uvCfg = "home = C:\\Python312\nimplementation = CPython\nuv = 0.4.18\nversion_info = 3.12.1\n"
