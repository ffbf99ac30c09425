package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/pyvenv/ape/internal/venv"
)

// testEnv points home, cache and config at fresh temp dirs.
func testEnv(t *testing.T) (home, cacheDir string) {
	t.Helper()
	home = t.TempDir()
	cacheDir = t.TempDir()
	t.Setenv("APE_HOME", home)
	t.Setenv("APE_CACHE_DIR", cacheDir)
	t.Setenv("APE_CONFIG_DIR", filepath.Join(home, ".config"))
	t.Setenv("APE_LOG_LEVEL", "")
	t.Setenv("APE_LOG_FORMAT", "")
	t.Setenv("NO_COLOR", "1")
	return home, cacheDir
}

// mkVenv creates a minimal venv at root/rel and returns its path.
func mkVenv(t *testing.T, root, rel string) string {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(rel))
	script := filepath.Join(dir, venv.ActivationScript)
	if err := os.MkdirAll(filepath.Dir(script), 0755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(script, []byte(""), 0644)
	os.WriteFile(filepath.Join(dir, venv.MarkerFile), []byte("home = /usr/bin\n"), 0644)
	return dir
}

func newTestApp(t *testing.T, stdin string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	return Bootstrap(cmd, Options{NoColor: true}), &out, &errOut
}
