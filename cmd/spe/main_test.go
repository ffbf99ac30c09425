package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pyvenv/ape/internal/cli"
	"github.com/pyvenv/ape/internal/config"
	"github.com/pyvenv/ape/internal/venv"
)

type runResult struct {
	Stdout   string
	Stderr   string
	Err      error
	Launched []venv.Environment
}

func setupHome(t *testing.T) (home, cacheDir string) {
	t.Helper()
	home = t.TempDir()
	cacheDir = t.TempDir()
	t.Setenv("APE_HOME", home)
	t.Setenv("APE_CACHE_DIR", cacheDir)
	t.Setenv("APE_CONFIG_DIR", filepath.Join(home, ".config"))
	t.Setenv("NO_COLOR", "1")
	return home, cacheDir
}

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

// resetFlags resets all spe flags to their defaults for testing.
func resetFlags() {
	speOpts = cli.Options{}
	speOutput = "table"
	spePlain = false
}

func runSpeCmd(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	resetFlags()

	var res runResult
	origLaunch := launch
	launch = func(env venv.Environment) error {
		res.Launched = append(res.Launched, env)
		return nil
	}
	defer func() { launch = origLaunch }()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		// nil would make cobra fall back to os.Args.
		args = []string{}
	}
	rootCmd.SetArgs(args)

	res.Err = rootCmd.Execute()
	res.Stdout = out.String()
	res.Stderr = errOut.String()
	return res
}

func TestSpe_NoEnvironments(t *testing.T) {
	setupHome(t)
	res := runSpeCmd(t, "")

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	for _, want := range []string{
		"Searching for Python environments in predefined directories...",
		"No Python environments found.",
		"Tip: Try running 'spe --scan'",
	} {
		if !strings.Contains(res.Stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.Stdout)
		}
	}
}

func TestSpe_SelectByNumber(t *testing.T) {
	home, _ := setupHome(t)
	mkVenv(t, home, "venvs/alpha")
	mkVenv(t, home, "venvs/beta")

	res := runSpeCmd(t, "2\n")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Launched) != 1 || res.Launched[0].Name != "beta" {
		t.Errorf("launched %+v, want beta", res.Launched)
	}
	for _, want := range []string{"NAME", "alpha", "beta", "Enter the number or name"} {
		if !strings.Contains(res.Stdout, want) {
			t.Errorf("stdout missing %q", want)
		}
	}
}

func TestSpe_SelectByNameAfterMiss(t *testing.T) {
	home, _ := setupHome(t)
	mkVenv(t, home, "code/Gamma")

	res := runSpeCmd(t, "delta\ngamma\n")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !strings.Contains(res.Stdout, `Environment "delta" not found.`) {
		t.Errorf("stdout = %q", res.Stdout)
	}
	if len(res.Launched) != 1 || res.Launched[0].Name != "Gamma" {
		t.Errorf("launched %+v, want Gamma", res.Launched)
	}
}

func TestSpe_Quit(t *testing.T) {
	home, _ := setupHome(t)
	mkVenv(t, home, "venvs/alpha")

	res := runSpeCmd(t, "q\n")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Launched) != 0 {
		t.Errorf("launched %+v, want nothing", res.Launched)
	}
	if !strings.Contains(res.Stdout, "Exiting...") {
		t.Errorf("stdout = %q", res.Stdout)
	}
}

func TestSpe_ScanThenCache(t *testing.T) {
	home, _ := setupHome(t)
	mkVenv(t, home, "far/away/project/env1")

	res := runSpeCmd(t, "q\n", "--scan")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !strings.Contains(res.Stdout, "Found 1 environments.") || !strings.Contains(res.Stdout, "env1") {
		t.Errorf("stdout = %q", res.Stdout)
	}

	// Second run reads the cache and skips the predefined directory message.
	res = runSpeCmd(t, "1\n")
	if strings.Contains(res.Stdout, "predefined directories") {
		t.Errorf("expected cache listing, got:\n%s", res.Stdout)
	}
	if len(res.Launched) != 1 || res.Launched[0].Name != "env1" {
		t.Errorf("launched %+v, want env1", res.Launched)
	}
}

func TestSpe_CorruptCacheWarns(t *testing.T) {
	home, cacheDir := setupHome(t)
	mkVenv(t, home, "venvs/alpha")
	os.WriteFile(filepath.Join(cacheDir, config.CacheFileName), []byte("{not json"), 0644)

	res := runSpeCmd(t, "alpha\n")
	if !strings.Contains(res.Stderr, "Failed to load cache") {
		t.Errorf("stderr = %q, want cache warning", res.Stderr)
	}
	if len(res.Launched) != 1 {
		t.Errorf("launched %+v, want alpha", res.Launched)
	}
}

func TestSpe_OutputJSON(t *testing.T) {
	home, _ := setupHome(t)
	dir := mkVenv(t, home, "venvs/alpha")

	res := runSpeCmd(t, "", "-o", "json")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}

	var got []venv.Environment
	if err := json.Unmarshal([]byte(res.Stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, res.Stdout)
	}
	if len(got) != 1 || got[0].Path != dir || got[0].Kind != venv.KindVenv {
		t.Errorf("got %+v", got)
	}
	if !strings.Contains(res.Stderr, "predefined directories") {
		t.Errorf("human messages should go to stderr, got %q", res.Stderr)
	}
}

func TestSpe_OutputYAMLEmpty(t *testing.T) {
	setupHome(t)
	res := runSpeCmd(t, "", "--output", "yaml")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}

	var got []venv.Environment
	if err := yaml.Unmarshal([]byte(res.Stdout), &got); err != nil {
		t.Fatalf("stdout is not YAML: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}

func TestSpe_InvalidOutput(t *testing.T) {
	setupHome(t)
	res := runSpeCmd(t, "", "-o", "xml")
	if res.Err == nil || !strings.Contains(res.Err.Error(), "invalid output format") {
		t.Errorf("err = %v, want invalid output format", res.Err)
	}
}

func TestSpe_PickerNotUsedWithoutTTY(t *testing.T) {
	home, _ := setupHome(t)
	mkVenv(t, home, "venvs/alpha")

	origPick := pick
	pick = func([]venv.Environment, io.Reader, io.Writer) (*venv.Environment, error) {
		t.Error("picker should not run without a terminal")
		return nil, nil
	}
	defer func() { pick = origPick }()

	runSpeCmd(t, "q\n")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    outputFormat
		wantErr bool
	}{
		{"table", formatTable, false},
		{"JSON", formatJSON, false},
		{"yml", formatYAML, false},
		{" yaml ", formatYAML, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := parseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFormat(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
