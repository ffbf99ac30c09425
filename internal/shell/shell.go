// Package shell starts an interactive shell with a Python environment activated.
package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pyvenv/ape/internal/venv"
)

// ErrActivation is returned when the activated shell cannot be started.
var ErrActivation = errors.New("failed to activate environment")

// Command builds the process that opens an activated shell for env, without
// starting it. stdio is inherited from the current process.
func Command(env venv.Environment) (*exec.Cmd, error) {
	if !env.Valid() {
		return nil, fmt.Errorf("%w: activation script not found at %q", ErrActivation, env.ActivationPath())
	}
	c := commandFor(runtime.GOOS, env, os.Environ(), os.Getenv("SHELL"))
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c, nil
}

// Launch opens the activated shell and waits for it to exit. A non-zero
// exit of the shell itself comes back as *exec.ExitError, unwrapped, so
// callers can pass the code on.
func Launch(env venv.Environment) error {
	c, err := Command(env)
	if err != nil {
		return err
	}
	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr
		}
		return fmt.Errorf("%w: %w", ErrActivation, err)
	}
	return nil
}

// commandFor builds the shell command for a platform. On Windows cmd.exe
// runs activate.bat and stays open. Elsewhere the user's shell starts with
// the variables activate would have set.
func commandFor(goos string, env venv.Environment, environ []string, userShell string) *exec.Cmd {
	if goos == "windows" {
		c := exec.Command("cmd", "/k", filepath.Join(env.Path, "Scripts", "activate.bat"))
		c.Env = environ
		return c
	}

	if userShell == "" {
		userShell = "/bin/sh"
	}
	c := exec.Command(userShell, "-i")
	c.Env = activatedEnviron(env, environ)
	return c
}

// activatedEnviron returns environ with env's bin directory first on PATH,
// VIRTUAL_ENV (or CONDA_PREFIX) set and PYTHONHOME removed.
func activatedEnviron(env venv.Environment, environ []string) []string {
	out := make([]string, 0, len(environ)+2)
	path := ""
	for _, kv := range environ {
		key, value, _ := strings.Cut(kv, "=")
		switch key {
		case "PATH":
			path = value
		case "PYTHONHOME", "VIRTUAL_ENV", "CONDA_PREFIX":
		default:
			out = append(out, kv)
		}
	}

	bin := filepath.Join(env.Path, "bin")
	if path != "" {
		bin += string(os.PathListSeparator) + path
	}
	out = append(out, "PATH="+bin)

	if env.Kind == venv.KindConda {
		out = append(out, "CONDA_PREFIX="+env.Path)
	} else {
		out = append(out, "VIRTUAL_ENV="+env.Path)
	}
	return out
}
