// Package cli holds the pieces shared by the ape and spe commands: flag
// registration, startup wiring and the messages both tools print.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/pyvenv/ape/internal/config"
	"github.com/pyvenv/ape/internal/console"
	"github.com/pyvenv/ape/internal/locator"
	"github.com/pyvenv/ape/internal/logger"
	"github.com/pyvenv/ape/internal/shell"
	"github.com/pyvenv/ape/internal/venv"
)

// Options are the flags common to both tools.
type Options struct {
	Verbose bool
	Scan    bool
	Clean   bool
	NoColor bool
}

// Register adds the common flags to cmd.
func (o *Options) Register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVarP(&o.Verbose, "verbose", "v", false, "Enable verbose output (shows debug information)")
	f.BoolVarP(&o.Scan, "scan", "s", false, "Perform comprehensive scan and update cache")
	f.BoolVarP(&o.Clean, "clean", "c", false, "Remove the cache file and exit")
	f.BoolVar(&o.NoColor, "no-color", false, "Disable colored output")
}

// App is the wired-up runtime of one command invocation.
type App struct {
	Paths   config.Paths
	Config  *config.Config
	Log     *slog.Logger
	Console *console.Console
	Locator *locator.Locator

	In io.Reader

	// Launch opens the activated shell. Tests replace it.
	Launch func(venv.Environment) error
}

// Bootstrap resolves paths, loads the user config, sets up logging and
// builds the locator. Problems with the home directory or the config file
// are logged at debug level and never stop the command.
func Bootstrap(cmd *cobra.Command, opts Options) *App {
	paths, homeErr := config.DefaultPaths()
	cfg, cfgErr := config.Load(paths.ConfigFile)

	level := cfg.Log.Level
	if opts.Verbose {
		level = "debug"
	}
	log := logger.Init(cmd.ErrOrStderr(), cfg.Log.Format, level)

	if homeErr != nil {
		log.Debug("no home directory, search set will be empty", "error", homeErr)
	}
	if cfgErr != nil {
		log.Debug("using default configuration", "error", cfgErr)
	} else if cfg.Source != "" {
		log.Debug("loaded configuration", "path", cfg.Source)
	}

	noColor := opts.NoColor || os.Getenv("NO_COLOR") != ""
	loc := locator.New(paths, cfg, log)

	log.Debug("directories to be searched", "dirs", loc.SearchDirs())

	return &App{
		Paths:   paths,
		Config:  cfg,
		Log:     log,
		Console: console.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), noColor),
		Locator: loc,
		In:      cmd.InOrStdin(),
		Launch:  shell.Launch,
	}
}

// Clean removes the cache file and reports what happened.
func (a *App) Clean() error {
	path := a.Locator.CachePath()
	a.Console.Info("Removing cache file...")

	removed, err := a.Locator.ClearCache()
	if err != nil {
		a.Console.Error("Failed to remove cache file at %s: %v", path, err)
		return Reported(err)
	}
	if removed {
		a.Console.Success("Cache file removed successfully: %s", path)
	} else {
		a.Console.Info("Cache file does not exist: %s", path)
	}
	return nil
}

// Scan runs a full scan, saves the cache and prints the summary lines.
func (a *App) Scan() []venv.Environment {
	a.Console.Info("Performing comprehensive scan...")
	a.Console.Info("This may take a moment...")
	a.Console.Println()

	res := a.Locator.Scan()
	a.Log.Debug("scan finished",
		"root", a.Paths.Home,
		"markers", res.Stats.Files,
		"environments", res.Stats.Environments,
		"duration", res.Stats.Duration)

	a.Console.Success("Found %d environments.", len(res.Environments))
	if res.SaveErr != nil {
		a.Console.Warning("Failed to save cache: %v", res.SaveErr)
	} else {
		a.Console.Success("Cache updated.")
	}
	a.Console.Println()
	return res.Environments
}

// Activate prints the activation banner and opens the shell.
func (a *App) Activate(env venv.Environment) error {
	a.Log.Debug("activating", "path", env.Path, "kind", env.Kind, "script", env.ActivationPath())

	a.Console.Success("Activating %q (%s)...", env.Name, env.Kind)
	a.Console.Println()
	a.Console.Info("[%s activated - Type 'deactivate' or 'exit' to leave]", env.Name)
	a.Console.Println()

	if err := a.Launch(env); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return err
		}
		a.Console.Error("%v", err)
		return Reported(err)
	}
	return nil
}

// Version formats the version line printed by the version subcommands.
func Version(tool, version string) string {
	return fmt.Sprintf("%s version %s", tool, version)
}
