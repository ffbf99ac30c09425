package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyvenv/ape/internal/cli"
	"github.com/pyvenv/ape/internal/locator"
	"github.com/pyvenv/ape/internal/shell"
	"github.com/pyvenv/ape/internal/venv"
)

// Version is set via ldflags at build time
var Version = "dev"

var (
	apeOpts cli.Options
	launch  = shell.Launch
)

var errNoName = errors.New("no environment name specified")

var rootCmd = &cobra.Command{
	Use:   "ape [flags] <env_name>",
	Short: "APE - Activate Python Environment",
	Long: `Quickly activate a Python virtual environment by name.

Looks the name up in the scan cache first, then in the predefined search
directories. With --scan, searches your entire home directory and updates
the persistent cache before looking the name up.

Opens a new shell with the environment activated. The environment stays
active until you type 'deactivate' or 'exit'.

Supported environment types: venv, conda and uv.`,
	Example: `  # Activate an environment called myenv
  ape myenv

  # Refresh the cache, then activate
  ape --scan myenv

  # Rebuild the cache and list everything found
  ape --scan

  # Remove the cache file
  ape --clean`,
	Args:              cobra.ArbitraryArgs,
	ValidArgsFunction: cli.CompleteEnvNames,
	SilenceErrors:     true,
	SilenceUsage:      true,
	RunE:              runApe,
}

func init() {
	apeOpts.Register(rootCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

func runApe(cmd *cobra.Command, args []string) error {
	app := cli.Bootstrap(cmd, apeOpts)
	app.Launch = launch
	con := app.Console

	if apeOpts.Clean {
		err := app.Clean()
		con.Println()
		return err
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
		if len(args) > 1 {
			app.Log.Debug("ignoring extra arguments", "args", args[1:])
		}
	}

	var scanned []venv.Environment
	if apeOpts.Scan {
		scanned = app.Scan()
		if name == "" {
			if len(scanned) > 0 {
				con.Println()
				con.Println("Found environments:")
				con.Println()
				con.List(scanned)
				con.Println()
			}
			con.Println("Run 'ape <env_name>' to activate an environment.")
			return nil
		}
	}

	if name == "" {
		con.Error("No environment name specified.")
		con.Hint()
		con.Hint("Usage: ape [OPTIONS] <env_name>")
		con.Hint("       ape --help for more information")
		return cli.Reported(errNoName)
	}

	app.Log.Debug("searching for environment", "name", name)
	// Fresh scan results win even when the cache could not be saved.
	if env, ok := locator.FindValid(scanned, name); ok {
		app.Log.Debug("environment found", "name", env.Name, "source", locator.SourceScan)
		return app.Activate(*env)
	}
	env, source, err := app.Locator.Resolve(name)
	if err != nil {
		con.Error("Environment %q not found.", name)
		con.Hint()
		if app.Locator.HasCache() {
			con.Hint("Tip: Try running 'ape --scan' to update the cache and find new environments.")
		} else {
			con.Hint("Tip: Try running 'ape --scan' to perform a comprehensive search.")
		}
		con.Hint("     Or use 'spe' to see all available environments.")
		return cli.Reported(err)
	}
	app.Log.Debug("environment found", "name", env.Name, "source", source)

	return app.Activate(*env)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(cli.HandleError(os.Stderr, "ape", err))
	}
}
