package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyvenv/ape/internal/cli"
	"github.com/pyvenv/ape/internal/locator"
	"github.com/pyvenv/ape/internal/picker"
	"github.com/pyvenv/ape/internal/shell"
	"github.com/pyvenv/ape/internal/venv"
)

// Version is set via ldflags at build time
var Version = "dev"

var (
	speOpts   cli.Options
	speOutput string
	spePlain  bool

	launch = shell.Launch
	// pick runs the interactive picker; nil means the user quit.
	pick = picker.Run
)

var rootCmd = &cobra.Command{
	Use:   "spe [flags]",
	Short: "SPE - Select Python Environment",
	Long: `List the Python environments on this machine and activate the one you pick.

Environments come from the scan cache when it exists, otherwise from the
predefined search directories. With --scan, your entire home directory is
searched and the cache is rebuilt first.

On a terminal an interactive picker is shown (arrows to move, / to filter,
enter to activate, q to quit). Otherwise, or with --plain, a numbered table
is printed and you are asked for a number or a name.`,
	Example: `  # Pick from the cached or predefined environments
  spe

  # Rebuild the cache, then pick
  spe --scan

  # Print the list for scripts
  spe -o json`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runSpe,
}

func init() {
	speOpts.Register(rootCmd)
	rootCmd.Flags().StringVarP(&speOutput, "output", "o", "table", "Output format: table, json or yaml")
	rootCmd.Flags().BoolVar(&spePlain, "plain", false, "Use the numbered prompt even on a terminal")

	rootCmd.AddCommand(versionCmd)
}

func runSpe(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(speOutput)
	if err != nil {
		return err
	}

	app := cli.Bootstrap(cmd, speOpts)
	app.Launch = launch
	con := app.Console
	if format != formatTable {
		// Keep stdout clean for the machine-readable listing.
		con.Out = con.Err
	}

	if speOpts.Clean {
		err := app.Clean()
		con.Println()
		return err
	}

	envs := loadEnvironments(app)

	if format != formatTable {
		return writeEnvironments(cmd.OutOrStdout(), format, envs)
	}

	if len(envs) == 0 {
		con.Println("No Python environments found.")
		con.Println()
		if !speOpts.Scan {
			con.Println("Tip: Try running 'spe --scan' for a comprehensive search.")
			con.Println()
		}
		return nil
	}

	var chosen *venv.Environment
	if !spePlain && cli.IsTerminal(app.In, cmd.OutOrStdout()) {
		chosen, err = pick(envs, app.In, cmd.OutOrStdout())
		if err != nil {
			return err
		}
	} else {
		if err := con.Table(envs); err != nil {
			return fmt.Errorf("printing environments: %w", err)
		}
		con.Println()
		chosen = cli.PromptSelect(app.In, con, envs)
	}

	if chosen == nil {
		return nil
	}
	return app.Activate(*chosen)
}

// loadEnvironments returns the list to choose from: a fresh scan with
// --scan, else the cache, else the predefined directories.
func loadEnvironments(app *cli.App) []venv.Environment {
	con := app.Console
	if speOpts.Scan {
		return app.Scan()
	}

	envs, source, err := app.Locator.List()
	if err != nil {
		con.Warning("Failed to load cache: %v", err)
	}
	app.Log.Debug("listing environments", "source", source, "count", len(envs))

	if source != locator.SourceCache {
		con.Println("Searching for Python environments in predefined directories...")
		app.Log.Debug("use --scan to search your entire home directory")
		con.Println()
	}
	return envs
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(cli.HandleError(os.Stderr, "spe", err))
	}
}
