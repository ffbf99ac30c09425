package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pyvenv/ape/internal/cache"
	"github.com/pyvenv/ape/internal/config"
	"github.com/pyvenv/ape/internal/console"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration in effect as TOML, after defaults and APE_*
environment overrides, followed by the config, cache and search locations.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter python_venv_config.toml listing the built-in search
directories. An existing file is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	paths, _ := config.DefaultPaths()
	cfg, err := config.Load(paths.ConfigFile)
	out := cmd.OutOrStdout()

	source := cfg.Source
	switch {
	case err != nil:
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
		source = "(defaults)"
	case source == "":
		source = "(defaults)"
	}

	data, err := cfg.TOML()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# config file: %s %s\n", paths.ConfigFile, source)
	fmt.Fprintf(out, "# cache file:  %s\n", paths.CacheFile)
	fmt.Fprintf(out, "# cache:       %s\n", cacheSummary(paths.CacheFile))
	fmt.Fprintf(out, "# home:        %s\n\n", paths.Home)
	out.Write(data)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "# search directories:")
	for _, dir := range config.SearchDirs(paths, cfg) {
		fmt.Fprintf(out, "#   %s\n", dir)
	}
	return nil
}

// cacheSummary describes the cache file in one line.
func cacheSummary(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "none (run 'ape --scan' to build it)"
	}
	f, err := cache.NewStore(path).LoadFile()
	if err != nil {
		return fmt.Sprintf("unreadable, %s", console.FormatBytes(info.Size()))
	}
	summary := fmt.Sprintf("%d environments, %s", len(f.Environments), console.FormatBytes(info.Size()))
	if !f.ScannedAt.IsZero() {
		summary += ", scanned " + console.FormatAge(f.ScannedAt, time.Now())
	}
	return summary
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	paths, _ := config.DefaultPaths()

	err := config.WriteStarter(paths.ConfigFile, config.Starter())
	if errors.Is(err, config.ErrConfigExists) {
		return fmt.Errorf("%w (edit it or remove it first)", err)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", paths.ConfigFile)
	return nil
}
