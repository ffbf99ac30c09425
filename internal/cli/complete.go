package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyvenv/ape/internal/config"
	"github.com/pyvenv/ape/internal/locator"
)

// CompleteEnvNames completes the first argument with environment names from
// the cache, or from the search directories when there is no cache. It
// never scans and never prints.
func CompleteEnvNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	paths, _ := config.DefaultPaths()
	cfg, _ := config.Load(paths.ConfigFile)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	envs, _, _ := locator.New(paths, cfg, quiet).List()

	seen := make(map[string]bool, len(envs))
	var names []string
	for _, env := range envs {
		key := strings.ToLower(env.Name)
		if seen[key] || !strings.HasPrefix(key, strings.ToLower(toComplete)) {
			continue
		}
		seen[key] = true
		names = append(names, env.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
