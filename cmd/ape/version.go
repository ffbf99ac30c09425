package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyvenv/ape/internal/cli"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Long:  `Print the version of the ape CLI.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), cli.Version("ape", Version))
	},
}
