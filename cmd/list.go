package cmd

import (
	"fmt"

	"github.com/ThatOtherAndrew/shapes/internal/demo"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available demos",
	Run:   listDemos,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listDemos(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Available demos:")
	for _, name := range demo.Names() {
		fmt.Fprintf(out, "  %-14s %s\n", name, demo.Describe(name))
	}
}
