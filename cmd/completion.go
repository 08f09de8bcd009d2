package cmd

import (
	"io"
	"slices"

	"github.com/spf13/cobra"
)

var completionShells = map[string]func(w io.Writer) error{
	"bash":       func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
	"zsh":        rootCmd.GenZshCompletion,
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": rootCmd.GenPowerShellCompletionWithDesc,
}

var completionCmd = &cobra.Command{
	Use:                   "completion [bash|zsh|fish|powershell]",
	Short:                 "Print a completion script for your shell",
	Args:                  cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE:                  GetCompletion,
	DisableFlagsInUseLine: true,
}

func init() {
	for shell := range completionShells {
		completionCmd.ValidArgs = append(completionCmd.ValidArgs, shell)
	}
	slices.Sort(completionCmd.ValidArgs)
	rootCmd.AddCommand(completionCmd)
}

func GetCompletion(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return completionShells[args[0]](cmd.OutOrStdout())
}
