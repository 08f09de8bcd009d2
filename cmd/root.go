package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ThatOtherAndrew/shapes/internal/logging"
	"github.com/ThatOtherAndrew/shapes/internal/render"
	"github.com/ThatOtherAndrew/shapes/internal/report"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Rasterization demos: a triangle, two triangles and a shape spawner",
	// Errors are already surfaced through the error box.
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(os.Stderr, verbose)
		logging.Logger().Debug("This is what an error looks like!")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
}

// reportedError marks an error that already went through the error box.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(rep render.Reporter, err error) error {
	var already reportedError
	if errors.As(err, &already) {
		return err
	}
	return reportedError{report.Error(rep, err)}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var already reportedError
		if !errors.As(err, &already) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
