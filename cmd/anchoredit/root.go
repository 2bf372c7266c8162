package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/anchoredit/cmd/anchoredit/commands"
	"github.com/walteh/anchoredit/cmd/anchoredit/opts"
)

// newRootCmd builds the command tree around a shared set of options
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "anchoredit",
		Short: "Edit text files by anchoring each change to nearby lines",
		Long: `anchoredit applies a plan of text edits to files in a tree.
Each edit names the exact lines to replace plus a few lines of context
before and after, so edits keep working when line numbers drift.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			logger := setupLogging(o.Err, o.Debug)
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return o.Init(cmd.Context())
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewApplyCmd(o),
		commands.NewLocateCmd(o),
		commands.NewRestoreCmd(o),
		newVersionCmd(),
	)

	rootCmd.SetOut(o.Out)
	rootCmd.SetErr(o.Err)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "anchoredit.yaml", "plan file path (.yaml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger()
}
