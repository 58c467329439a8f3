package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	presetName string
	verbose    bool

	logger = slog.Default()
)

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pendsim",
		Short:         "linear pendulum integrator lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	rootCmd.AddCommand(
		newSimulateCmd(),
		newPhaseCmd(),
		newEnergyCmd(),
		newConvergenceCmd(),
		newCompareCmd(),
		newSpectrumCmd(),
		newFiguresCmd(),
		newLiveCmd(),
		newPresetsCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", slog.Any("err", err))
		os.Exit(1)
	}
}
