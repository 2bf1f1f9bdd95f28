// Command radmem drives the radiation-tolerance core from the command
// line: fault-injection stress campaigns and a live scrub demonstration.
// It is calling code on top of the core packages and owns everything the
// core deliberately does not: CSV export, metrics exposition, process
// lifecycle.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"radmem/internal/config"
	"radmem/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "radmem",
		Short: "Software fault tolerance for memory under single-event upsets",
		Long: `radmem exercises the redundancy-and-repair core: voting containers,
the background memory scrubber, and the fault-injection harness.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")

	rootCmd.AddCommand(
		newStressCmd(),
		newScrubCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads configuration and builds the logger shared by subcommands.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the radmem version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
