// Package main provides the sdnscreen CLI entry point.
// sdnscreen resolves free-text name mentions against a designated-entity
// reference list.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/screenline/sdnscreen/cmd"
	"github.com/screenline/sdnscreen/config"
	"github.com/screenline/sdnscreen/pkg/buildinfo"
	"github.com/screenline/sdnscreen/pkg/logging"
)

// Global flags and state.
var (
	cfgFile      string
	dataDir      string
	outputFormat string
	debug        bool

	// deps is the shared command dependency bundle. It is allocated once so
	// subcommands can hold the pointer, and populated in PersistentPreRunE
	// before any RunE fires.
	deps = &cmd.Deps{}
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sdnscreen",
	Short: "Screen names against a designated-entity list",
	Long: `sdnscreen resolves free-text name mentions against a designated-entity
reference list (OFAC SDN flat files, an SDN XML export, or a database
snapshot).

Lookups normalize the input, try an exact hit on canonical and alias
names, then fall back to edit-distance similarity scoring. Batch mode
cross-references whole CSV sources, one verdict per row.

COMMON WORKFLOWS:
  Single name:     sdnscreen match "Ali Hassan"
  Whole source:    sdnscreen batch intel.csv --name-column full_name
  Entity detail:   sdnscreen profile 12345
  By program:      sdnscreen screen --program SDGT
  By document:     sdnscreen ids --number RL0123456

Run 'sdnscreen <command> --help' for flags and examples.`,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		if c.Name() == "version" || c.Name() == "help" || c.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		// Flag overrides.
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if outputFormat != "" {
			cfg.Output = config.OutputFormat(outputFormat)
		}
		if debug {
			cfg.Debug = true
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level := logging.LevelInfo
		if cfg.Debug {
			level = logging.LevelDebug
		}
		logging.SetGlobal(logging.NewLogger(&logging.Config{
			Level:       level,
			ServiceName: "sdnscreen",
			JSONFormat:  cfg.Output == config.OutputFormatJSON,
		}))

		*deps = *cmd.DefaultDeps(cfg)
		return nil
	},
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(c *cobra.Command, args []string) error {
		info := buildinfo.Get()
		out := c.OutOrStdout()
		fmt.Fprintf(out, "sdnscreen version %s\n", info.Version)
		fmt.Fprintf(out, "  commit:     %s\n", info.Commit)
		fmt.Fprintf(out, "  built:      %s\n", info.BuildTime)
		fmt.Fprintf(out, "  go version: %s\n", info.GoVersion)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.sdnscreen/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "reference data directory (csv backend)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: text, json")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(cmd.NewMatchCommand(deps))
	rootCmd.AddCommand(cmd.NewBatchCommand(deps))
	rootCmd.AddCommand(cmd.NewProfileCommand(deps))
	rootCmd.AddCommand(cmd.NewScreenCommand(deps))
	rootCmd.AddCommand(cmd.NewIDsCommand(deps))
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
