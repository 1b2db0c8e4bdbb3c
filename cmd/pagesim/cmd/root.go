// Package cmd provides the command-line interface of pagesim.
package cmd

import (
	"log"
	"os"

	"github.com/sarchlab/pagesim/config"
	"github.com/sarchlab/pagesim/mem/vm/paging"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var logger = log.New(os.Stderr, "pagesim: ", 0)

// NewRootCommand creates the pagesim command with all its subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pagesim",
		Short: "pagesim replays page reference traces against a paging simulator.",
		Long: `pagesim replays page reference traces against a simulated ` +
			`virtual memory manager. It supports the clock, lru, and random ` +
			`page-replacement policies, records runs into SQLite, and can ` +
			`serve a live monitoring page.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("env-file", ".env",
		"Load PAGESIM_* settings from this file if it exists.")

	rootCmd.AddCommand(
		newRunCommand(),
		newCompareCommand(),
		newGenCommand(),
		newReportCommand(),
	)

	return rootCmd
}

// Execute runs the root command, runs the registered exit handlers, and exits
// with a non-zero status on failure.
func Execute() {
	code := 0

	err := NewRootCommand().Execute()
	if err != nil {
		code = 1
	}

	atexit.Exit(code)
}

// loadConfig reads the environment settings and applies the flags the user
// set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.LoadEnv(envFile)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()

	if flags.Changed("frames") {
		cfg.FrameCount, _ = flags.GetInt("frames")
	}

	if flags.Changed("policy") {
		policy, _ := flags.GetString("policy")
		cfg.Policy = paging.PolicyKind(policy)
	}

	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}

	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}

	if flags.Changed("record") {
		cfg.RecordPath, _ = flags.GetString("record")
	}

	if flags.Changed("port") {
		cfg.MonitorPort, _ = flags.GetInt("port")
	}

	if flags.Changed("open-browser") {
		cfg.OpenBrowser, _ = flags.GetBool("open-browser")
	}

	return cfg, cfg.Validate()
}
