package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/corrlens-cli/internal/config"
	"github.com/KaramelBytes/corrlens-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "corrlens",
	Short: "corrlens CLI: rank dataset attributes by correlation with a target",
	Long: `corrlens loads a CSV/TSV/XLSX dataset, computes the Pearson correlation matrix of its
numeric columns and ranks every attribute by how strongly it relates to a chosen target.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.corrlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands with built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		logging.Setup(logLevel, debug)
		return
	}
	cfg = c
	level := cfg.LogLevel
	if rootCmd.PersistentFlags().Changed("log-level") && logLevel != "" {
		level = logLevel
	}
	logging.Setup(level, debug)
}

// ensureConfig loads configuration for commands run without Execute (tests).
func ensureConfig() {
	if cfg == nil {
		loadConfig()
	}
}
