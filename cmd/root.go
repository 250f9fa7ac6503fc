// =============================================================================
// ARXML to XLSX Extractor - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (arxml2xlsx)
//   ├── processCmd   (arxml2xlsx process)
//   ├── transformCmd (arxml2xlsx transform)
//   └── versionCmd   (arxml2xlsx version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --log-file)
//   2. Loading the configuration for subcommands
//   3. Opening the run logger
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ginjaninja78/arxml-to-xlsx/internal/config"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/logging"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// defaultConfigFile is used when --config is not given.
const defaultConfigFile = "config.yaml"

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// logFile overrides the log file from the configuration.
var logFile string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "arxml2xlsx",
	Short: "ARXML to XLSX Extractor - Flatten ECU configuration containers into a spreadsheet",
	Long: `ARXML to XLSX Extractor reads an AUTOSAR ECU configuration document and
writes one spreadsheet row per container and per nested sub-container, with
the columns Tag, Short Name and Definition Ref.

It also applies an alternating-case transform to an input phrase and prints
the result.

Example Usage:
  arxml2xlsx process -s "the quick fox" -x Can_EcucValues.arxml -o containers.xlsx
  arxml2xlsx process                       # Prompt for the missing parameters
  arxml2xlsx transform the quick fox       # Only transform a phrase`,

	SilenceUsage:  true,
	SilenceErrors: true,

	// If no subcommand is provided, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		defaultConfigFile,
		"Path to the main configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging and print run statistics",
	)

	// --log-file flag: Overrides log_file from the configuration.
	rootCmd.PersistentFlags().StringVar(
		&logFile,
		"log-file",
		"",
		"Path to the log file (overrides the configuration)",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig loads the configuration named by --config. The default file may
// be absent; a file named explicitly must exist.
func loadConfig(cmd *cobra.Command) (*config.MainConfig, error) {
	required := cmd.Flags().Changed("config")
	cfg, err := config.LoadMainConfig(cfgFile, required)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

// openLogger opens the run logger described by the configuration.
func openLogger(cfg *config.MainConfig) (*slog.Logger, func() error, error) {
	log, closeLog, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel, verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return log, closeLog, nil
}
