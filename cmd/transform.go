// =============================================================================
// ARXML to XLSX Extractor - Transform Command
// =============================================================================
//
// This file defines the 'transform' command, which runs only the
// alternating-case transform.
//
// COMMAND USAGE:
//   arxml2xlsx transform <phrase words...>
//
// OUTPUT:
//   The modified string is:  ThE qUiCk FoX
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/arxml-to-xlsx/internal/casealt"
	"github.com/spf13/cobra"
)

// transformCmd represents the 'transform' command.
var transformCmd = &cobra.Command{
	Use:   "transform <phrase>...",
	Short: "Print the alternating-case form of a phrase",
	Long: `Transform joins its arguments with single spaces and prints the phrase with
its letters alternating between upper and lower case, starting with upper
case. Phrases shorter than min_words words are rejected with an advisory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, closeLog, err := openLogger(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		result := casealt.Transform(strings.Join(args, " "), cfg.AlternatorOptions(), log)
		fmt.Fprintf(cmd.OutOrStdout(), "The modified string is:  %s\n", result.Text)
		return nil
	},
}

// init registers the transform command with the root command.
func init() {
	rootCmd.AddCommand(transformCmd)
}
