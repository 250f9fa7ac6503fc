// =============================================================================
// ARXML to XLSX Extractor - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the whole pipeline for
// one document and one phrase.
//
// COMMAND USAGE:
//   arxml2xlsx process [flags]
//
// FLAGS:
//   --string-input, -s : Phrase for the alternating-case transform
//   --xml-input, -x    : Source ARXML document
//   --output, -o       : Destination spreadsheet (or directory)
//   --skip-malformed   : Skip containers missing a field instead of aborting
//
// Any parameter not given as a flag is asked for on standard input. An empty
// phrase answer skips the transform; the document and output are required.
//
// =============================================================================

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/arxml-to-xlsx/internal/converter"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/extractor"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// stringInput is the phrase to transform.
var stringInput string

// xmlInput is the path to the ARXML document.
var xmlInput string

// outputPath is the spreadsheet destination.
var outputPath string

// skipMalformed switches the malformed-container policy to "skip".
var skipMalformed bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract containers to a spreadsheet and transform a phrase",
	Long: `The process command loads an ARXML document, flattens its containers and
sub-containers into a spreadsheet with the columns Tag, Short Name and
Definition Ref, and prints the alternating-case form of the input phrase.

Missing parameters are asked for interactively.

On a container without SHORT-NAME or DEFINITION-REF:
  - by default the run stops with an error naming the container
  - with --skip-malformed the container is left out, a warning is logged
    and the skipped containers are listed in <output>.errors.txt`,

	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(
		&stringInput,
		"string-input",
		"s",
		"",
		"Phrase to transform (at least 3 words)",
	)

	processCmd.Flags().StringVarP(
		&xmlInput,
		"xml-input",
		"x",
		"",
		"Path to the source ARXML document",
	)

	processCmd.Flags().StringVarP(
		&outputPath,
		"output",
		"o",
		"",
		"Path to the destination XLSX file, or an existing directory",
	)

	processCmd.Flags().BoolVar(
		&skipMalformed,
		"skip-malformed",
		false,
		"Skip containers missing SHORT-NAME or DEFINITION-REF instead of aborting",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess collects the parameters and runs the pipeline.
func runProcess(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if skipMalformed {
		cfg.OnMalformed = string(extractor.PolicySkip)
	}

	req := converter.Request{
		Phrase:     stringInput,
		SourcePath: xmlInput,
		OutputPath: outputPath,
	}

	interactive := req.Phrase == "" || req.SourcePath == "" || req.OutputPath == ""
	if interactive {
		if err := promptMissing(cmd.InOrStdin(), cmd.OutOrStdout(), &req); err != nil {
			return err
		}
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if interactive {
		log.Debug("input via prompt")
	} else {
		log.Debug("input via command line")
	}

	conv := converter.New(cfg, log, cmd.OutOrStdout())
	result, err := conv.Run(req)
	if err != nil {
		return err
	}

	// =========================================================================
	// REPORT
	// =========================================================================

	stderr := cmd.ErrOrStderr()
	for _, w := range result.Warnings {
		fmt.Fprintf(stderr, "Warning: %s\n", w.Message)
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(stderr, "Skipped: %v\n", s)
	}
	if result.ErrorLogFile != "" {
		fmt.Fprintf(stderr, "Skipped containers have been logged to %s\n", result.ErrorLogFile)
	}

	if verbose {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "\n=== Processing Complete ===")
		fmt.Fprintf(out, "Output file:     %s\n", result.OutputFile)
		fmt.Fprintf(out, "Containers:      %d\n", result.Stats.Containers)
		fmt.Fprintf(out, "Sub-containers:  %d\n", result.Stats.SubContainers)
		fmt.Fprintf(out, "Skipped:         %d\n", result.Stats.Skipped)
		fmt.Fprintf(out, "Time elapsed:    %s\n", result.Stats.ProcessingTime)
	}

	return nil
}

// =============================================================================
// INTERACTIVE INPUT
// =============================================================================

// promptMissing asks for every empty request field, one line each.
func promptMissing(in io.Reader, out io.Writer, req *converter.Request) error {
	reader := bufio.NewReader(in)

	if req.Phrase == "" {
		answer, err := prompt(reader, out, "Phrase to transform (leave empty to skip): ")
		if err != nil {
			return err
		}
		req.Phrase = answer
	}

	if req.SourcePath == "" {
		answer, err := prompt(reader, out, "Source ARXML file: ")
		if err != nil {
			return err
		}
		if answer == "" {
			return errors.New("no input file selected (use --xml-input)")
		}
		req.SourcePath = answer
	}

	if req.OutputPath == "" {
		answer, err := prompt(reader, out, "Save spreadsheet as: ")
		if err != nil {
			return err
		}
		if answer == "" {
			return errors.New("no output file selected (use --output)")
		}
		req.OutputPath = answer
	}

	return nil
}

// prompt prints label and reads one line. End of input yields whatever was
// typed before it, possibly nothing.
func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
