// =============================================================================
// ARXML to XLSX Extractor - Converter Module
// =============================================================================
//
// This module contains the pipeline for a single invocation. It wires the
// document loader, the container extractor, the spreadsheet writer and the
// phrase transform together.
//
// CONVERSION PIPELINE:
//   1. Load and parse the ARXML document
//   2. Extract the container records
//   3. Transform the input phrase
//   4. Write the spreadsheet (and the skipped-container log, if any)
//   5. Display the transformed phrase
//
// The extractor and the phrase transform do not depend on each other; the
// converter only sequences them and hands their outputs to the sinks.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ginjaninja78/arxml-to-xlsx/internal/arxml"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/casealt"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/config"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/extractor"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/types"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/xlsx"
	"github.com/ginjaninja78/arxml-to-xlsx/pkg/utils"
	"github.com/google/uuid"
)

// =============================================================================
// REQUEST AND RESULT STRUCTURES
// =============================================================================

// Request holds the three invocation parameters.
type Request struct {
	// Phrase is the text for the case alternation. Empty skips the transform.
	Phrase string

	// SourcePath is the ARXML document.
	SourcePath string

	// OutputPath is the spreadsheet file, or a directory to create it in.
	OutputPath string
}

// Result represents the outcome of one run.
type Result struct {
	// RunID identifies the run in the log file.
	RunID string

	// OutputFile is the spreadsheet that was written.
	OutputFile string

	// ErrorLogFile is the skipped-container log, empty when nothing was skipped.
	ErrorLogFile string

	// Records is the record sequence handed to the spreadsheet writer.
	Records []types.Record

	// Warnings are the extractor's advisories (e.g. no containers found).
	Warnings []extractor.Warning

	// Skipped are the containers dropped under the "skip" policy.
	Skipped []*extractor.MalformedInputError

	// Phrase is the transform result; nil when no phrase was given.
	Phrase *casealt.Result

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Containers and SubContainers count the emitted records by tag.
	Containers    int
	SubContainers int

	// Skipped is the number of malformed containers left out.
	Skipped int

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the pipeline with one configuration.
type Converter struct {
	// cfg is the main application configuration.
	cfg *config.MainConfig

	// log receives progress messages. Each run adds its run id.
	log *slog.Logger

	// display receives the transformed phrase line.
	display io.Writer
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - cfg: The main application configuration.
//   - log: The logger; nil discards log output.
//   - display: Where the transformed phrase is printed; nil discards it.
func New(cfg *config.MainConfig, log *slog.Logger, display io.Writer) *Converter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if display == nil {
		display = io.Discard
	}
	return &Converter{cfg: cfg, log: log, display: display}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for one request.
//
// RETURNS:
//   - The run result.
//   - A *arxml.DocumentLoadError when the document cannot be loaded, a
//     *extractor.MalformedInputError under the "abort" policy, or a write
//     error. Errors are wrapped; use errors.As / errors.Is to inspect them.
func (c *Converter) Run(req Request) (*Result, error) {
	startTime := time.Now()
	result := &Result{RunID: uuid.New().String()}
	log := c.log.With("run_id", result.RunID)

	// =========================================================================
	// STEP 1: LOAD DOCUMENT
	// =========================================================================

	log.Info("parsing started", "file", req.SourcePath)

	doc, err := arxml.Load(req.SourcePath)
	if err != nil {
		log.Error("failed to load document", "error", err)
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	// =========================================================================
	// STEP 2: EXTRACT CONTAINERS
	// =========================================================================

	extracted, err := extractor.Extract(doc.Root, c.cfg.ExtractorOptions(), log)
	if err != nil {
		log.Error("extraction failed", "error", err)
		return nil, fmt.Errorf("failed to extract containers from %s: %w", req.SourcePath, err)
	}

	result.Records = extracted.Records
	result.Warnings = extracted.Warnings
	result.Skipped = extracted.Skipped
	result.Stats.Containers = extracted.Stats.Containers
	result.Stats.SubContainers = extracted.Stats.SubContainers
	result.Stats.Skipped = extracted.Stats.Skipped

	log.Debug("parsing completed", "records", len(extracted.Records))

	// =========================================================================
	// STEP 3: TRANSFORM PHRASE
	// =========================================================================

	if req.Phrase != "" {
		phrase := casealt.Transform(req.Phrase, c.cfg.AlternatorOptions(), log)
		result.Phrase = &phrase
	}

	// =========================================================================
	// STEP 4: WRITE SPREADSHEET
	// =========================================================================

	outputPath, err := utils.ResolveOutputPath(req.OutputPath, req.SourcePath, c.cfg.OutputNameFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output path: %w", err)
	}

	if utils.FileExists(outputPath) {
		log.Info("overwriting existing file", "file", outputPath)
	}

	if err := xlsx.Write(outputPath, extracted.Records, c.cfg.SheetOptions()); err != nil {
		log.Error("failed to write spreadsheet", "error", err)
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	result.OutputFile = outputPath
	log.Info("Excel file saved successfully", "file", outputPath, "rows", len(extracted.Records))

	if len(extracted.Skipped) > 0 {
		logPath := utils.ErrorLogPath(outputPath)
		if err := utils.WriteErrorLog(errorLogEntries(extracted.Skipped), req.SourcePath, logPath); err != nil {
			// The spreadsheet is already written; the log is secondary.
			log.Warn("failed to write skipped-container log", "error", err)
		} else {
			result.ErrorLogFile = logPath
		}
	}

	// =========================================================================
	// STEP 5: DISPLAY PHRASE
	// =========================================================================

	if result.Phrase != nil {
		fmt.Fprintf(c.display, "The modified string is:  %s\n", result.Phrase.Text)
		log.Info("String displayed successfully")
	}

	result.Stats.ProcessingTime = time.Since(startTime)
	log.Info("run complete",
		"containers", result.Stats.Containers,
		"sub_containers", result.Stats.SubContainers,
		"skipped", result.Stats.Skipped,
		"elapsed", result.Stats.ProcessingTime)

	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// errorLogEntries converts skipped containers to error log entries.
func errorLogEntries(skipped []*extractor.MalformedInputError) []utils.ErrorLogEntry {
	entries := make([]utils.ErrorLogEntry, len(skipped))
	for i, s := range skipped {
		entries[i] = utils.ErrorLogEntry{
			Position:  s.Position,
			Depth:     s.Depth,
			Line:      s.Line,
			Path:      s.Path,
			ShortName: s.ShortName,
			Missing:   s.Missing,
			Message:   s.Error(),
		}
	}
	return entries
}
