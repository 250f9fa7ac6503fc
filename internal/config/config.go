// =============================================================================
// ARXML to XLSX Extractor - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults
//   2. Main config file (config.yaml)
//   3. A .env file in the working directory, if present
//   4. Process environment variables (ARXML_*)
//
// EXAMPLE config.yaml:
//
//   namespace: http://autosar.org/schema/r4.0
//   elements:
//     containers_group: CONTAINERS
//     sub_containers_group: SUB-CONTAINERS
//     container: [ECUC-CONTAINER-VALUE]
//     short_name: SHORT-NAME
//     definition_ref: DEFINITION-REF
//   max_depth: 2
//   on_malformed: abort
//   min_words: 3
//   alternation: letters
//   sheet_name: Sheet1
//   output_name_format: "{original}_{timestamp}.xlsx"
//   log_file: arxml2xlsx.log
//   log_level: info
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/ginjaninja78/arxml-to-xlsx/internal/casealt"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/extractor"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/logging"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/xlsx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DOCUMENT LOOKUP SETTINGS
	// =========================================================================

	// Namespace is the namespace URI used to qualify every element lookup.
	// Default: "http://autosar.org/schema/r4.0"
	Namespace string `yaml:"namespace"`

	// Elements names the elements the extractor looks for.
	Elements ElementNames `yaml:"elements"`

	// MaxDepth is the number of container levels extracted.
	// 1 = top-level containers only, 2 = plus their sub-containers.
	// Default: 2
	MaxDepth int `yaml:"max_depth"`

	// OnMalformed decides what a container without SHORT-NAME or
	// DEFINITION-REF does to the run.
	// Valid values: "abort", "skip"
	// Default: "abort"
	OnMalformed string `yaml:"on_malformed"`

	// =========================================================================
	// PHRASE SETTINGS
	// =========================================================================

	// MinWords is the smallest phrase that is transformed.
	// Default: 3
	MinWords int `yaml:"min_words"`

	// Alternation selects the characters that advance the case alternation.
	// Valid values: "letters", "non-space"
	// Default: "letters"
	Alternation string `yaml:"alternation"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// SheetName is the name of the record sheet.
	// Default: "Sheet1"
	SheetName string `yaml:"sheet_name"`

	// OutputNameFormat names the spreadsheet when --output is a directory.
	// Placeholders:
	//   {original}  - Source file name without extension
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{original}_{timestamp}.xlsx"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the path to the application log file.
	// Default: "arxml2xlsx.log"
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn" (or "warning"), "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// ElementNames holds the local names of the elements the extractor matches.
type ElementNames struct {
	ContainersGroup    string   `yaml:"containers_group"`
	SubContainersGroup string   `yaml:"sub_containers_group"`
	Container          []string `yaml:"container"`
	ShortName          string   `yaml:"short_name"`
	DefinitionRef      string   `yaml:"definition_ref"`
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// Environment variables read after the config file.
const (
	EnvNamespace   = "ARXML_NAMESPACE"
	EnvLogLevel    = "ARXML_LOG_LEVEL"
	EnvLogFile     = "ARXML_LOG_FILE"
	EnvOnMalformed = "ARXML_ON_MALFORMED"
	EnvMaxDepth    = "ARXML_MAX_DEPTH"
)

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no config file exists.
func Default() *MainConfig {
	config := newMainConfig()
	applyMainConfigDefaults(&config)
	return &config
}

// newMainConfig returns a config with the numeric defaults already set, so an
// explicit 0 in the file or the environment stays 0 and fails validation.
func newMainConfig() MainConfig {
	return MainConfig{
		MaxDepth: extractor.DefaultOptions().MaxDepth,
		MinWords: casealt.DefaultMinWords,
	}
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//   - required: When false, a missing file means "use defaults". When true,
//     a missing file is an error (the user named it explicitly).
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed, or a value is invalid.
func LoadMainConfig(configPath string, required bool) (*MainConfig, error) {
	config := newMainConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
		// No config file: defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// A missing .env file is fine.
	_ = godotenv.Load()
	if err := applyEnvOverrides(&config); err != nil {
		return nil, err
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyEnvOverrides copies ARXML_* variables over the file values.
func applyEnvOverrides(config *MainConfig) error {
	if v := strings.TrimSpace(os.Getenv(EnvNamespace)); v != "" {
		config.Namespace = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		config.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		config.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOnMalformed)); v != "" {
		config.OnMalformed = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxDepth)); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxDepth, v, err)
		}
		config.MaxDepth = depth
	}
	return nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	extractDefaults := extractor.DefaultOptions()

	if config.Namespace == "" {
		config.Namespace = extractDefaults.Namespace
	}
	if config.Elements.ContainersGroup == "" {
		config.Elements.ContainersGroup = extractDefaults.ContainersGroup
	}
	if config.Elements.SubContainersGroup == "" {
		config.Elements.SubContainersGroup = extractDefaults.SubContainersGroup
	}
	if len(config.Elements.Container) == 0 {
		config.Elements.Container = append([]string(nil), extractDefaults.ContainerElements...)
	}
	if config.Elements.ShortName == "" {
		config.Elements.ShortName = extractDefaults.ShortName
	}
	if config.Elements.DefinitionRef == "" {
		config.Elements.DefinitionRef = extractDefaults.DefinitionRef
	}
	if config.OnMalformed == "" {
		config.OnMalformed = string(extractDefaults.OnMalformed)
	}
	if config.Alternation == "" {
		config.Alternation = string(casealt.AlternateLetters)
	}
	if config.SheetName == "" {
		config.SheetName = xlsx.DefaultOptions().SheetName
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}_{timestamp}.xlsx"
	}
	if config.LogFile == "" {
		config.LogFile = "arxml2xlsx.log"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	if config.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", config.MaxDepth)
	}
	if config.MinWords < 1 {
		return fmt.Errorf("min_words must be at least 1, got %d", config.MinWords)
	}
	if _, err := extractor.ParsePolicy(config.OnMalformed); err != nil {
		return err
	}
	if _, err := casealt.ParseAlternation(config.Alternation); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// =============================================================================
// COMPONENT OPTIONS
// =============================================================================

// ExtractorOptions returns the extractor settings.
func (c *MainConfig) ExtractorOptions() extractor.Options {
	return extractor.Options{
		Namespace:          c.Namespace,
		ContainersGroup:    c.Elements.ContainersGroup,
		SubContainersGroup: c.Elements.SubContainersGroup,
		ContainerElements:  append([]string(nil), c.Elements.Container...),
		ShortName:          c.Elements.ShortName,
		DefinitionRef:      c.Elements.DefinitionRef,
		MaxDepth:           c.MaxDepth,
		OnMalformed:        extractor.Policy(c.OnMalformed),
	}
}

// AlternatorOptions returns the phrase transform settings.
func (c *MainConfig) AlternatorOptions() casealt.Options {
	return casealt.Options{
		MinWords:    c.MinWords,
		Alternation: casealt.Alternation(c.Alternation),
	}
}

// SheetOptions returns the spreadsheet settings.
func (c *MainConfig) SheetOptions() xlsx.Options {
	opts := xlsx.DefaultOptions()
	opts.SheetName = c.SheetName
	return opts
}
