package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/arxml-to-xlsx/internal/casealt"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/extractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMainConfig_MissingOptionalFile(t *testing.T) {
	cfg, err := LoadMainConfig(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, extractor.DefaultOptions(), cfg.ExtractorOptions())
	assert.Equal(t, casealt.DefaultOptions(), cfg.AlternatorOptions())
	assert.Equal(t, "Sheet1", cfg.SheetOptions().SheetName)
	assert.Equal(t, "arxml2xlsx.log", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMainConfig_MissingRequiredFile(t *testing.T) {
	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "absent.yaml"), true)
	assert.Error(t, err)
}

func TestLoadMainConfig_File(t *testing.T) {
	path := writeConfig(t, `
namespace: http://autosar.org/schema/r4.3
elements:
  container: [ECUC-CONTAINER-VALUE, ECUC-CHOICE-CONTAINER]
max_depth: 3
on_malformed: skip
min_words: 4
alternation: non-space
sheet_name: Containers
log_level: debug
`)

	cfg, err := LoadMainConfig(path, true)
	require.NoError(t, err)

	opts := cfg.ExtractorOptions()
	assert.Equal(t, "http://autosar.org/schema/r4.3", opts.Namespace)
	assert.Equal(t, []string{"ECUC-CONTAINER-VALUE", "ECUC-CHOICE-CONTAINER"}, opts.ContainerElements)
	assert.Equal(t, "CONTAINERS", opts.ContainersGroup, "unset names keep their defaults")
	assert.Equal(t, "SHORT-NAME", opts.ShortName)
	assert.Equal(t, 3, opts.MaxDepth)
	assert.Equal(t, extractor.PolicySkip, opts.OnMalformed)

	assert.Equal(t, casealt.Options{MinWords: 4, Alternation: casealt.AlternateNonSpace}, cfg.AlternatorOptions())
	assert.Equal(t, "Containers", cfg.SheetOptions().SheetName)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMainConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "max_depth: 3\non_malformed: skip\n")

	t.Setenv(EnvMaxDepth, "1")
	t.Setenv(EnvOnMalformed, "abort")
	t.Setenv(EnvNamespace, "urn:test")
	t.Setenv(EnvLogFile, "custom.log")

	cfg, err := LoadMainConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.MaxDepth)
	assert.Equal(t, "abort", cfg.OnMalformed)
	assert.Equal(t, "urn:test", cfg.Namespace)
	assert.Equal(t, "custom.log", cfg.LogFile)
}

func TestLoadMainConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "max_depth: [1"},
		{"zero depth", "max_depth: 0"},
		{"negative depth", "max_depth: -1"},
		{"zero min words", "min_words: 0"},
		{"negative min words", "min_words: -2"},
		{"unknown policy", "on_malformed: ignore"},
		{"unknown alternation", "alternation: random"},
		{"unknown log level", "log_level: chatty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMainConfig(writeConfig(t, tt.body), true)
			assert.Error(t, err)
		})
	}
}

func TestLoadMainConfig_InvalidEnvDepth(t *testing.T) {
	t.Setenv(EnvMaxDepth, "deep")

	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMaxDepth)
}

func TestLoadMainConfig_ZeroEnvDepth(t *testing.T) {
	t.Setenv(EnvMaxDepth, "0")

	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_depth must be at least 1")
}

func TestLoadMainConfig_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "ERROR"} {
		t.Run(level, func(t *testing.T) {
			cfg, err := LoadMainConfig(writeConfig(t, "log_level: "+level), true)
			require.NoError(t, err)
			assert.Equal(t, level, cfg.LogLevel)
		})
	}
}
