package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/arxml-to-xlsx/internal/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "testdata/Can_EcucValues.arxml"

type run struct {
	stdout string
	stderr string
	dir    string
	err    error
}

// execute runs the root command with a fresh config file and log file in a
// temporary directory. Flag variables are reset first since cobra binds them
// to package globals.
func execute(t *testing.T, stdin string, args ...string) run {
	t.Helper()

	stringInput, xmlInput, outputPath = "", "", ""
	skipMalformed, verbose = false, false
	logFile = ""

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_file: "+filepath.Join(dir, "run.log")+"\n"), 0644))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--config", cfgPath))

	err := rootCmd.Execute()
	return run{stdout: stdout.String(), stderr: stderr.String(), dir: dir, err: err}
}

func TestTransformCommand(t *testing.T) {
	r := execute(t, "", "transform", "the", "quick", "fox")
	require.NoError(t, r.err)
	assert.Equal(t, "The modified string is:  ThE qUiCk FoX\n", r.stdout)

	r = execute(t, "", "transform", "hello")
	require.NoError(t, r.err)
	assert.Equal(t, "The modified string is:  Please enter at least 3 words.\n", r.stdout)
}

func TestProcessCommand_Flags(t *testing.T) {
	out := filepath.Join(t.TempDir(), "containers.xlsx")

	r := execute(t, "", "process", "-s", "the quick fox", "-x", fixture, "-o", out)
	require.NoError(t, r.err)
	assert.Equal(t, "The modified string is:  ThE qUiCk FoX\n", r.stdout)

	records, err := xlsx.Read(out, "")
	require.NoError(t, err)
	assert.Len(t, records, 5)

	logData, err := os.ReadFile(filepath.Join(r.dir, "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "run_id=")
}

func TestProcessCommand_Prompts(t *testing.T) {
	out := filepath.Join(t.TempDir(), "prompted.xlsx")
	stdin := "the quick fox\n" + fixture + "\n" + out + "\n"

	r := execute(t, stdin, "process")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Phrase to transform")
	assert.Contains(t, r.stdout, "Source ARXML file: ")
	assert.Contains(t, r.stdout, "Save spreadsheet as: ")
	assert.Contains(t, r.stdout, "The modified string is:  ThE qUiCk FoX\n")
	assert.FileExists(t, out)
}

func TestProcessCommand_PromptCancelled(t *testing.T) {
	r := execute(t, "\n\n", "process")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "no input file selected")

	r = execute(t, "", "process", "-x", fixture)
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "no output file selected")
}

func TestProcessCommand_Malformed(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "bad.arxml")
	require.NoError(t, os.WriteFile(source, []byte(`<AUTOSAR xmlns="http://autosar.org/schema/r4.0"><CONTAINERS>`+
		`<ECUC-CONTAINER-VALUE><SHORT-NAME>Bad</SHORT-NAME></ECUC-CONTAINER-VALUE>`+
		`</CONTAINERS></AUTOSAR>`), 0644))
	out := filepath.Join(dir, "o.xlsx")

	r := execute(t, "", "process", "-s", "one two three", "-x", source, "-o", out)
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "missing DEFINITION-REF")
	assert.NoFileExists(t, out)

	r = execute(t, "", "process", "-s", "one two three", "-x", source, "-o", out, "--skip-malformed")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "Skipped: ")
	assert.Contains(t, r.stderr, filepath.Join(dir, "o.errors.txt"))
	assert.FileExists(t, out)
}

func TestProcessCommand_Verbose(t *testing.T) {
	out := filepath.Join(t.TempDir(), "v.xlsx")

	r := execute(t, "", "process", "-s", "the quick fox", "-x", fixture, "-o", out, "-v")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Containers:      2")
	assert.Contains(t, r.stdout, "Sub-containers:  3")
}

func TestVersionCommand(t *testing.T) {
	r := execute(t, "", "version")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "ARXML to XLSX Extractor")
	assert.Contains(t, r.stdout, "Version:    "+Version)
}
