package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOutputPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("file target", func(t *testing.T) {
		got, err := ResolveOutputPath(filepath.Join(dir, "out.xlsx"), "in.arxml", "{original}.xlsx")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "out.xlsx"), got)
	})

	t.Run("missing extension", func(t *testing.T) {
		got, err := ResolveOutputPath(filepath.Join(dir, "out"), "in.arxml", "{original}.xlsx")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "out.xlsx"), got)
	})

	t.Run("parent created", func(t *testing.T) {
		target := filepath.Join(dir, "nested", "deeper", "out.xlsx")
		got, err := ResolveOutputPath(target, "in.arxml", "{original}.xlsx")
		require.NoError(t, err)
		assert.Equal(t, target, got)
		assert.DirExists(t, filepath.Join(dir, "nested", "deeper"))
	})

	t.Run("directory target", func(t *testing.T) {
		got, err := ResolveOutputPath(dir, "/data/Can_EcucValues.arxml", "{original}_containers.xlsx")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Can_EcucValues_containers.xlsx"), got)
	})
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{original}_{timestamp}", map[string]string{"original": "Can"})
	assert.Regexp(t, regexp.MustCompile(`^Can_\d{8}_\d{6}\.xlsx$`), name)

	name = GenerateOutputFileName("{date}-{uuid}.XLSX", nil)
	assert.Regexp(t, regexp.MustCompile(`^\d{8}-[0-9a-f-]{36}\.XLSX$`), name)

	first := GenerateOutputFileName("{uuid}.xlsx", nil)
	second := GenerateOutputFileName("{uuid}.xlsx", nil)
	assert.NotEqual(t, first, second)
}

func TestGenerateOutputFileName_ValuesAreNotExpanded(t *testing.T) {
	for i := 0; i < 20; i++ {
		name := GenerateOutputFileName("{original}_rows", map[string]string{"original": "{uuid}{timestamp}{date}"})
		assert.Equal(t, "{uuid}{timestamp}{date}_rows.xlsx", name)
	}
}

func TestErrorLogPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "result.errors.txt"), ErrorLogPath(filepath.Join("out", "result.xlsx")))
}

func TestWriteErrorLog(t *testing.T) {
	dir := t.TempDir()

	t.Run("no entries", func(t *testing.T) {
		path := filepath.Join(dir, "none.errors.txt")
		require.NoError(t, WriteErrorLog(nil, "in.arxml", path))
		assert.False(t, FileExists(path))
	})

	t.Run("entries", func(t *testing.T) {
		path := filepath.Join(dir, "some.errors.txt")
		entries := []ErrorLogEntry{
			{Position: 2, Depth: 1, Line: 14, Path: "/AUTOSAR/CONTAINERS/ECUC-CONTAINER-VALUE",
				ShortName: "CanGeneral", Missing: []string{"DEFINITION-REF"}, Message: "malformed input"},
			{Position: 3, Depth: 2, Missing: []string{"SHORT-NAME", "DEFINITION-REF"}, Message: "malformed input"},
		}
		require.NoError(t, WriteErrorLog(entries, "in.arxml", path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		content := string(data)

		assert.Contains(t, content, "Source: in.arxml")
		assert.Contains(t, content, "Total Skipped: 2")
		assert.Contains(t, content, "#2 (depth 1)")
		assert.Contains(t, content, "Short Name:     CanGeneral")
		assert.Contains(t, content, "Missing:        SHORT-NAME, DEFINITION-REF")
		assert.Equal(t, 2, strings.Count(content, "Skipped #"))
	})
}
