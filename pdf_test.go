package main

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePDF(t *testing.T) {
	fsys := afero.NewMemMapFs()
	result := sampleResult()
	result.Out = append(result.Out, []string{strings.Repeat("very long line ", 40), "tab\tseparated"})

	require.NoError(t, generatePDF(fsys, result, "/out/report.pdf"))

	data, err := afero.ReadFile(fsys, "/out/report.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"), "not a PDF document")
}

func TestGeneratePDF_ManyRowsAndColumns(t *testing.T) {
	fsys := afero.NewMemMapFs()
	fileLines := make([][]string, 5)
	files := make([]string, 5)
	for i := range fileLines {
		files[i] = "/work/file" + string(rune('a'+i)) + ".txt"
		for j := 0; j < 120; j++ {
			fileLines[i] = append(fileLines[i], "Zeile über Ümläute")
		}
	}
	out, err := alignLines(fileLines)
	require.NoError(t, err)

	result := &Result{ConfigFile: "/work/config.yaml", ConfigurationID: 3, ConfigurationData: ConfigEntry{Mode: modeDir, Path: []string{"."}}, Out: out, Files: files}
	require.NoError(t, generatePDF(fsys, result, "/out/wide.pdf"))

	exists, err := afero.Exists(fsys, "/out/wide.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGeneratePDF_NoFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()

	err := generatePDF(fsys, &Result{}, "/out/report.pdf")
	require.ErrorIs(t, err, ErrEmptyInput)

	exists, err := afero.Exists(fsys, "/out/report.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}
