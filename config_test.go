package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `configurations:
  1:
    mode: files
    path: [b.txt, a.txt]
  2:
    mode: dir
    path:
      - texts
  7:
    mode: bogus
    path: []
`

func TestLoadConfig(t *testing.T) {
	fsys := newTestFs(t, map[string]string{"/work/config.yaml": sampleConfig})

	entry, err := loadConfig(fsys, "/work/config.yaml", 1)
	require.NoError(t, err)
	assert.Equal(t, ConfigEntry{Mode: "files", Path: []string{"b.txt", "a.txt"}}, entry)

	entry, err = loadConfig(fsys, "/work/config.yaml", 2)
	require.NoError(t, err)
	assert.Equal(t, ConfigEntry{Mode: "dir", Path: []string{"texts"}}, entry)
}

func TestLoadConfig_ModeIsNotValidatedAtLoad(t *testing.T) {
	fsys := newTestFs(t, map[string]string{"/work/config.yaml": sampleConfig})

	entry, err := loadConfig(fsys, "/work/config.yaml", 7)
	require.NoError(t, err)
	assert.Equal(t, "bogus", entry.Mode)
	assert.Empty(t, entry.Path)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		id      int
		wantErr error
	}{
		{
			name:    "unknown id",
			content: sampleConfig,
			id:      3,
			wantErr: ErrConfigEntryNotFound,
		},
		{
			name:    "no configurations key",
			content: "other: 1\n",
			id:      1,
			wantErr: ErrConfigEntryNotFound,
		},
		{
			name:    "empty document",
			content: "",
			id:      1,
			wantErr: ErrConfigEntryNotFound,
		},
		{
			name:    "malformed yaml",
			content: "configurations:\n  1: [unclosed\n",
			id:      1,
			wantErr: ErrConfigParse,
		},
		{
			name:    "non-integer id key",
			content: "configurations:\n  first:\n    mode: dir\n    path: [x]\n",
			id:      1,
			wantErr: ErrConfigParse,
		},
		{
			name:    "missing mode",
			content: "configurations:\n  1:\n    path: [x]\n",
			id:      1,
			wantErr: ErrConfigParse,
		},
		{
			name:    "missing path",
			content: "configurations:\n  1:\n    mode: dir\n",
			id:      1,
			wantErr: ErrConfigParse,
		},
		{
			name:    "path is not a list",
			content: "configurations:\n  1:\n    mode: dir\n    path: {a: b}\n",
			id:      1,
			wantErr: ErrConfigParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newTestFs(t, map[string]string{"/work/config.yaml": tt.content})
			_, err := loadConfig(fsys, "/work/config.yaml", tt.id)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	fsys := newTestFs(t, nil)

	_, err := loadConfig(fsys, "/work/missing.yaml", 1)
	require.ErrorIs(t, err, ErrConfigFileNotFound)
	assert.Contains(t, err.Error(), "/work/missing.yaml")
}

func TestConfigDocumentIDs(t *testing.T) {
	fsys := newTestFs(t, map[string]string{"/work/config.yaml": sampleConfig})

	doc, err := loadConfigDocument(fsys, "/work/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 7}, doc.IDs())
}

func TestLoadConfig_IncompleteSiblingEntry(t *testing.T) {
	content := "configurations:\n  1:\n    mode: files\n    path: [a.txt]\n  2:\n    path: [x]\n  3:\n    mode: dir\n"
	fsys := newTestFs(t, map[string]string{"/work/config.yaml": content})

	entry, err := loadConfig(fsys, "/work/config.yaml", 1)
	require.NoError(t, err)
	assert.Equal(t, ConfigEntry{Mode: "files", Path: []string{"a.txt"}}, entry)

	_, err = loadConfig(fsys, "/work/config.yaml", 2)
	assert.ErrorIs(t, err, ErrConfigParse)

	doc, err := loadConfigDocument(fsys, "/work/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, doc.IDs())
}
