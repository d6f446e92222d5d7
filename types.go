package main

// Supported values of ConfigEntry.Mode.
const (
	modeDir   = "dir"
	modeFiles = "files"
)

// ConfigEntry is one numbered entry of the configuration document.
type ConfigEntry struct {
	Mode string   `yaml:"mode" json:"mode"`
	Path []string `yaml:"path" json:"path"`
}

// ConfigDocument maps configuration IDs to their entries.
type ConfigDocument map[int]ConfigEntry

// Result is the document written to the output file.
type Result struct {
	ConfigFile        string        `json:"configFile"`
	ConfigurationID   int           `json:"configurationID"`
	ConfigurationData ConfigEntry   `json:"configurationData"`
	Out               AlignedOutput `json:"out"`

	// Files is the resolved file list behind Out, in file-index order. It is
	// not part of the JSON document; the PDF report uses it for column titles.
	Files []string `json:"-"`
}
