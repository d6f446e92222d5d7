package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// configDocumentFile mirrors the on-disk layout of a configuration document.
type configDocumentFile struct {
	Configurations map[int]rawConfigEntry `yaml:"configurations"`
}

// rawConfigEntry keeps presence information so missing fields can be told
// apart from empty ones.
type rawConfigEntry struct {
	Mode *string  `yaml:"mode"`
	Path []string `yaml:"path"`
}

// readConfigDocument parses the configuration document at path without
// checking individual entries.
func readConfigDocument(fsys afero.Fs, path string) (map[int]rawConfigEntry, error) {
	if _, err := fsys.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file %s: %w", path, ErrConfigFileNotFound)
		}
		return nil, fmt.Errorf("configuration file %s: %w: %v", path, ErrFileRead, err)
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("configuration file %s: %w: %v", path, ErrFileRead, err)
	}

	var raw configDocumentFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrConfigParse, path, err)
	}
	logger.Debug().Str("file", path).Int("entries", len(raw.Configurations)).Msg("Parsed configuration document")
	return raw.Configurations, nil
}

// toEntry checks that both required fields are present.
func (e rawConfigEntry) toEntry(path string, id int) (ConfigEntry, error) {
	if e.Mode == nil {
		return ConfigEntry{}, fmt.Errorf("%w %s: configuration %d has no 'mode'", ErrConfigParse, path, id)
	}
	if e.Path == nil {
		return ConfigEntry{}, fmt.Errorf("%w %s: configuration %d has no 'path'", ErrConfigParse, path, id)
	}
	return ConfigEntry{Mode: *e.Mode, Path: e.Path}, nil
}

// loadConfigDocument returns the complete entries of the configuration
// document at path. Entries missing a field are skipped with a warning.
func loadConfigDocument(fsys afero.Fs, path string) (ConfigDocument, error) {
	raw, err := readConfigDocument(fsys, path)
	if err != nil {
		return nil, err
	}

	doc := make(ConfigDocument, len(raw))
	for id, r := range raw {
		entry, err := r.toEntry(path, id)
		if err != nil {
			logger.Warn().Err(err).Int("id", id).Msg("Skipping incomplete configuration")
			continue
		}
		doc[id] = entry
	}
	return doc, nil
}

// loadConfig returns the entry with the given ID from the configuration
// document at path. Only that entry has to be complete. The mode is returned
// as written; enumerateFiles decides whether it is usable.
func loadConfig(fsys afero.Fs, path string, id int) (ConfigEntry, error) {
	raw, err := readConfigDocument(fsys, path)
	if err != nil {
		return ConfigEntry{}, err
	}
	r, ok := raw[id]
	if !ok {
		return ConfigEntry{}, fmt.Errorf("configuration ID %d in %s: %w", id, path, ErrConfigEntryNotFound)
	}
	entry, err := r.toEntry(path, id)
	if err != nil {
		return ConfigEntry{}, err
	}
	logger.Debug().Int("id", id).Str("mode", entry.Mode).Strs("path", entry.Path).Msg("Loaded configuration entry")
	return entry, nil
}

// IDs returns the configuration IDs in ascending order.
func (d ConfigDocument) IDs() []int {
	ids := make([]int, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
