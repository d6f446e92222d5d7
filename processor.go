package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"
)

// fileFilter narrows a directory listing. The zero value keeps every regular
// file. Explicit file lists are never filtered.
type fileFilter struct {
	Exclude   []string // glob patterns matched against base names
	Gitignore bool     // honour a .gitignore at the root of the listed directory
}

// enumerateFiles turns a configuration entry into the sorted list of absolute
// file paths to align. Relative entry paths are resolved against base.
func enumerateFiles(fsys afero.Fs, entry ConfigEntry, base string, filter fileFilter) ([]string, error) {
	switch entry.Mode {
	case modeDir:
		return listDirectory(fsys, entry.Path, base, filter)
	case modeFiles:
		return collectFiles(fsys, entry.Path, base)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, entry.Mode)
	}
}

// listDirectory returns the regular files directly inside the directory named
// by paths[0], sorted by path.
func listDirectory(fsys afero.Fs, paths []string, base string, filter fileFilter) ([]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("mode %q requires a directory path: %w", modeDir, ErrNotADirectory)
	}
	if len(paths) > 1 {
		logger.Warn().Strs("ignored", paths[1:]).Msg("Mode dir uses only the first path")
	}

	dir := resolvePath(base, paths[0])
	info, err := fsys.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("path %s: %w", dir, ErrNotADirectory)
	}

	for _, pattern := range filter.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}

	var ignoreMatcher gitignore.IgnoreMatcher
	if filter.Gitignore {
		ignoreMatcher, err = loadGitignore(fsys, dir)
		if err != nil {
			return nil, err
		}
	}

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w: %v", dir, ErrFileRead, err)
	}

	var files []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())

		// Stat rather than the listing's own info so symlinks to files count.
		fi, err := fsys.Stat(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable directory entry")
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}

		excluded, err := matchesAnyPattern(e.Name(), filter.Exclude)
		if err != nil {
			return nil, err
		}
		if excluded {
			logger.Debug().Str("path", path).Msg("Excluded by pattern")
			continue
		}
		if ignoreMatcher != nil && ignoreMatcher.Match(path, false) {
			logger.Debug().Str("path", path).Msg("Excluded by .gitignore")
			continue
		}
		files = append(files, path)
	}

	sort.Strings(files)
	logger.Debug().Str("dir", dir).Int("files", len(files)).Msg("Listed directory")
	return files, nil
}

// collectFiles sorts the raw path strings, then resolves and checks each one.
func collectFiles(fsys afero.Fs, paths []string, base string) ([]string, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	files := make([]string, 0, len(sorted))
	for _, p := range sorted {
		path := resolvePath(base, p)
		info, err := fsys.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil, fmt.Errorf("path %s: %w", path, ErrNotAFile)
		}
		files = append(files, path)
	}
	return files, nil
}

// loadGitignore parses dir/.gitignore. A missing file yields a nil matcher.
func loadGitignore(fsys afero.Fs, dir string) (gitignore.IgnoreMatcher, error) {
	path := filepath.Join(dir, ".gitignore")
	f, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open .gitignore file %s: %w", path, err)
	}
	defer f.Close()

	logger.Debug().Str("file", path).Msg("Using .gitignore")
	return gitignore.NewGitIgnoreFromReader(dir, f), nil
}

// parsePatterns splits a comma-separated string of patterns into a slice.
func parsePatterns(patterns string) []string {
	if patterns == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// matchesAnyPattern checks if the given name matches any of the provided glob patterns.
func matchesAnyPattern(name string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
