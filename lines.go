package main

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// loadLines reads every file in order and returns its trimmed lines.
func loadLines(fsys afero.Fs, files []string) ([][]string, error) {
	data := make([][]string, 0, len(files))
	for _, path := range files {
		lines, err := readFileLines(fsys, path)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("file", path).Int("lines", len(lines)).Msg("Read file")
		data = append(data, lines)
	}
	return data, nil
}

func readFileLines(fsys afero.Fs, path string) ([]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrFileRead, path, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrFileRead, path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w %s: not valid UTF-8 text", ErrFileRead, path)
	}

	lines := splitLines(string(content))
	for i, line := range lines {
		lines[i] = strings.TrimFunc(line, isTrimSpace)
	}
	return lines, nil
}

// splitLines splits on "\n", "\r\n" and "\r", dropping the terminators. Empty
// segments are kept, except the one that follows a final terminator.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// isTrimSpace reports whether r is trimmed from line ends: Unicode white
// space plus the information separators U+001C..U+001F.
func isTrimSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
