package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
)

const defaultOutputFile = "output.json"

// encodeResult renders the result document as JSON indented by indent
// spaces. An indent of zero or less produces compact output.
func encodeResult(result *Result, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("error encoding output: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFileAtomic replaces path with data. The bytes go to a temporary file in
// the same directory first, so a failed write never leaves a truncated file.
func writeFileAtomic(fsys afero.Fs, path string, data []byte) error {
	path = followSymlinks(fsys, path)
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fsys, dir, ".linealign-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpPath)
		return fmt.Errorf("error writing to file %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpPath)
		return fmt.Errorf("error writing to file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpPath)
		return fmt.Errorf("error writing to file %s: %w", path, err)
	}
	// TempFile creates 0600; match what os.WriteFile would have produced.
	_ = fsys.Chmod(tmpPath, 0o644)

	if err := fsys.Rename(tmpPath, path); err != nil {
		_ = fsys.Remove(tmpPath)
		return fmt.Errorf("error writing to file %s: %w", path, err)
	}
	return nil
}

// maxSymlinkHops bounds symlink chains, as the kernel does for open(2).
const maxSymlinkHops = 40

// followSymlinks returns the file a chain of symlinks at path points to, so
// writing replaces the target rather than the link. Filesystems without
// symlink support return path unchanged.
func followSymlinks(fsys afero.Fs, path string) string {
	lstater, ok := fsys.(afero.Lstater)
	if !ok {
		return path
	}
	reader, ok := fsys.(afero.LinkReader)
	if !ok {
		return path
	}
	for hop := 0; hop < maxSymlinkHops; hop++ {
		info, _, err := lstater.LstatIfPossible(path)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			return path
		}
		target, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return path
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		logger.Debug().Str("link", path).Str("target", target).Msg("Writing through symlink")
		path = target
	}
	return path
}

// copyToClipboard puts the document on the system clipboard. Failure only
// warns: the output file has already been written.
func copyToClipboard(data []byte) {
	if err := clipboard.WriteAll(string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
		return
	}
	fmt.Println("Output copied to clipboard.")
}
