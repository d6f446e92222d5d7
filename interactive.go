package main

import (
	"errors"
	"fmt"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// errSelectionAborted reports that the user left the picker without choosing.
var errSelectionAborted = errors.New("interactive selection aborted")

// pickConfigID lets the user choose a configuration entry with a fuzzy finder.
func pickConfigID(doc ConfigDocument) (int, error) {
	ids := doc.IDs()
	if len(ids) == 0 {
		return 0, fmt.Errorf("no configurations to select from: %w", ErrConfigEntryNotFound)
	}

	idx, err := fuzzyfinder.Find(
		ids,
		func(i int) string {
			entry := doc[ids[i]]
			return fmt.Sprintf("%d  %s  %s", ids[i], entry.Mode, strings.Join(entry.Path, ", "))
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select a configuration to align. Press Enter to confirm."
			}
			return describeEntry(ids[i], doc[ids[i]])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return 0, errSelectionAborted
		}
		return 0, fmt.Errorf("fuzzy finder error: %w", err)
	}
	return ids[idx], nil
}

// describeEntry renders an entry for the picker's preview window.
func describeEntry(id int, entry ConfigEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Configuration: %d\nMode: %s\nPaths:\n", id, entry.Mode)
	for _, p := range entry.Path {
		fmt.Fprintf(&b, "  - %s\n", p)
	}
	return b.String()
}
