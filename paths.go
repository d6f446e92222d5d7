package main

import "path/filepath"

// resolvePath returns p unchanged when it is absolute, otherwise p joined
// onto base.
func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
