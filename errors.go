package main

import "errors"

// Failure kinds surfaced by the pipeline. Every stage wraps one of these with
// the offending path, ID or mode, so callers match them with errors.Is.
var (
	ErrConfigFileNotFound  = errors.New("configuration file not found")
	ErrConfigParse         = errors.New("error parsing configuration file")
	ErrConfigEntryNotFound = errors.New("configuration ID not found")
	ErrInvalidConfigID     = errors.New("invalid configuration ID")

	ErrInvalidMode   = errors.New("invalid mode")
	ErrNotADirectory = errors.New("not a valid directory")
	ErrNotAFile      = errors.New("not a valid file")

	ErrFileRead   = errors.New("error reading file")
	ErrEmptyInput = errors.New("no files to align")
)
