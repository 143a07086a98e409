package csvreport

import "errors"

var (
	// ErrCreateDir is returned when the output directory cannot be created.
	ErrCreateDir = errors.New("create report dir")
	// ErrWrite is returned when the report file cannot be written.
	ErrWrite = errors.New("write report")
)
