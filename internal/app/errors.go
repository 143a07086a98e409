package app

import "errors"

var (
	// ErrNoProvider is returned when a collector is built without a provider.
	ErrNoProvider = errors.New("no provider configured")
	// ErrRunFailed wraps the unrecovered error that stopped a run.
	ErrRunFailed = errors.New("run failed")
	// ErrRunInProgress is returned when a run is triggered while one is active.
	ErrRunInProgress = errors.New("run already in progress")
)
