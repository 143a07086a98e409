package sportsdb

import "errors"

// Sentinel kinds for provider faults. A fault never aborts a run; it is
// carried on the fetch result so callers can tell "no data" from "unreachable".
var (
	ErrRateLimit  = errors.New("rate limiter wait failed")
	ErrTransport  = errors.New("provider request failed")
	ErrHTTPStatus = errors.New("provider returned non-200 status")
	ErrEncoding   = errors.New("provider body could not be decompressed")
	ErrDecode     = errors.New("provider body is not valid JSON")
)
