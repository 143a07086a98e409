package telegram

import "errors"

var (
	// ErrNotConfigured is returned when the bot token or chat id is missing.
	ErrNotConfigured = errors.New("telegram not configured")
	// ErrSend wraps a failed sendMessage call.
	ErrSend = errors.New("telegram send failed")
)
