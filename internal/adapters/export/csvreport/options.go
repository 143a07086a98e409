package csvreport

import (
	"time"

	"github.com/Official-DomG/matchbot/pkg/logger"
)

// Option configures the writer.
type Option func(*Writer)

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(w *Writer) {
		if dir != "" {
			w.dir = dir
		}
	}
}

// WithPrefix sets the file name prefix.
func WithPrefix(prefix string) Option {
	return func(w *Writer) {
		if prefix != "" {
			w.prefix = prefix
		}
	}
}

// WithLocation sets the zone used for the file name stamp.
func WithLocation(loc *time.Location) Option {
	return func(w *Writer) {
		if loc != nil {
			w.loc = loc
		}
	}
}

// WithLogger sets a custom logger for the writer.
func WithLogger(l logger.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}
