package app

import (
	"time"

	"github.com/Official-DomG/matchbot/internal/domain/classify"
	"github.com/Official-DomG/matchbot/internal/domain/probability"
	"github.com/Official-DomG/matchbot/internal/domain/rating"
	"github.com/Official-DomG/matchbot/pkg/logger"
)

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithRatingBuilder sets the standings-to-rating builder.
func WithRatingBuilder(b *rating.Builder) CollectorOption {
	return func(c *Collector) {
		if b != nil {
			c.ratings = b
		}
	}
}

// WithModel sets the probability model.
func WithModel(m *probability.Model) CollectorOption {
	return func(c *Collector) {
		if m != nil {
			c.model = m
		}
	}
}

// WithClassifier sets the bucket classifier.
func WithClassifier(cl *classify.Classifier) CollectorOption {
	return func(c *Collector) {
		if cl != nil {
			c.classifier = cl
		}
	}
}

// WithDisplayLocation sets the zone kickoffs are rendered and sorted in.
func WithDisplayLocation(loc *time.Location) CollectorOption {
	return func(c *Collector) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithLogger sets a custom logger for the collector.
func WithLogger(l logger.Logger) CollectorOption {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// FallbackOption configures a Fallback.
type FallbackOption func(*Fallback)

// WithFallbackLocation sets the zone whose calendar days the rolling plan
// queries.
func WithFallbackLocation(loc *time.Location) FallbackOption {
	return func(f *Fallback) {
		if loc != nil {
			f.loc = loc
		}
	}
}

// WithFallbackLogger sets a custom logger for the fallback controller.
func WithFallbackLogger(l logger.Logger) FallbackOption {
	return func(f *Fallback) {
		if l != nil {
			f.logger = l
		}
	}
}

// JobOption configures a Job.
type JobOption func(*Job)

// WithNotifier sets where digests and failures are sent.
func WithNotifier(n Notifier) JobOption {
	return func(j *Job) { j.notifier = n }
}

// WithReportWriter sets the per-run export.
func WithReportWriter(w ReportWriter) JobOption {
	return func(j *Job) { j.writer = w }
}

// WithRunStore sets where run summaries are kept.
func WithRunStore(s RunStore) JobOption {
	return func(j *Job) { j.store = s }
}

// WithLocation sets the reporting zone.
func WithLocation(loc *time.Location) JobOption {
	return func(j *Job) {
		if loc != nil {
			j.loc = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) JobOption {
	return func(j *Job) {
		if now != nil {
			j.now = now
		}
	}
}

// WithJobLogger sets a custom logger for the job.
func WithJobLogger(l logger.Logger) JobOption {
	return func(j *Job) {
		if l != nil {
			j.logger = l
		}
	}
}
