// Package app wires the pipeline into a scheduled job: it collects and
// classifies matches, falls back to a rolling window when the week is
// empty, and hands the result to the digest, the CSV export and the run
// store.
package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Official-DomG/matchbot/internal/adapters/notify/telegram"
	"github.com/Official-DomG/matchbot/internal/adapters/sportsdb"
	"github.com/Official-DomG/matchbot/internal/digest"
	"github.com/Official-DomG/matchbot/internal/domain/classify"
	"github.com/Official-DomG/matchbot/internal/domain/types"
	"github.com/Official-DomG/matchbot/pkg/logger"
	"github.com/Official-DomG/matchbot/pkg/metrics"
)

// JobConfig holds the run-planning settings.
type JobConfig struct {
	Leagues         []sportsdb.LeagueSpec
	RunDays         []time.Weekday
	ResultsLookback time.Duration
	DeployMarker    string
}

// DefaultJobConfig returns Thursday to Sunday runs with a 36h results window.
func DefaultJobConfig() JobConfig {
	return JobConfig{
		RunDays:         []time.Weekday{time.Thursday, time.Friday, time.Saturday, time.Sunday},
		ResultsLookback: 36 * time.Hour,
	}
}

// Job is one end-to-end run. Runs on the same Job never overlap.
type Job struct {
	mu sync.Mutex

	resolver LeagueResolver
	fallback *Fallback
	cfg      JobConfig

	notifier Notifier
	writer   ReportWriter
	store    RunStore

	loc    *time.Location
	now    func() time.Time
	logger logger.Logger
}

// NewJob creates a job that resolves leagues with r and collects through fb.
func NewJob(r LeagueResolver, fb *Fallback, cfg JobConfig, opts ...JobOption) *Job {
	j := &Job{
		resolver: r,
		fallback: fb,
		cfg:      cfg,
		loc:      time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	if j.logger == nil {
		j.logger = logger.Get().Named("job")
	}
	return j
}

// Run waits for any active run to finish, then runs.
func (j *Job) Run(ctx context.Context) (types.RunSummary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.run(ctx)
}

// TryRun runs only if no other run is active, returning ErrRunInProgress
// otherwise.
func (j *Job) TryRun(ctx context.Context) (types.RunSummary, error) {
	if !j.mu.TryLock() {
		return types.RunSummary{}, ErrRunInProgress
	}
	defer j.mu.Unlock()
	return j.run(ctx)
}

func (j *Job) run(ctx context.Context) (types.RunSummary, error) {
	started := j.now()
	now := started.In(j.loc)
	sum := types.RunSummary{ID: uuid.NewString(), StartedAt: started}
	log := j.logger.With(logger.String("run_id", sum.ID))
	log.Info(ctx, "run starting", logger.String("deploy", j.cfg.DeployMarker), logger.Time("now", now))

	if !slices.Contains(j.cfg.RunDays, now.Weekday()) {
		log.Info(ctx, "outside run days; sending heartbeat", logger.String("weekday", now.Weekday().String()))
		j.notify(ctx, log, digest.Heartbeat(now, j.cfg.DeployMarker))
		sum.Status = types.RunSkipped
		j.finish(ctx, log, &sum)
		return sum, nil
	}

	if err := j.collect(ctx, log, now, &sum); err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		sum.Status = types.RunFailed
		sum.Error = err.Error()
		j.notify(ctx, log, digest.Failure(now, j.cfg.DeployMarker, err))
		j.finish(ctx, log, &sum)
		return sum, fmt.Errorf("%w: %w", ErrRunFailed, err)
	}

	sum.Status = types.RunOK
	j.finish(ctx, log, &sum)
	return sum, nil
}

func (j *Job) collect(ctx context.Context, log logger.Logger, now time.Time, sum *types.RunSummary) error {
	thu, sun := Week(now)
	primary := Plan{
		Dates: DateRange(thu, sun),
		Windows: classify.Windows{
			Now:           now,
			ResultsStart:  now.Add(-j.cfg.ResultsLookback),
			ResultsEnd:    now,
			UpcomingStart: now,
			UpcomingEnd:   time.Date(sun.Year(), sun.Month(), sun.Day(), 23, 59, 59, 0, j.loc),
		},
	}

	leagues := j.resolver.ResolveLeagues(ctx, j.cfg.Leagues)
	for _, l := range leagues {
		if l.ID != 0 {
			sum.Leagues = append(sum.Leagues, l.Name)
		}
	}
	log.Info(ctx, "leagues resolved", logger.Any("leagues", leagues), logger.Any("dates", primary.Dates))

	out, err := j.fallback.Run(ctx, leagues, primary, now)
	if err != nil {
		return err
	}

	sum.Dates = primary.Dates
	sum.FallbackUsed = out.FallbackUsed
	sum.Results = len(out.Results)
	sum.Live = len(out.Live)
	sum.Upcoming = len(out.Upcoming)
	sum.Correct = out.Tally.Correct
	sum.Evaluated = out.Tally.Total
	sum.Accuracy = out.Tally.Accuracy()
	sum.Faults = out.Faults
	metrics.UpdateAccuracy(out.Tally.Correct, out.Tally.Total)

	j.notify(ctx, log, digest.Build(digest.Report{
		Now:                  now,
		DeployMarker:         j.cfg.DeployMarker,
		WindowStart:          thu,
		WindowEnd:            sun,
		Leagues:              leagues,
		ResultsHours:         int(j.cfg.ResultsLookback / time.Hour),
		FallbackUsed:         out.FallbackUsed,
		FallbackUpcomingDays: out.FallbackUpcomingDays,
		FallbackResultsHours: out.FallbackResultsHours,
		Results:              out.Results,
		Live:                 out.Live,
		Upcoming:             out.Upcoming,
		Tally:                out.Tally,
	}))

	if j.writer != nil {
		path, err := j.writer.Write(ctx, out.All, now)
		if err != nil {
			return err
		}
		sum.CSVPath = path
	}
	return nil
}

// notify delivers text. Delivery problems are logged, never fatal.
func (j *Job) notify(ctx context.Context, log logger.Logger, text string) {
	if j.notifier == nil {
		return
	}
	err := j.notifier.Send(ctx, text)
	switch {
	case err == nil:
	case errors.Is(err, telegram.ErrNotConfigured):
		log.Info(ctx, "notifier not configured; digest only logged", logger.Int("length", len(text)))
	default:
		log.Error(ctx, "notification failed", logger.Error(err))
	}
}

func (j *Job) finish(ctx context.Context, log logger.Logger, sum *types.RunSummary) {
	sum.FinishedAt = j.now()
	took := sum.FinishedAt.Sub(sum.StartedAt)
	metrics.RecordRun(string(sum.Status), took)

	if j.store != nil {
		if err := j.store.Save(ctx, *sum); err != nil {
			log.Error(ctx, "run summary not saved", logger.Error(err))
		}
	}
	log.Info(ctx, "run finished",
		logger.String("status", string(sum.Status)),
		logger.Duration("took", took),
		logger.Bool("fallback", sum.FallbackUsed),
		logger.Int("results", sum.Results),
		logger.Int("live", sum.Live),
		logger.Int("upcoming", sum.Upcoming),
	)
}

// Week returns Thursday and Sunday of the Monday-based week containing
// now, as midnights in now's zone.
func Week(now time.Time) (time.Time, time.Time) {
	offset := (int(now.Weekday()) + 6) % 7 // Monday is 0
	day := civil(now)
	return day.AddDate(0, 0, 3-offset), day.AddDate(0, 0, 6-offset)
}
