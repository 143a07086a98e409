package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Official-DomG/matchbot/internal/adapters/export/csvreport"
	"github.com/Official-DomG/matchbot/internal/adapters/http/api"
	"github.com/Official-DomG/matchbot/internal/adapters/notify/telegram"
	"github.com/Official-DomG/matchbot/internal/adapters/repository"
	"github.com/Official-DomG/matchbot/internal/adapters/sportsdb"
	"github.com/Official-DomG/matchbot/internal/app"
	"github.com/Official-DomG/matchbot/internal/config"
	"github.com/Official-DomG/matchbot/internal/domain/classify"
	"github.com/Official-DomG/matchbot/internal/domain/probability"
	"github.com/Official-DomG/matchbot/internal/domain/rating"
	"github.com/Official-DomG/matchbot/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	job, store, err := build(cfg, log)
	if err != nil {
		log.Error(ctx, "failed to build job", logger.Error(err))
		return 1
	}

	if cfg.Schedule == "" {
		if _, err := job.Run(ctx); err != nil {
			log.Error(ctx, "run failed", logger.Error(err))
			return 1
		}
		return 0
	}

	if err := serve(ctx, cfg, job, store, log); err != nil {
		log.Error(ctx, "scheduler stopped with error", logger.Error(err))
		return 1
	}
	return 0
}

// build wires the pipeline from configuration.
func build(cfg *config.Config, log logger.Logger, extra ...app.JobOption) (*app.Job, *repository.MemoryStore, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	days, err := cfg.Weekdays()
	if err != nil {
		return nil, nil, err
	}

	client := sportsdb.NewClient(
		sportsdb.WithBaseURL(cfg.SportsDB.BaseURL),
		sportsdb.WithAPIKey(cfg.SportsDB.APIKey),
		sportsdb.WithTimeout(cfg.SportsDB.Timeout),
		sportsdb.WithRateLimit(cfg.SportsDB.RatePerSecond, cfg.SportsDB.Burst),
		sportsdb.WithLogger(log.Named("sportsdb")),
	)

	collector, err := app.NewCollector(client,
		app.WithRatingBuilder(rating.NewBuilder(
			rating.WithConfig(rating.Config{
				Base:      cfg.Rating.Base,
				PPGWeight: cfg.Rating.PPGWeight,
				GDWeight:  cfg.Rating.GDWeight,
				Min:       cfg.Rating.Min,
				Max:       cfg.Rating.Max,
			}),
			rating.WithLogger(log.Named("rating")),
		)),
		app.WithModel(probability.New(
			probability.WithConfig(probability.Config{
				DrawBase:      cfg.Model.DrawBase,
				DrawTightness: cfg.Model.DrawTightness,
				DrawMin:       cfg.Model.DrawMin,
				DrawMax:       cfg.Model.DrawMax,
			}),
			probability.WithHomeAdvantage(cfg.Model.HomeAdvantage),
		)),
		app.WithClassifier(classify.New(
			classify.WithLiveGrace(time.Duration(cfg.Windows.LiveGraceMinutes)*time.Minute),
		)),
		app.WithDisplayLocation(loc),
		app.WithLogger(log.Named("collector")),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("collector: %w", err)
	}

	fb := app.NewFallback(collector,
		app.FallbackConfig{
			Enabled:      cfg.Fallback.Enabled,
			UpcomingDays: cfg.Fallback.UpcomingDays,
			ResultsHours: cfg.Fallback.ResultsHours,
		},
		app.WithFallbackLocation(loc),
		app.WithFallbackLogger(log.Named("fallback")),
	)

	specs := make([]sportsdb.LeagueSpec, 0, len(cfg.Leagues))
	for _, l := range cfg.Leagues {
		specs = append(specs, sportsdb.LeagueSpec{
			Name:          l.Name,
			FallbackID:    l.FallbackID,
			FallbackLabel: l.FallbackLabel,
			Aliases:       l.Aliases,
		})
	}

	store := repository.NewMemoryStore()
	opts := []app.JobOption{
		app.WithNotifier(telegram.NewNotifier(
			telegram.WithToken(cfg.Telegram.Token),
			telegram.WithChatID(cfg.Telegram.ChatID),
			telegram.WithMaxLen(cfg.Telegram.MaxLen),
			telegram.WithLogger(log.Named("telegram")),
		)),
		app.WithReportWriter(csvreport.New(
			csvreport.WithDir(cfg.OutDir),
			csvreport.WithPrefix(cfg.CSVPrefix),
			csvreport.WithLocation(loc),
			csvreport.WithLogger(log.Named("csv")),
		)),
		app.WithRunStore(store),
		app.WithLocation(loc),
		app.WithJobLogger(log.Named("job")),
	}

	job := app.NewJob(client, fb, app.JobConfig{
		Leagues:         specs,
		RunDays:         days,
		ResultsLookback: time.Duration(cfg.Windows.ResultsLookbackHours) * time.Hour,
		DeployMarker:    cfg.DeployMarker,
	}, append(opts, extra...)...)
	return job, store, nil
}

// serve runs the job on cfg.Schedule and exposes the operator API until ctx
// is cancelled.
func serve(ctx context.Context, cfg *config.Config, job *app.Job, store *repository.MemoryStore, log logger.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	cl := cronLogger{ctx: ctx, log: log.Named("cron")}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(cfg.Schedule, func() {
		if _, err := job.Run(ctx); err != nil {
			log.Error(ctx, "scheduled run failed", logger.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("%w: schedule %q: %v", config.ErrInvalidConfig, cfg.Schedule, err)
	}

	mux := http.NewServeMux()
	api.NewServer(store, job).Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	c.Start()
	log.Info(ctx, "scheduler started", logger.String("schedule", cfg.Schedule), logger.String("timezone", loc.String()))

	select {
	case <-ctx.Done():
	case err = <-errCh:
	}
	log.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Wait for an in-flight run before closing the listener.
	select {
	case <-c.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn(ctx, "in-flight run did not finish before shutdown timeout")
	}
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(serr))
	}

	log.Info(ctx, "stopped")
	return err
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	ctx context.Context
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(l.ctx, msg, fields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(l.ctx, msg, append(fields(keysAndValues), logger.Error(err))...)
}

func fields(kv []any) []logger.Field {
	out := make([]logger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, logger.Any(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return out
}
