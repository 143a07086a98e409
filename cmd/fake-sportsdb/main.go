// Command fake-sportsdb serves a deterministic TheSportsDB imitation for
// local runs. Point sportsdb.base_url at http://<addr>/api/v1/json.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Official-DomG/matchbot/internal/fakeprovider"
	"github.com/Official-DomG/matchbot/pkg/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	var (
		addr   = flag.String("addr", ":9081", "Listen address")
		at     = flag.String("now", "", "Instant fixtures are laid out around, RFC3339 (default: current time)")
		seed   = flag.Uint64("seed", 1, "Seed for tables and scores")
		before = flag.Int("before", 3, "Days before now that carry fixtures")
		after  = flag.Int("after", 10, "Days after now that carry fixtures")
		fail   = flag.String("fail", "", "Endpoint to answer with 500, e.g. lookuptable.php")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get().Named("fake-sportsdb")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	now := time.Now()
	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			log.Fatal(ctx, "invalid -now", logger.Error(err))
		}
		now = t
	}

	opts := []fakeprovider.Option{
		fakeprovider.WithSeed(*seed),
		fakeprovider.WithDays(*before, *after),
		fakeprovider.WithLogger(log),
	}
	if *fail != "" {
		opts = append(opts, fakeprovider.WithFailingEndpoints(*fail))
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           fakeprovider.New(now, opts...),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Info(ctx, "fake provider listening", logger.String("addr", *addr), logger.Time("now", now))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(ctx, "server error", logger.Error(err))
	}
}
