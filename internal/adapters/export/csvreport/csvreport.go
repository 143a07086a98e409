// Package csvreport writes one run's classified matches to a CSV file.
package csvreport

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/pkg/logger"
)

const (
	// DefaultDir is where reports land when no directory is configured.
	DefaultDir = "/tmp/matchbot_reports"
	// DefaultPrefix starts every report file name.
	DefaultPrefix = "matchbot_c4"

	stampLayout = "2006-01-02_1504"
	source      = "SportsDB"
	places      = 4
)

// Writer renders records to {dir}/{prefix}_{stamp}.csv.
type Writer struct {
	dir    string
	prefix string
	loc    *time.Location
	logger logger.Logger
}

// New creates a writer.
func New(opts ...Option) *Writer {
	w := &Writer{
		dir:    DefaultDir,
		prefix: DefaultPrefix,
		loc:    time.UTC,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named("csvreport")
	}
	return w
}

// Path returns the file a report written at now would use.
func (w *Writer) Path(now time.Time) string {
	name := fmt.Sprintf("%s_%s.csv", w.prefix, now.In(w.loc).Format(stampLayout))
	return filepath.Join(w.dir, name)
}

// Write stores records and returns the file path. Nothing is written, and
// the path is empty, when there are no records.
func (w *Writer) Write(ctx context.Context, records []model.Record, now time.Time) (string, error) {
	if len(records) == 0 {
		w.logger.Info(ctx, "no rows; csv skipped")
		return "", nil
	}

	rows := make([]map[string]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row(r))
	}
	header := Header(rows)

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCreateDir, err)
	}

	path := w.Path(now)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	line := make([]string, len(header))
	for _, row := range rows {
		for i, k := range header {
			line[i] = row[k]
		}
		if err := cw.Write(line); err != nil {
			return "", fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	w.logger.Info(ctx, "csv written", logger.String("path", path), logger.Int("rows", len(rows)))
	return path, nil
}

// Row flattens a record into named columns. Only results carry actual and
// hit, and upcoming matches have no score column.
func Row(r model.Record) map[string]string {
	b := r.Common()
	row := map[string]string{
		"league":         b.League,
		"kickoff_london": b.KickoffLocal,
		"home":           b.Home,
		"away":           b.Away,
		"p_home":         Round(b.Prediction.Home),
		"p_draw":         Round(b.Prediction.Draw),
		"p_away":         Round(b.Prediction.Away),
		"pick":           string(b.Prediction.Pick),
		"source":         source,
		"idEvent":        b.ID,
		"status":         b.Status,
		"type":           string(r.Bucket()),
	}

	switch rec := r.(type) {
	case model.ResultRecord:
		row["score"] = rec.Score()
		row["actual"] = string(rec.Actual)
		row["hit"] = yesNo(rec.Hit)
	case model.LiveRecord:
		row["score"] = rec.Score()
	}
	return row
}

// Header is the sorted union of column names over rows.
func Header(rows []map[string]string) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, row := range rows {
		for k := range row {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Round renders a probability with at most four decimal places.
func Round(p float64) string {
	return decimal.NewFromFloat(p).Round(places).String()
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
