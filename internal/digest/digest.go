// Package digest renders a run as the plain-text message sent to operators.
package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Official-DomG/matchbot/internal/domain/model"
)

// Title is the first line of every message.
const Title = "MatchBot C4 - Thu-Sun + Live + Eval + Fallback (ASCII)"

const (
	maxResults   = 40
	maxEvaluated = 10
	maxLive      = 40
	maxUpcoming  = 80

	runLayout  = "2006-01-02 15:04"
	dateLayout = "2006-01-02"
)

// Report is everything a digest shows.
type Report struct {
	Now          time.Time // already in the reporting zone
	DeployMarker string
	WindowStart  time.Time
	WindowEnd    time.Time
	Leagues      []model.League
	ResultsHours int

	FallbackUsed         bool
	FallbackUpcomingDays int
	FallbackResultsHours int

	Results  []model.ResultRecord
	Live     []model.LiveRecord
	Upcoming []model.UpcomingRecord
	Tally    model.Tally
}

// Build renders the full digest.
func Build(r Report) string {
	lines := header(r.Now, r.DeployMarker)

	lines = append(lines,
		fmt.Sprintf("Window: Thu %s -> Sun %s (London)", r.WindowStart.Format(dateLayout), r.WindowEnd.Format(dateLayout)),
		"Leagues: "+strings.Join(resolved(r.Leagues), ", "),
		"",
	)

	hours := r.ResultsHours
	if r.FallbackUsed {
		hours = r.FallbackResultsHours
		lines = append(lines, FallbackNote(r.FallbackUpcomingDays, r.FallbackResultsHours), "")
	}

	lines = append(lines, fmt.Sprintf("RESULTS (last %dh):", hours))
	if len(r.Results) == 0 {
		lines = append(lines, "- None found.")
	}
	for _, rec := range head(r.Results, maxResults) {
		lines = append(lines, fmt.Sprintf("- %s %s - %s %s %s",
			rec.KickoffLocal, rec.League, rec.Home, rec.Score(), rec.Away))
	}

	lines = append(lines, "", "EVALUATION (pick vs actual):")
	if r.Tally.Total == 0 {
		lines = append(lines, "- No completed matches to evaluate.")
	} else {
		lines = append(lines,
			fmt.Sprintf("- Accuracy: %d/%d = %s%%", r.Tally.Correct, r.Tally.Total, Accuracy(r.Tally)),
			"Last 10 evaluated:",
		)
		for _, rec := range tail(r.Results, maxEvaluated) {
			lines = append(lines, fmt.Sprintf("- %s %s - %s %s %s | Pick:%s Actual:%s Hit:%s",
				rec.KickoffLocal, rec.League, rec.Home, rec.Score(), rec.Away,
				rec.Prediction.Pick, rec.Actual, yesNo(rec.Hit)))
		}
	}

	lines = append(lines, "", "LIVE (matches happening now):")
	if len(r.Live) == 0 {
		lines = append(lines, "- None live right now (or provider did not flag).")
	}
	for _, rec := range head(r.Live, maxLive) {
		score := rec.Score()
		if score == "" {
			score = "?"
		}
		lines = append(lines, fmt.Sprintf("- %s %s - %s vs %s (Score:%s) | %s | Pick:%s",
			rec.KickoffLocal, rec.League, rec.Home, rec.Away, score, hda(rec.Prediction), rec.Prediction.Pick))
	}

	lines = append(lines, "", "UPCOMING:")
	if len(r.Upcoming) == 0 {
		lines = append(lines, "- None upcoming in window.")
	}
	for _, rec := range head(r.Upcoming, maxUpcoming) {
		lines = append(lines, fmt.Sprintf("- %s %s - %s vs %s | %s | Pick:%s",
			rec.KickoffLocal, rec.League, rec.Home, rec.Away, hda(rec.Prediction), rec.Prediction.Pick))
	}

	return strings.Join(lines, "\n")
}

// Heartbeat is sent instead of a digest on days the job does not run.
func Heartbeat(now time.Time, deployMarker string) string {
	lines := header(now, deployMarker)
	lines = append(lines, "Today is outside Thu-Sun. Script is skipping main run.")
	return strings.Join(lines, "\n")
}

// Failure reports a run that stopped on an unrecovered error.
func Failure(now time.Time, deployMarker string, err error) string {
	lines := header(now, deployMarker)
	lines = append(lines, "Run FAILED: "+err.Error())
	return strings.Join(lines, "\n")
}

// FallbackNote explains a widened window.
func FallbackNote(upcomingDays, resultsHours int) string {
	return fmt.Sprintf("Fallback active: no matches in Thu-Sun window. Showing next %d days + last %dh results.",
		upcomingDays, resultsHours)
}

// Accuracy renders the hit rate with one decimal place.
func Accuracy(t model.Tally) string {
	if t.Total == 0 {
		return "0.0"
	}
	return decimal.NewFromInt(int64(t.Correct)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(t.Total))).
		StringFixed(1)
}

// Percent truncates a probability, rounded to four places, to a whole percent.
func Percent(p float64) int64 {
	return decimal.NewFromFloat(p).Round(4).Mul(decimal.NewFromInt(100)).IntPart()
}

func header(now time.Time, deployMarker string) []string {
	return []string{
		Title,
		"Run (London): " + now.Format(runLayout),
		"Deploy: " + deployMarker,
		"",
	}
}

func hda(p model.Prediction) string {
	return fmt.Sprintf("H:%d D:%d A:%d", Percent(p.Home), Percent(p.Draw), Percent(p.Away))
}

func resolved(leagues []model.League) []string {
	names := make([]string, 0, len(leagues))
	for _, l := range leagues {
		if l.ID != 0 {
			names = append(names, l.Name)
		}
	}
	return names
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func tail[T any](s []T, n int) []T {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
