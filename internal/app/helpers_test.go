package app_test

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/Official-DomG/matchbot/internal/adapters/sportsdb"
	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var errUpstream = errors.New("upstream 500")

// stubProvider serves canned tables and events keyed by league label and date.
type stubProvider struct {
	mu          sync.Mutex
	tables      map[int][]model.TableRow
	events      map[string][]model.RawEvent // label|date
	failTables  map[int]bool
	tableCalls  []int
	eventCalls  []string
	cancelAfter int
	cancel      context.CancelFunc
}

func newStub() *stubProvider {
	return &stubProvider{
		tables:     make(map[int][]model.TableRow),
		events:     make(map[string][]model.RawEvent),
		failTables: make(map[int]bool),
	}
}

func (s *stubProvider) FetchTable(_ context.Context, id int) sportsdb.TableResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tableCalls = append(s.tableCalls, id)
	if s.failTables[id] {
		return sportsdb.TableResult{Fault: errUpstream}
	}
	return sportsdb.TableResult{Rows: s.tables[id]}
}

func (s *stubProvider) FetchEventsDay(_ context.Context, date, label string) sportsdb.EventsResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventCalls = append(s.eventCalls, label+"|"+date)
	if s.cancel != nil && len(s.eventCalls) == s.cancelAfter {
		s.cancel()
	}
	return sportsdb.EventsResult{Events: s.events[label+"|"+date]}
}

func (s *stubProvider) add(label, date string, events ...model.RawEvent) {
	s.events[label+"|"+date] = append(s.events[label+"|"+date], events...)
}

func row(team string, played, points, gd int) model.TableRow {
	return model.TableRow{
		Team:           model.Text(team),
		Played:         model.Number(played),
		Points:         model.Number(points),
		GoalDifference: model.Number(gd),
	}
}

type ev struct {
	id, league, home, away, date, clock, status string
	hg, ag                                      *int
}

func intp(v int) *int { return &v }

func (e ev) raw() model.RawEvent {
	r := model.RawEvent{
		ID:       model.Text(e.id),
		LeagueID: model.Text(e.league),
		HomeTeam: model.Text(e.home),
		AwayTeam: model.Text(e.away),
		Date:     model.Text(e.date),
		Time:     model.Text(e.clock),
		Status:   model.Text(e.status),
	}
	if e.hg != nil {
		r.HomeScore = model.Text(strconv.Itoa(*e.hg))
	}
	if e.ag != nil {
		r.AwayScore = model.Text(strconv.Itoa(*e.ag))
	}
	return r
}

type stubResolver struct {
	leagues []model.League
	calls   int
}

func (r *stubResolver) ResolveLeagues(_ context.Context, _ []sportsdb.LeagueSpec) []model.League {
	r.calls++
	return r.leagues
}

type stubNotifier struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (n *stubNotifier) Send(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.texts = append(n.texts, text)
	return n.err
}
