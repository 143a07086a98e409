// Package fakeprovider serves a deterministic imitation of TheSportsDB v1
// API: standings, fixtures by day and the league search. Fixtures are laid
// out around a fixed instant so their statuses are predictable.
package fakeprovider

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Official-DomG/matchbot/pkg/logger"
)

// Endpoint names, as they appear at the end of request paths.
const (
	EndpointTable     = "lookuptable.php"
	EndpointEventsDay = "eventsday.php"
	EndpointLeagues   = "search_all_leagues.php"
)

const (
	dateLayout  = "2006-01-02"
	matchLength = 110 * time.Minute
)

// Kickoff slots in UTC. The last one is late enough that the provider also
// lists it under the following day.
var slots = []time.Duration{
	12*time.Hour + 30*time.Minute,
	15 * time.Hour,
	17*time.Hour + 30*time.Minute,
	23*time.Hour + 30*time.Minute,
}

// League is one competition served by the fake.
type League struct {
	ID    int
	Label string
	Teams []string
}

// DefaultLeagues mirrors the two English leagues a real run tracks.
func DefaultLeagues() []League {
	return []League{
		{ID: 4328, Label: "English Premier League", Teams: []string{
			"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton", "Chelsea",
			"Crystal Palace", "Everton", "Fulham", "Liverpool", "Manchester City", "Newcastle",
		}},
		{ID: 4329, Label: "English League Championship", Teams: []string{
			"Leeds", "Burnley", "Sunderland", "Sheffield United", "Middlesbrough", "Coventry",
			"Bristol City", "Norwich", "Watford", "Millwall", "Blackburn", "Hull City",
		}},
	}
}

// Event is the provider's event shape.
type Event struct {
	ID        string  `json:"idEvent"`
	LeagueID  string  `json:"idLeague"`
	League    string  `json:"strLeague"`
	HomeTeam  string  `json:"strHomeTeam"`
	AwayTeam  string  `json:"strAwayTeam"`
	Date      string  `json:"dateEvent"`
	Time      string  `json:"strTime"`
	HomeScore *string `json:"intHomeScore"`
	AwayScore *string `json:"intAwayScore"`
	Status    string  `json:"strStatus"`
}

// Row is the provider's standings row shape.
type Row struct {
	Team           string `json:"strTeam"`
	Played         string `json:"intPlayed"`
	Points         string `json:"intPoints"`
	GoalDifference string `json:"intGoalDifference"`
}

// Server is an http.Handler imitating the provider.
type Server struct {
	now     time.Time
	leagues []League
	seed    uint64
	before  int
	after   int
	failing map[string]struct{}
	logger  logger.Logger

	tables map[int][]Row
	days   map[string][]Event
}

// New builds the fixture set around now.
func New(now time.Time, opts ...Option) *Server {
	s := &Server{
		now:     now.UTC(),
		leagues: DefaultLeagues(),
		seed:    1,
		before:  3,
		after:   10,
		failing: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("fakeprovider")
	}
	s.generate()
	return s
}

// Events returns the fixtures listed under date, in every league.
func (s *Server) Events(date string) []Event {
	return slices.Clone(s.days[date])
}

// Table returns the standings of league.
func (s *Server) Table(leagueID int) []Row {
	return slices.Clone(s.tables[leagueID])
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	endpoint := path.Base(r.URL.Path)
	s.logger.Debug(r.Context(), "request", logger.String("endpoint", endpoint), logger.String("query", r.URL.RawQuery))
	if _, ok := s.failing[endpoint]; ok {
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	switch endpoint {
	case EndpointTable:
		id, _ := strconv.Atoi(q.Get("l"))
		rows, ok := s.tables[id]
		if !ok {
			writeJSON(w, map[string]any{"table": nil})
			return
		}
		writeJSON(w, map[string]any{"table": rows})
	case EndpointEventsDay:
		events := s.filter(s.days[q.Get("d")], q.Get("l"))
		if len(events) == 0 {
			writeJSON(w, map[string]any{"events": nil})
			return
		}
		writeJSON(w, map[string]any{"events": events})
	case EndpointLeagues:
		type info struct {
			ID   string `json:"idLeague"`
			Name string `json:"strLeague"`
		}
		out := []info{{ID: "4396", Name: "English League 1"}}
		for _, l := range s.leagues {
			out = append(out, info{ID: strconv.Itoa(l.ID), Name: l.Label})
		}
		writeJSON(w, map[string]any{"countries": out})
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) filter(events []Event, label string) []Event {
	if label == "" {
		return events
	}
	var out []Event
	for _, e := range events {
		if strings.EqualFold(e.League, label) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Server) generate() {
	s.tables = make(map[int][]Row, len(s.leagues))
	s.days = make(map[string][]Event)

	today := time.Date(s.now.Year(), s.now.Month(), s.now.Day(), 0, 0, 0, 0, time.UTC)
	for _, l := range s.leagues {
		rng := rand.New(rand.NewPCG(s.seed, uint64(l.ID)))
		s.tables[l.ID] = table(rng, l.Teams)

		for offset := -s.before; offset <= s.after; offset++ {
			day := today.AddDate(0, 0, offset)
			for slot, at := range slots {
				e := s.fixture(rng, l, day, offset, slot, at)
				date := day.Format(dateLayout)
				s.days[date] = append(s.days[date], e)
				if slot == len(slots)-1 {
					next := day.AddDate(0, 0, 1).Format(dateLayout)
					s.days[next] = append(s.days[next], e)
				}
			}
		}
	}
}

func (s *Server) fixture(rng *rand.Rand, l League, day time.Time, offset, slot int, at time.Duration) Event {
	n := len(l.Teams)
	home := l.Teams[(offset+s.before+slot*2)%n]
	away := l.Teams[(offset+s.before+slot*2+1+n/2)%n]
	if away == home {
		away = l.Teams[(offset+s.before+slot*2+1)%n]
	}
	kickoff := day.Add(at)

	e := Event{
		ID:       fmt.Sprintf("%d%03d%d", l.ID, offset+s.before, slot),
		LeagueID: strconv.Itoa(l.ID),
		League:   l.Label,
		HomeTeam: home,
		AwayTeam: away,
		Date:     day.Format(dateLayout),
		Time:     kickoff.Format("15:04:05"),
		Status:   "Not Started",
	}

	hg, ag := rng.IntN(4), rng.IntN(3)
	switch {
	case s.now.Sub(kickoff) >= matchLength:
		e.Status = "Match Finished"
		e.HomeScore, e.AwayScore = score(hg), score(ag)
	case !s.now.Before(kickoff):
		e.Status = "1st half"
		if s.now.Sub(kickoff) > 45*time.Minute {
			e.Status = "2nd half"
		}
		e.HomeScore, e.AwayScore = score(hg/2), score(ag/2)
	}
	return e
}

func table(rng *rand.Rand, teams []string) []Row {
	rows := make([]Row, 0, len(teams))
	for i, team := range teams {
		played := 20 + rng.IntN(3)
		strength := len(teams) - i
		points := played/2 + strength*2 + rng.IntN(6)
		gd := strength*3 - len(teams) - rng.IntN(5)
		rows = append(rows, Row{
			Team:           team,
			Played:         strconv.Itoa(played),
			Points:         strconv.Itoa(points),
			GoalDifference: strconv.Itoa(gd),
		})
	}
	return rows
}

func score(n int) *string {
	v := strconv.Itoa(n)
	return &v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
