package sportsdb

import "github.com/Official-DomG/matchbot/internal/domain/model"

// TableResult is the outcome of a standings lookup. Fault is nil when the
// provider answered, even with an empty table.
type TableResult struct {
	Rows  []model.TableRow
	Fault error
}

// Degraded reports whether Rows is empty because of a provider fault.
func (r TableResult) Degraded() bool { return r.Fault != nil }

// EventsResult is the outcome of an events-by-day lookup.
type EventsResult struct {
	Events []model.RawEvent
	Fault  error
}

// Degraded reports whether Events is empty because of a provider fault.
func (r EventsResult) Degraded() bool { return r.Fault != nil }

// LeagueSpec describes a tracked league and how to recognise it in the
// provider's league search.
type LeagueSpec struct {
	Name          string
	FallbackID    int
	FallbackLabel string
	Aliases       []string
}

type tableResponse struct {
	Table []model.TableRow `json:"table"`
}

type eventsResponse struct {
	Events []model.RawEvent `json:"events"`
}

type leaguesResponse struct {
	Countries []model.LeagueInfo `json:"countries"`
}
