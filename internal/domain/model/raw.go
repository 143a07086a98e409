package model

// TableRow is one standings row as served by the provider.
type TableRow struct {
	Team           Loose `json:"strTeam"`
	Played         Loose `json:"intPlayed"`
	Points         Loose `json:"intPoints"`
	GoalDifference Loose `json:"intGoalDifference"`
}

// RawEvent is one fixture as served by the provider's events-by-day lookup.
type RawEvent struct {
	ID        Loose `json:"idEvent"`
	LeagueID  Loose `json:"idLeague"`
	HomeTeam  Loose `json:"strHomeTeam"`
	AwayTeam  Loose `json:"strAwayTeam"`
	Date      Loose `json:"dateEvent"`
	Time      Loose `json:"strTime"`
	HomeScore Loose `json:"intHomeScore"`
	AwayScore Loose `json:"intAwayScore"`
	Status    Loose `json:"strStatus"`
}

// LeagueInfo is one entry of the provider's league search.
type LeagueInfo struct {
	ID   Loose `json:"idLeague"`
	Name Loose `json:"strLeague"`
}
