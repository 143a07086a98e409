package normalize

import "errors"

// Rejection reasons. Callers drop the event and may count the reason.
var (
	ErrNoKickoff     = errors.New("kickoff not derivable")
	ErrForeignLeague = errors.New("event belongs to another league")
)
