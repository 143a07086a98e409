package fakeprovider

import "github.com/Official-DomG/matchbot/pkg/logger"

// Option configures the server.
type Option func(*Server)

// WithLeagues replaces the default leagues.
func WithLeagues(leagues ...League) Option {
	return func(s *Server) {
		if len(leagues) > 0 {
			s.leagues = leagues
		}
	}
}

// WithSeed changes the generated tables and scores.
func WithSeed(seed uint64) Option {
	return func(s *Server) { s.seed = seed }
}

// WithDays sets how many days before and after now carry fixtures.
func WithDays(before, after int) Option {
	return func(s *Server) {
		if before >= 0 && after >= 0 {
			s.before, s.after = before, after
		}
	}
}

// WithFailingEndpoints makes the named endpoints answer 500.
func WithFailingEndpoints(endpoints ...string) Option {
	return func(s *Server) {
		for _, e := range endpoints {
			s.failing[e] = struct{}{}
		}
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
