// Package sportsdb is a client for TheSportsDB v1 JSON API.
//
// Every lookup degrades to an empty result on failure. The fault, if any, is
// returned alongside the data instead of as an error so a run can continue
// league by league and date by date.
package sportsdb

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/pkg/logger"
	"github.com/Official-DomG/matchbot/pkg/metrics"
	"github.com/andybalholm/brotli"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the v1 JSON API root.
	DefaultBaseURL = "https://www.thesportsdb.com/api/v1/json"

	// DefaultAPIKey is the public test key.
	DefaultAPIKey = "123"

	defaultTimeout   = 25 * time.Second
	defaultRateLimit = 2.0 // requests per second
	defaultBurst     = 2

	endpointTable     = "lookuptable.php"
	endpointEventsDay = "eventsday.php"
	endpointLeagues   = "search_all_leagues.php"

	sportSoccer = "Soccer"
	countryHome = "England"
)

// Client talks to TheSportsDB.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logger.Logger
}

// NewClient creates a new client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  DefaultAPIKey,
		timeout: defaultTimeout,
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("sportsdb")
	}
	return c
}

// FetchTable returns the current standings of league.
func (c *Client) FetchTable(ctx context.Context, leagueID int) TableResult {
	params := url.Values{"l": {strconv.Itoa(leagueID)}}

	var out tableResponse
	start := time.Now()
	if err := c.get(ctx, endpointTable, params, &out); err != nil {
		c.fault(ctx, endpointTable, start, err, logger.Int("league_id", leagueID))
		return TableResult{Fault: err}
	}
	c.observe(endpointTable, start, len(out.Table))
	return TableResult{Rows: out.Table}
}

// FetchEventsDay returns all soccer events on date (YYYY-MM-DD), filtered
// by the provider-side league label when one is given.
func (c *Client) FetchEventsDay(ctx context.Context, date, leagueLabel string) EventsResult {
	params := url.Values{"d": {date}, "s": {sportSoccer}}
	if leagueLabel != "" {
		params.Set("l", leagueLabel)
	}

	var out eventsResponse
	start := time.Now()
	if err := c.get(ctx, endpointEventsDay, params, &out); err != nil {
		c.fault(ctx, endpointEventsDay, start, err, logger.String("date", date), logger.String("league", leagueLabel))
		return EventsResult{Fault: err}
	}
	c.observe(endpointEventsDay, start, len(out.Events))
	return EventsResult{Events: out.Events}
}

// SearchLeagues lists the soccer leagues of country.
func (c *Client) SearchLeagues(ctx context.Context, country string) ([]model.LeagueInfo, error) {
	params := url.Values{"c": {country}, "s": {sportSoccer}}

	var out leaguesResponse
	start := time.Now()
	if err := c.get(ctx, endpointLeagues, params, &out); err != nil {
		c.fault(ctx, endpointLeagues, start, err, logger.String("country", country))
		return nil, err
	}
	c.observe(endpointLeagues, start, len(out.Countries))
	return out.Countries, nil
}

// ResolveLeagues maps each LeagueSpec to a provider id and label with one
// league search. Unmatched leagues, or all of them when the search fails,
// keep their static fallback pair.
func (c *Client) ResolveLeagues(ctx context.Context, specs []LeagueSpec) []model.League {
	found, err := c.SearchLeagues(ctx, countryHome)
	if err != nil {
		c.logger.Warn(ctx, "league search failed; using static ids", logger.Error(err))
	}

	out := make([]model.League, 0, len(specs))
	for _, spec := range specs {
		out = append(out, resolve(spec, found))
	}
	return out
}

func resolve(spec LeagueSpec, found []model.LeagueInfo) model.League {
	allowed := map[string]struct{}{key(spec.Name): {}}
	for _, a := range spec.Aliases {
		allowed[key(a)] = struct{}{}
	}

	for _, info := range found {
		if _, ok := allowed[key(info.Name.String())]; !ok {
			continue
		}
		id := info.ID.Int()
		if id == 0 {
			continue
		}
		label := info.Name.String()
		if label == "" {
			label = spec.FallbackLabel
		}
		return model.League{Name: spec.Name, ID: id, Label: label}
	}
	return model.League{Name: spec.Name, ID: spec.FallbackID, Label: spec.FallbackLabel}
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRateLimit, err)
	}

	u := fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.baseURL, "/"), url.PathEscape(c.apiKey), endpoint)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, br")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
	}

	body, err := decodeBody(resp)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// decodeBody unwraps Content-Encoding. Requesting an encoding explicitly
// turns off net/http's transparent gzip, so both are handled here.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", ErrEncoding, err)
		}
		return r, nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}

func (c *Client) observe(endpoint string, start time.Time, n int) {
	outcome := "data"
	if n == 0 {
		outcome = "empty"
	}
	metrics.RecordProviderRequest(endpoint, outcome, float64(time.Since(start).Milliseconds()))
}

func (c *Client) fault(ctx context.Context, endpoint string, start time.Time, err error, fields ...logger.Field) {
	metrics.RecordProviderRequest(endpoint, "fault", float64(time.Since(start).Milliseconds()))
	metrics.RecordProviderFault(endpoint)
	fields = append(fields, logger.String("endpoint", endpoint), logger.Error(err))
	c.logger.Warn(ctx, "provider call degraded to empty", fields...)
}
