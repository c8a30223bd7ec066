package balldontlie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
)

// Config controls how the balldontlie client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timezone   string
	MaxPages   int
	// Season is the starting year used for season averages; 0 derives it from the clock.
	Season int
}

// Client fetches schedules, rosters, averages and injuries from the balldontlie API
// and maps them to domain models. It carries no market, synergy or defense data.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
	maxPages   int
	season     int
}

// NewClient constructs a balldontlie client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		loc:        resolveLocation(cfg.Timezone),
		maxPages:   resolveMaxPages(cfg.MaxPages),
		season:     cfg.Season,
	}
}

// FetchGames retrieves the games for a date (today when empty) from balldontlie.
func (c *Client) FetchGames(ctx context.Context, date string, tz string) ([]games.Game, error) {
	loc := c.loc
	if tz != "" {
		if override := resolveLocation(tz); override != nil {
			loc = override
		}
	}

	page := 1
	allGames := make([]games.Game, 0)

	for {
		q := url.Values{}
		q.Set("dates[]", c.resolveDate(date, loc))
		q.Set("per_page", strconv.Itoa(defaultPerPage))
		q.Set("page", strconv.Itoa(page))

		var payload gamesResponse
		if err := c.getJSON(ctx, "/games", q, &payload); err != nil {
			return nil, err
		}

		for _, g := range payload.Data {
			allGames = append(allGames, mapGame(g))
		}

		totalPages := payload.Meta.TotalPages
		if totalPages > 0 {
			if page >= totalPages {
				break
			}
		} else {
			if len(payload.Data) == 0 || len(payload.Data) < defaultPerPage {
				break
			}
		}
		if page >= c.maxPages {
			break
		}
		page++
	}

	return allGames, nil
}

// FetchTeamData lists the team's players and their season averages. Team ids are
// the "team-<n>" form produced by FetchGames.
func (c *Client) FetchTeamData(ctx context.Context, teamID string) (matchups.TeamData, error) {
	n, err := upstreamTeamID(teamID)
	if err != nil {
		return matchups.TeamData{}, err
	}

	var roster []playerResponse
	err = c.eachCursorPage(ctx, "/players", url.Values{"team_ids[]": {strconv.Itoa(n)}}, func(raw []byte) (*int, error) {
		var payload playersResponse
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, err
		}
		roster = append(roster, payload.Data...)
		return payload.Meta.NextCursor, nil
	})
	if err != nil {
		return matchups.TeamData{}, err
	}

	data := matchups.TeamData{TeamID: teamID, Roster: mapRoster(roster)}
	if len(roster) == 0 {
		return data, nil
	}

	q := url.Values{}
	q.Set("season", strconv.Itoa(c.resolveSeason()))
	for _, p := range roster {
		q.Add("player_ids[]", strconv.Itoa(p.ID))
	}
	var averages seasonAveragesResponse
	if err := c.getJSON(ctx, "/season_averages", q, &averages); err != nil {
		return matchups.TeamData{}, err
	}
	data.SeasonStats = mapSeasonRecords(roster, averages.Data)
	return data, nil
}

// FetchInjuries returns the league injury report. The upstream report is not dated,
// so the date is ignored.
func (c *Client) FetchInjuries(ctx context.Context, date string) ([]players.InjuryRecord, error) {
	_ = date
	var out []players.InjuryRecord
	err := c.eachCursorPage(ctx, "/player_injuries", url.Values{}, func(raw []byte) (*int, error) {
		var payload injuriesResponse
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, err
		}
		for _, inj := range payload.Data {
			out = append(out, mapInjury(inj))
		}
		return payload.Meta.NextCursor, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchMarket always reports ErrMarketUnavailable; balldontlie carries no prices.
func (c *Client) FetchMarket(ctx context.Context, gameID string) (*matchups.MarketSnapshot, error) {
	_ = ctx
	return nil, fmt.Errorf("%s %s: %w", providerName, gameID, providers.ErrMarketUnavailable)
}

func (c *Client) eachCursorPage(ctx context.Context, path string, q url.Values, handle func(raw []byte) (*int, error)) error {
	q.Set("per_page", strconv.Itoa(defaultPerPage))
	for page := 1; ; page++ {
		var raw json.RawMessage
		if err := c.getJSON(ctx, path, q, &raw); err != nil {
			return err
		}
		next, err := handle(raw)
		if err != nil {
			return fmt.Errorf("%s: decode %s: %w", providerName, path, err)
		}
		if next == nil || page >= c.maxPages {
			return nil
		}
		q.Set("cursor", strconv.Itoa(*next))
	}
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = q.Encode()
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    strings.TrimSpace(string(body)),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func (c *Client) resolveDate(date string, loc *time.Location) string {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err == nil {
			return date
		}
	}
	return c.now().In(loc).Format("2006-01-02")
}

// resolveSeason returns the configured season, else the season in progress.
func (c *Client) resolveSeason() int {
	if c.season > 0 {
		return c.season
	}
	now := c.now().In(c.loc)
	if now.Month() >= seasonStartMonth {
		return now.Year()
	}
	return now.Year() - 1
}
