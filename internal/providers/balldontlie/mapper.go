package balldontlie

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
)

const (
	teamIDPrefix   = "team-"
	playerIDPrefix = "player-"
	// freeThrowPossessions weights free throw attempts when estimating possessions used.
	freeThrowPossessions = 0.44
)

func mapGame(g gameResponse) games.Game {
	return games.Game{
		ID:        fmt.Sprintf("%s-%d", providerName, g.ID),
		Provider:  providerName,
		HomeTeam:  mapTeam(g.HomeTeam),
		AwayTeam:  mapTeam(g.VisitorTeam),
		StartTime: g.Date,
		Status:    mapStatus(g.Status),
		Score: games.Score{
			Home: g.HomeTeamScore,
			Away: g.VisitorTeamScore,
		},
		Meta: games.GameMeta{
			Season:         formatSeason(g.Season),
			UpstreamGameID: g.ID,
			Period:         g.Period,
			Postseason:     g.Postseason,
			Time:           strings.TrimSpace(g.Time),
		},
	}
}

func mapTeam(t teamResponse) teams.Team {
	return teams.Team{
		ID:           fmt.Sprintf("%s%d", teamIDPrefix, t.ID),
		Name:         t.Name,
		FullName:     t.FullName,
		Abbreviation: t.Abbreviation,
		City:         t.City,
		Conference:   t.Conference,
		Division:     t.Division,
	}
}

func upstreamTeamID(teamID string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(teamID, teamIDPrefix))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("balldontlie: invalid team id %q", teamID)
	}
	return n, nil
}

func playerID(id int) string {
	return fmt.Sprintf("%s%d", playerIDPrefix, id)
}

func playerName(p playerResponse) string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func mapRoster(in []playerResponse) []players.RosterRecord {
	out := make([]players.RosterRecord, 0, len(in))
	for _, p := range in {
		out = append(out, players.RosterRecord{
			ID:       playerID(p.ID),
			Name:     playerName(p),
			Position: p.Position,
		})
	}
	return out
}

// mapSeasonRecords joins averages onto the roster. Usage is each player's share of
// the possessions used (FGA + 0.44*FTA + TOV) by the listed players.
func mapSeasonRecords(roster []playerResponse, averages []seasonAverageResponse) []players.SeasonRecord {
	byID := make(map[int]playerResponse, len(roster))
	for _, p := range roster {
		byID[p.ID] = p
	}

	var total float64
	for _, a := range averages {
		total += possessionsUsed(a)
	}

	out := make([]players.SeasonRecord, 0, len(averages))
	for _, a := range averages {
		p := byID[a.PlayerID]
		usage := 0.0
		if total > 0 {
			usage = possessionsUsed(a) / total
		}
		out = append(out, players.SeasonRecord{
			ID:       playerID(a.PlayerID),
			Name:     playerName(p),
			Position: p.Position,
			Averages: players.Averages{
				Points:   a.Points,
				Assists:  a.Assists,
				Rebounds: a.Rebounds,
				Threes:   a.Threes,
			},
			Usage: usage,
		})
	}
	return out
}

func possessionsUsed(a seasonAverageResponse) float64 {
	return a.FGA + freeThrowPossessions*a.FTA + a.Turnovers
}

func mapInjury(in injuryResponse) players.InjuryRecord {
	return players.InjuryRecord{
		PlayerID:    playerID(in.Player.ID),
		PlayerName:  playerName(in.Player),
		Status:      players.ParseStatus(in.Status),
		Description: strings.TrimSpace(in.Description),
	}
}

func mapStatus(status string) games.GameStatus {
	switch strings.ToLower(status) {
	case "final", "ended":
		return games.StatusFinal
	case "in progress", "halftime", "end of period":
		return games.StatusInProgress
	case "postponed":
		return games.StatusPostponed
	case "canceled", "cancelled":
		return games.StatusCanceled
	default:
		return games.StatusScheduled
	}
}

func formatSeason(season int) string {
	return fmt.Sprintf("%d", season)
}
