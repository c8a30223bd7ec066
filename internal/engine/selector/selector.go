// Package selector estimates the moneyline and picks at most one best bet per matchup.
package selector

import (
	"math"
	"sort"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/projection"
	"github.com/preston-bernstein/nba-edge-service/internal/oddsmath"
)

const (
	StrengthGroup     = 3
	HomeCourtEdge     = 0.04
	MinWinProbability = 0.20
	MaxWinProbability = 0.80

	PropEdgeThreshold      = 12.0
	MoneylineEdgeThreshold = 8.0

	// Assumed market-implied probabilities, in percent, used for the moneyline comparison.
	ImpliedFavorite = 58.0
	ImpliedUnderdog = 45.0

	MaxBetConfidence = 10
)

// Moneylines carries the market's team prices when known.
type Moneylines struct {
	Home *int
	Away *int
}

// TeamStrength sums season points per game of the top three players by ppg
// who are not ruled out.
func TeamStrength(players []matchups.PlayerProjections) float64 {
	ppg := make([]float64, 0, len(players))
	for _, p := range players {
		if p.Status.IsOut() {
			continue
		}
		ppg = append(ppg, p.Player.Averages.Points)
	}
	sort.SliceStable(ppg, func(i, j int) bool { return ppg[i] > ppg[j] })

	var sum float64
	for i := 0; i < len(ppg) && i < StrengthGroup; i++ {
		sum += ppg[i]
	}
	return sum
}

// WinEstimate converts team strength into win probabilities. degenerate is
// true when both strengths were zero and the raw share fell back to 0.5.
func WinEstimate(home, away []matchups.PlayerProjections) (est matchups.TeamWinEstimate, degenerate bool) {
	homeStrength := TeamStrength(home)
	awayStrength := TeamStrength(away)

	raw := 0.5
	if total := homeStrength + awayStrength; total > 0 {
		raw = homeStrength / total
	} else {
		degenerate = true
	}

	share := clamp(raw+HomeCourtEdge, MinWinProbability, MaxWinProbability)
	homeProb := projection.Round1(share * 100)

	est = matchups.TeamWinEstimate{
		HomeWinProbability:    homeProb,
		AwayWinProbability:    projection.Round1(100 - homeProb),
		HomeAdvantage:         projection.Round1((share - raw) * 100),
		StarPowerDifferential: projection.Round1(homeStrength - awayStrength),
	}
	return est, degenerate
}

// SelectBestBet returns the strongest prop edge of at least 12%, failing that a
// moneyline edge of at least 8%, failing that BetNone.
func SelectBestBet(home, away []matchups.PlayerProjections, homeAlias, awayAlias string, est matchups.TeamWinEstimate, lines Moneylines) matchups.BestBet {
	if bet, ok := bestProp(home, away, homeAlias, awayAlias); ok {
		return bet
	}
	if bet, ok := bestMoneyline(homeAlias, awayAlias, est, lines); ok {
		return bet
	}
	return matchups.BestBet{Kind: matchups.BetNone}
}

func bestProp(home, away []matchups.PlayerProjections, homeAlias, awayAlias string) (matchups.BestBet, bool) {
	var (
		best     matchups.Projection
		bestTeam string
		found    bool
	)
	scan := func(team []matchups.PlayerProjections, alias string) {
		for _, p := range team {
			for _, proj := range p.Projections {
				if !proj.HasLine {
					continue
				}
				edge := math.Abs(proj.ExactEdge)
				if edge < PropEdgeThreshold {
					continue
				}
				if !found || edge > math.Abs(best.ExactEdge) {
					best, bestTeam, found = proj, alias, true
				}
			}
		}
	}
	scan(home, homeAlias)
	scan(away, awayAlias)
	if !found {
		return matchups.BestBet{}, false
	}

	kind := matchups.BetPropOver
	if best.ExactEdge < 0 {
		kind = matchups.BetPropUnder
	}
	bet := matchups.BestBet{
		Kind:       kind,
		Edge:       best.Edge,
		Confidence: betConfidence(5 + math.Abs(best.Edge)/5),
		Price:      matchups.DefaultPropPrice,
		Team:       bestTeam,
		PlayerID:   best.PlayerID,
		PlayerName: best.PlayerName,
		Stat:       best.Stat,
		Projection: best.Value,
	}
	if best.Line != nil {
		bet.Line = *best.Line
	}
	if best.Price != nil {
		bet.Price = *best.Price
	}
	return bet, true
}

func bestMoneyline(homeAlias, awayAlias string, est matchups.TeamWinEstimate, lines Moneylines) (matchups.BestBet, bool) {
	homeImplied := impliedFor(est.HomeWinProbability)
	awayImplied := impliedFor(est.AwayWinProbability)
	homeEdge := est.HomeWinProbability - homeImplied
	awayEdge := est.AwayWinProbability - awayImplied

	team, edge, implied, price := homeAlias, homeEdge, homeImplied, lines.Home
	if awayEdge > homeEdge {
		team, edge, implied, price = awayAlias, awayEdge, awayImplied, lines.Away
	}
	if edge < MoneylineEdgeThreshold {
		return matchups.BestBet{}, false
	}

	bet := matchups.BestBet{
		Kind:       matchups.BetMoneylineValue,
		Edge:       projection.Round1(edge),
		Confidence: betConfidence(5 + edge/4),
		Team:       team,
	}
	if price != nil {
		bet.Price = *price
	} else if assumed, err := oddsmath.ProbabilityToAmerican(implied / 100); err == nil {
		bet.Price = assumed
	}
	return bet, true
}

func impliedFor(modelProb float64) float64 {
	if modelProb >= 50 {
		return ImpliedFavorite
	}
	return ImpliedUnderdog
}

func betConfidence(raw float64) int {
	c := int(math.Round(raw))
	if c > MaxBetConfidence {
		return MaxBetConfidence
	}
	if c < 1 {
		return 1
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
