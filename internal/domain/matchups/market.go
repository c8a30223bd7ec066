package matchups

import "github.com/preston-bernstein/nba-edge-service/internal/domain/players"

// DefaultPropPrice is assumed when a prop line carries no price.
const DefaultPropPrice = -110

// PropLine is a bookmaker line for one player statistic. Price is American odds.
type PropLine struct {
	PlayerID string       `json:"playerId"`
	Stat     players.Stat `json:"stat"`
	Line     float64      `json:"line"`
	Price    int          `json:"price,omitempty"`
}

// MarketSnapshot carries the market prices known for one game.
type MarketSnapshot struct {
	GameID        string     `json:"gameId"`
	Props         []PropLine `json:"props"`
	HomeMoneyline *int       `json:"homeMoneyline,omitempty"`
	AwayMoneyline *int       `json:"awayMoneyline,omitempty"`
}

// PropFor returns the first line for the player/stat pair.
func (m *MarketSnapshot) PropFor(playerID string, stat players.Stat) (PropLine, bool) {
	if m == nil {
		return PropLine{}, false
	}
	for _, p := range m.Props {
		if p.PlayerID == playerID && p.Stat == stat {
			return p, true
		}
	}
	return PropLine{}, false
}
