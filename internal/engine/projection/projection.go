// Package projection composes baseline production with redistribution, matchup,
// fatigue and availability adjustments into a per-stat projection.
package projection

import (
	"fmt"
	"math"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/matchup"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/usage"
)

const (
	// CoreLossPenalty is the flat efficiency hit when a top-3 usage teammate is out.
	CoreLossPenalty = 0.15

	// CoreLossGroup is how many top-usage players count for the core-loss penalty.
	CoreLossGroup = 3

	// FatiguePenalty applies on the second night of a back-to-back.
	FatiguePenalty = 0.03

	// ValueEdgeThreshold is the minimum absolute edge, in percent, for a value bet.
	ValueEdgeThreshold = 10.0
)

const (
	BaseConfidence     = 85
	MinConfidence      = 30
	MaxConfidence      = 95
	InactiveConfidence = 100

	BackToBackConfidencePenalty = 10
	HighVarianceMultiplier      = 1.2
	HighVarianceConfidenceDrop  = 15
	UncertainStatusPenalty      = 20
)

const (
	ReasonInactive    = "inactive"
	ReasonUnavailable = "unavailable: day-to-day treated as out"
	ReasonUnmatched   = "no season stats match: default averages used"
)

// Input is everything the engine needs to project one player for one stat.
type Input struct {
	Player           players.RosterEntry
	Stat             players.Stat
	VolumeMultiplier float64
	// Unavailable gates a player the usage policy removed even though not Out.
	Unavailable bool
	// CoreTeammateOut is set when a top-3 usage teammate (not this player) is out.
	CoreTeammateOut bool
	Matchup         matchup.Result
	BackToBack      bool
	// Line is nil when the market has no price for this player/stat.
	Line *matchups.PropLine
}

// Project runs the adjustment chain in fixed order. Each step multiplies the
// running value; reasons are appended in the same order. Rounding happens once,
// on the returned record.
func Project(in Input) matchups.Projection {
	out := matchups.Projection{
		PlayerID:   in.Player.ID,
		PlayerName: in.Player.Name,
		TeamID:     in.Player.TeamID,
		Stat:       in.Stat,
	}

	if in.Player.Status.IsOut() {
		out.Confidence = InactiveConfidence
		out.Reasons = []string{ReasonInactive}
		return out
	}
	if in.Unavailable {
		out.Confidence = InactiveConfidence
		out.Reasons = []string{ReasonUnavailable}
		return out
	}

	reasons := make([]string, 0, 6)
	value := in.Player.Averages.Get(in.Stat)
	if !in.Player.Matched {
		reasons = append(reasons, ReasonUnmatched)
	}

	value *= in.VolumeMultiplier
	if in.VolumeMultiplier > 1.0 {
		reasons = append(reasons, fmt.Sprintf("usage boost +%.1f%% from missing core teammates", (in.VolumeMultiplier-1)*100))
	}

	if in.CoreTeammateOut {
		value *= 1 - CoreLossPenalty
		reasons = append(reasons, fmt.Sprintf("core teammate out: -%.0f%% efficiency", CoreLossPenalty*100))
	}

	mod := in.Matchup
	if mod.Value == 0 && len(mod.Reasons) == 0 {
		mod = matchup.Neutral()
	}
	value *= mod.Value
	reasons = append(reasons, mod.Reasons...)

	if in.BackToBack {
		value *= 1 - FatiguePenalty
		reasons = append(reasons, fmt.Sprintf("back-to-back fatigue: -%.0f%%", FatiguePenalty*100))
	}

	out.Confidence = confidence(in)
	out.Value = Round1(value)
	out.Reasons = reasons

	if in.Line != nil {
		if edge, ok := CalculateEdge(value, in.Line.Line); ok {
			line := in.Line.Line
			price := in.Line.Price
			if price == 0 {
				price = matchups.DefaultPropPrice
			}
			out.Line = &line
			out.Price = &price
			out.HasLine = true
			out.Edge = Round1(edge)
			out.ExactEdge = edge
			out.IsValue = IsValueBet(edge)
		}
	}
	return out
}

func confidence(in Input) int {
	c := BaseConfidence
	if in.BackToBack {
		c -= BackToBackConfidencePenalty
	}
	if in.VolumeMultiplier > HighVarianceMultiplier {
		c -= HighVarianceConfidenceDrop
	}
	switch in.Player.Status {
	case players.StatusDayToDay, players.StatusQuestionable:
		c -= UncertainStatusPenalty
	}
	if c < MinConfidence {
		return MinConfidence
	}
	if c > MaxConfidence {
		return MaxConfidence
	}
	return c
}

// CalculateEdge returns (projection - line) / line * 100. ok is false when line <= 0.
func CalculateEdge(projection, line float64) (float64, bool) {
	if line <= 0 {
		return 0, false
	}
	return (projection - line) / line * 100, true
}

// IsValueBet reports whether an edge clears the value threshold in either direction.
func IsValueBet(edge float64) bool {
	return math.Abs(edge) >= ValueEdgeThreshold
}

// CoreTeammateOut reports whether any of the roster's top-3 usage players,
// other than playerID, is ruled out.
func CoreTeammateOut(entries []players.RosterEntry, playerID string) bool {
	for _, e := range usage.TopByUsage(entries, CoreLossGroup) {
		if e.ID != playerID && e.Status.IsOut() {
			return true
		}
	}
	return false
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
