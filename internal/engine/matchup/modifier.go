// Package matchup scores how an opponent's play-type defense bends a player's efficiency.
//
// The modifier is a linear, frequency-weighted blend, not a probabilistic model:
// every significant play type facing an elite or weak defense shifts the result by
// a fixed weight times its frequency. Identical inputs produce identical output.
package matchup

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
)

const (
	// SignificantFrequency is the minimum play-type share that can move the modifier.
	SignificantFrequency = 0.15
	// EliteRank and better counts as elite defense.
	EliteRank = 5
	// WeakRank and worse counts as weak defense.
	WeakRank = 25
	// Weight scales a play type's frequency into its contribution.
	Weight = 0.10
)

// Result is the modifier plus the ordered reasons that produced it.
type Result struct {
	Value   float64
	Reasons []string
}

// Neutral is the result when there is nothing to compare.
func Neutral() Result {
	return Result{Value: 1}
}

// Modifier compares a player's synergy profile with the opponent's defense.
// Entries are evaluated in profile order so reasons are stable.
func Modifier(profile matchups.SynergyProfile, defense matchups.DefenseProfile) Result {
	if len(profile.Entries) == 0 || defense.IsEmpty() {
		return Neutral()
	}

	total := 0.0
	var reasons []string
	for _, e := range profile.Entries {
		if e.Frequency < SignificantFrequency {
			continue
		}
		rank, ok := defense.Rank(e.PlayType)
		if !ok {
			continue
		}
		switch {
		case rank <= EliteRank:
			delta := Weight * e.Frequency
			total -= delta
			reasons = append(reasons, fmt.Sprintf("elite %s defense (rank %d): -%.1f%%", playTypeLabel(e.PlayType), rank, delta*100))
		case rank >= WeakRank:
			delta := Weight * e.Frequency
			total += delta
			reasons = append(reasons, fmt.Sprintf("weak %s defense (rank %d): +%.1f%%", playTypeLabel(e.PlayType), rank, delta*100))
		}
	}
	return Result{Value: 1 + total, Reasons: reasons}
}

func playTypeLabel(pt matchups.PlayType) string {
	return strings.ReplaceAll(string(pt), "_", " ")
}
