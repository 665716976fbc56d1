package pickService

import (
	"math"
	"math/rand"
)

const (
	MinWinChance = 45.0
	MaxWinChance = 95.0
)

type contextAdjustment struct {
	probability float64
	delta       float64
	awayOnly    bool
	reason      string
}

// Evaluated in order, each with its own draw.
var contextAdjustments = []contextAdjustment{
	{probability: 0.15, delta: -7, reason: "Key player possibly out"},
	{probability: 0.25, delta: -5, awayOnly: true, reason: "Travel fatigue"},
	{probability: 0.20, delta: -2, reason: "Odd start-time penalty"},
	{probability: 0.25, delta: 4, reason: "Motivation bump"},
}

// AdjustForContext applies the situational adjustments to a base win chance
// and returns the clamped result, rounded to one decimal, with the reasons
// that fired.
func AdjustForContext(rng *rand.Rand, modelChance float64, isHome bool) (float64, []string) {
	contextLog := []string{}

	for _, adj := range contextAdjustments {
		// one draw per adjustment, even when it cannot apply
		hit := rng.Float64() < adj.probability
		if !hit || (adj.awayOnly && isHome) {
			continue
		}
		modelChance += adj.delta
		contextLog = append(contextLog, adj.reason)
	}

	modelChance = math.Max(MinWinChance, math.Min(MaxWinChance, modelChance))
	return math.Round(modelChance*10) / 10, contextLog
}
