package pickService

import "math/rand"

const (
	SmartlineHigh   = "High"
	SmartlineMedium = "Medium"
	TagNone         = "None"

	FadePopular  = "Fade Popular Pick"
	RiskyPopular = "Risky Popular Pick"
)

func GetConfidenceGrade(hitChance float64) string {
	switch {
	case hitChance >= 85:
		return "A+"
	case hitChance >= 75:
		return "A"
	case hitChance >= 65:
		return "B"
	default:
		return "C"
	}
}

func GetTier(hitChance float64) string {
	switch {
	case hitChance >= 80:
		return TierSafe
	case hitChance >= 70:
		return TierMid
	default:
		return TierHigh
	}
}

// GradeSmartline tags the model's edge over the market, in percentage points.
func GradeSmartline(edge float64) string {
	switch {
	case edge >= 10:
		return SmartlineHigh
	case edge >= 5:
		return SmartlineMedium
	default:
		return TagNone
	}
}

// SimulatePublicPercentage stands in for public betting share data: a uniform
// integer in [40, 90].
func SimulatePublicPercentage(rng *rand.Rand) int {
	return 40 + rng.Intn(51)
}

func GradePublicFade(publicPct int, modelPct float64) string {
	if publicPct > 65 && modelPct < 60 {
		return FadePopular
	}
	if publicPct > 60 && modelPct < 65 {
		return RiskyPopular
	}
	return TagNone
}
