package skills

import "math"

const (
	baseExplicit      = 0.55
	baseImplicit      = 0.45
	mentionFactor     = 0.12
	mentionBonusCap   = 0.35
	sourceFactor      = 0.08
	sourceBonusCap    = 0.20
	confidenceCeiling = 0.98
)

// Score computes a signal confidence from its mention and distinct source
// counts. The result is rounded to two decimals and never exceeds 0.98.
func Score(kind SignalKind, mentions, sourceCount int) float64 {
	base := baseImplicit
	if kind == KindExplicit {
		base = baseExplicit
	}

	mentionBonus := math.Min(mentionBonusCap, mentionFactor*math.Log1p(float64(max(0, mentions))))
	sourceBonus := math.Min(sourceBonusCap, sourceFactor*float64(max(0, sourceCount-1)))

	return round2(math.Min(confidenceCeiling, base+mentionBonus+sourceBonus))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
