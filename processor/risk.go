package processor

import (
	"time"

	"go-emberai/types"
)

// AssessEmberRisk scores a fire's ember spotfire risk from its size and
// containment. Score ranges 1-5: size contributes 3/2/1 at the
// 5000/1000-acre thresholds, low containment adds 2 below 25% and 1 below
// 50%. The suggested danger-zone radius is score*2 capped at 10 miles.
func AssessEmberRisk(acres float64, containment int) types.RiskAssessment {
	score := 1
	if acres > 5000 {
		score = 3
	} else if acres > 1000 {
		score = 2
	}

	if containment < 25 {
		score += 2
	} else if containment < 50 {
		score++
	}

	level := types.RiskLow
	if score >= 4 {
		level = types.RiskHigh
	} else if score >= 2 {
		level = types.RiskMedium
	}

	radius := score * 2
	if radius > 10 {
		radius = 10
	}

	return types.RiskAssessment{Score: score, Level: level, RadiusMiles: radius}
}

// ReportDangerRadiusMiles is the continuous danger radius used only by the
// situation report path: min(acres/100, 10) scaled down by containment. It
// deliberately differs from the score-based radius the API serves; the two
// must not be merged, downstream consumers depend on both sets of values.
func ReportDangerRadiusMiles(acres float64, containment int) float64 {
	base := acres / 100
	if base > 10 {
		base = 10
	}
	return base * float64(100-containment) / 100
}

// AnnotateDangerZones attaches the risk assessment to every feature's
// property bag in place, the shape the danger-zones endpoint serves. Size
// and containment are read leniently here; a malformed feature just gets the
// minimum score rather than being dropped.
func AnnotateDangerZones(fc *types.FeatureCollection) {
	if fc == nil {
		return
	}

	stamp := time.Now().UTC().Format(time.RFC3339)
	for _, feature := range fc.Features {
		if feature.Properties == nil {
			continue
		}

		acres := numberOrZero(feature.Properties, "DailyAcres")
		containment := numberOrZero(feature.Properties, "PercentContained")
		risk := AssessEmberRisk(acres, int(containment))

		feature.Properties["ember_risk_score"] = risk.Score
		feature.Properties["ember_risk_level"] = string(risk.Level)
		feature.Properties["danger_zone_radius_miles"] = risk.RadiusMiles
		feature.Properties["analysis_timestamp"] = stamp
	}
}

// numberOrZero reads a property as float64, treating anything non-numeric
// as 0.
func numberOrZero(props map[string]interface{}, key string) float64 {
	f, err := floatProp(props, key)
	if err != nil {
		return 0
	}
	return f
}
