package processor

import (
	"time"

	"go-emberai/types"
)

// FireStats summarizes current fire activity for the stats endpoint.
type FireStats struct {
	TotalFires     int          `json:"total_fires"`
	TotalAcres     float64      `json:"total_acres"`
	AvgAcresPer    float64      `json:"avg_acres_per_fire"`
	StatesAffected int          `json:"states_affected"`
	LargestFire    *LargestFire `json:"largest_fire"`
	Timestamp      string       `json:"timestamp"`
}

type LargestFire struct {
	Name        string  `json:"name"`
	Acres       float64 `json:"acres"`
	State       string  `json:"state"`
	Containment float64 `json:"containment"`
}

// ComputeFireStats aggregates a feature collection into summary statistics.
// An empty collection yields zeroed stats with no largest fire.
func ComputeFireStats(fc *types.FeatureCollection) FireStats {
	stats := FireStats{Timestamp: time.Now().UTC().Format(time.RFC3339)}
	if fc == nil || len(fc.Features) == 0 {
		return stats
	}

	states := map[string]bool{}
	var largest *types.Feature
	var largestAcres float64

	for i := range fc.Features {
		feature := &fc.Features[i]
		acres := numberOrZero(feature.Properties, "DailyAcres")
		stats.TotalAcres += acres
		states[stringProp(feature.Properties, "POOState")] = true

		if largest == nil || acres > largestAcres {
			largest = feature
			largestAcres = acres
		}
	}

	stats.TotalFires = len(fc.Features)
	stats.AvgAcresPer = stats.TotalAcres / float64(stats.TotalFires)
	stats.StatesAffected = len(states)

	name := stringProp(largest.Properties, "IncidentName")
	if name == "" {
		name = "Unknown"
	}
	state := stringProp(largest.Properties, "POOState")
	if state == "" {
		state = "Unknown"
	}
	stats.LargestFire = &LargestFire{
		Name:        name,
		Acres:       largestAcres,
		State:       state,
		Containment: numberOrZero(largest.Properties, "PercentContained"),
	}

	return stats
}
