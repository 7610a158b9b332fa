package processor

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"go-emberai/types"
)

// ParseFireFeatures converts raw feature service records into normalized
// FirePerimeter values, preserving input order. A record with a non-numeric
// value in a numeric field is dropped and counted; the rest of the batch is
// unaffected. The skipped count is returned so callers can report data
// quality.
func ParseFireFeatures(fc *types.FeatureCollection) ([]types.FirePerimeter, int) {
	if fc == nil {
		return []types.FirePerimeter{}, 0
	}

	fires := make([]types.FirePerimeter, 0, len(fc.Features))
	skipped := 0

	for _, feature := range fc.Features {
		fire, err := parseFireFeature(feature)
		if err != nil {
			log.Printf("Skipping fire feature: %v", err)
			skipped++
			continue
		}
		fires = append(fires, fire)
	}

	return fires, skipped
}

func parseFireFeature(feature types.Feature) (types.FirePerimeter, error) {
	props := feature.Properties
	if props == nil {
		props = map[string]interface{}{}
	}

	acres, err := floatProp(props, "DailyAcres")
	if err != nil {
		return types.FirePerimeter{}, err
	}
	containment, err := intProp(props, "PercentContained")
	if err != nil {
		return types.FirePerimeter{}, err
	}
	poiLat, err := floatProp(props, "InitialLatitude")
	if err != nil {
		return types.FirePerimeter{}, err
	}
	poiLon, err := floatProp(props, "InitialLongitude")
	if err != nil {
		return types.FirePerimeter{}, err
	}
	initialAcres, err := floatProp(props, "InitialResponseAcres")
	if err != nil {
		return types.FirePerimeter{}, err
	}
	personnel, err := intProp(props, "TotalPersonnel")
	if err != nil {
		return types.FirePerimeter{}, err
	}
	threatened, err := intProp(props, "StructuresThreated")
	if err != nil {
		return types.FirePerimeter{}, err
	}
	destroyed, err := intProp(props, "StructuresDestroyed")
	if err != nil {
		return types.FirePerimeter{}, err
	}
	cost, err := floatProp(props, "EstimatedCostToDate")
	if err != nil {
		return types.FirePerimeter{}, err
	}

	return types.FirePerimeter{
		IncidentID:   stringProp(props, "IRWINID"),
		IncidentName: stringProp(props, "IncidentName"),
		Geometry:     feature.Geometry,
		Acres:        acres,
		Containment:  containment,
		Discovered:   timeProp(props, "FireDiscoveryDateTime"),
		State:        stringProp(props, "POOState"),
		County:       stringProp(props, "POOCounty"),
		Cause:        stringProp(props, "FireCause"),
		Behavior:     stringProp(props, "FireBehaviorGeneral"),
		POILatitude:  poiLat,
		POILongitude: poiLon,
		Suppression:  stringProp(props, "SuppressionMethod"),
		InitialAcres: initialAcres,
		Personnel:    personnel,
		Threatened:   threatened,
		Destroyed:    destroyed,
		Complexity:   stringProp(props, "FireMgmtComplexity"),
		CostToDate:   cost,
		Origin:       stringProp(props, "FireOrigin"),
		Weather:      stringProp(props, "WeatherConcerns"),
		FuelModel:    stringProp(props, "FuelModel"),
		DangerRating: stringProp(props, "FireDangerRating"),
	}, nil
}

// stringProp returns the attribute as a string, defaulting missing or null
// values to "". Present values are taken as-is.
func stringProp(props map[string]interface{}, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// floatProp returns the attribute as a float64. Missing or null values
// default to 0. A present value that cannot be read as a number is an error,
// which drops the whole record upstream.
func floatProp(props map[string]interface{}, key string) (float64, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return 0, nil
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("field %s: %q is not numeric", key, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %s: unexpected type %T", key, v)
	}
}

// intProp is floatProp truncated to int, sharing its default and error
// behavior.
func intProp(props map[string]interface{}, key string) (int, error) {
	f, err := floatProp(props, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// timeProp parses the discovery timestamp leniently: all-digit values are
// epoch milliseconds, anything else is tried as ISO-8601 (with or without
// offset). Unparseable or missing values yield nil, never an error — unlike
// the numeric fields, a bad timestamp does not drop the record.
func timeProp(props map[string]interface{}, key string) *time.Time {
	v, ok := props[key]
	if !ok || v == nil {
		return nil
	}

	switch n := v.(type) {
	case float64:
		t := time.UnixMilli(int64(n)).UTC()
		return &t
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		if isDigits(s) {
			millis, err := strconv.ParseInt(s, 10, 64)
			if err == nil {
				t := time.UnixMilli(millis).UTC()
				return &t
			}
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				t = t.UTC()
				return &t
			}
		}
		log.Printf("Could not parse date: %s", s)
		return nil
	default:
		return nil
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
