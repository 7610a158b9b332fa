package processor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-emberai/types"
)

func feature(props map[string]interface{}) types.Feature {
	return types.Feature{
		Type:       "Feature",
		Properties: props,
		Geometry:   json.RawMessage(`{"type":"Polygon","coordinates":[]}`),
	}
}

func TestParseFireFeatures(t *testing.T) {
	t.Run("fully populated feature", func(t *testing.T) {
		fc := &types.FeatureCollection{Features: []types.Feature{feature(map[string]interface{}{
			"IRWINID":               "ABC-123",
			"IncidentName":          "Cedar Creek",
			"DailyAcres":            float64(1200),
			"PercentContained":      float64(40),
			"FireDiscoveryDateTime": "1755216000000", // epoch millis as digit string
			"POOState":              "WA",
			"POOCounty":             "Chelan",
			"FireCause":             "Lightning",
			"FireBehaviorGeneral":   "Active",
			"InitialLatitude":       47.5,
			"InitialLongitude":      -120.7,
			"SuppressionMethod":     "Full Suppression",
			"InitialResponseAcres":  float64(40),
			"TotalPersonnel":        float64(350),
			"StructuresThreated":    float64(12),
			"StructuresDestroyed":   float64(1),
			"FireMgmtComplexity":    "Type 2",
			"EstimatedCostToDate":   float64(2500000),
			"FireOrigin":            "Ridge above trailhead",
			"WeatherConcerns":       "Gusty winds",
			"FuelModel":             "Timber",
			"FireDangerRating":      "Very High",
		})}}

		fires, skipped := ParseFireFeatures(fc)

		require.Len(t, fires, 1)
		assert.Equal(t, 0, skipped)

		fire := fires[0]
		assert.Equal(t, "ABC-123", fire.IncidentID)
		assert.Equal(t, "Cedar Creek", fire.IncidentName)
		assert.Equal(t, 1200.0, fire.Acres)
		assert.Equal(t, 40, fire.Containment)
		assert.Equal(t, "WA", fire.State)
		assert.Equal(t, 47.5, fire.POILatitude)
		assert.Equal(t, 350, fire.Personnel)
		assert.Equal(t, 12, fire.Threatened)
		assert.Equal(t, 2500000.0, fire.CostToDate)
		assert.JSONEq(t, `{"type":"Polygon","coordinates":[]}`, string(fire.Geometry))

		require.NotNil(t, fire.Discovered)
		assert.Equal(t, time.UnixMilli(1755216000000).UTC(), *fire.Discovered)
	})

	t.Run("missing fields fall back to defaults", func(t *testing.T) {
		fc := &types.FeatureCollection{Features: []types.Feature{feature(map[string]interface{}{
			"IncidentName": "Sparse Fire",
		})}}

		fires, skipped := ParseFireFeatures(fc)

		require.Len(t, fires, 1)
		assert.Equal(t, 0, skipped)
		assert.Equal(t, "", fires[0].IncidentID)
		assert.Equal(t, 0.0, fires[0].Acres)
		assert.Equal(t, 0, fires[0].Containment)
		assert.Equal(t, "", fires[0].State)
		assert.Nil(t, fires[0].Discovered)
	})

	t.Run("null values fall back to defaults", func(t *testing.T) {
		fc := &types.FeatureCollection{Features: []types.Feature{feature(map[string]interface{}{
			"IncidentName": nil,
			"DailyAcres":   nil,
		})}}

		fires, skipped := ParseFireFeatures(fc)

		require.Len(t, fires, 1)
		assert.Equal(t, 0, skipped)
		assert.Equal(t, "", fires[0].IncidentName)
		assert.Equal(t, 0.0, fires[0].Acres)
	})

	t.Run("numeric strings are parsed", func(t *testing.T) {
		fc := &types.FeatureCollection{Features: []types.Feature{feature(map[string]interface{}{
			"DailyAcres":       "1234.5",
			"PercentContained": "35",
		})}}

		fires, skipped := ParseFireFeatures(fc)

		require.Len(t, fires, 1)
		assert.Equal(t, 0, skipped)
		assert.Equal(t, 1234.5, fires[0].Acres)
		assert.Equal(t, 35, fires[0].Containment)
	})

	t.Run("non-numeric value drops only that record", func(t *testing.T) {
		fc := &types.FeatureCollection{Features: []types.Feature{
			feature(map[string]interface{}{"IncidentName": "First", "DailyAcres": float64(10)}),
			feature(map[string]interface{}{"IncidentName": "Broken", "DailyAcres": "lots"}),
			feature(map[string]interface{}{"IncidentName": "Third", "DailyAcres": float64(30)}),
		}}

		fires, skipped := ParseFireFeatures(fc)

		assert.Equal(t, 1, skipped)
		require.Len(t, fires, 2)
		assert.Equal(t, "First", fires[0].IncidentName)
		assert.Equal(t, "Third", fires[1].IncidentName)
	})

	t.Run("unparseable timestamp never drops the record", func(t *testing.T) {
		fc := &types.FeatureCollection{Features: []types.Feature{feature(map[string]interface{}{
			"IncidentName":          "No Date",
			"FireDiscoveryDateTime": "sometime last week",
		})}}

		fires, skipped := ParseFireFeatures(fc)

		require.Len(t, fires, 1)
		assert.Equal(t, 0, skipped)
		assert.Nil(t, fires[0].Discovered)
	})

	t.Run("ISO timestamp with trailing Z", func(t *testing.T) {
		fc := &types.FeatureCollection{Features: []types.Feature{feature(map[string]interface{}{
			"FireDiscoveryDateTime": "2025-08-10T14:30:00Z",
		})}}

		fires, _ := ParseFireFeatures(fc)

		require.Len(t, fires, 1)
		require.NotNil(t, fires[0].Discovered)
		assert.Equal(t, time.Date(2025, 8, 10, 14, 30, 0, 0, time.UTC), *fires[0].Discovered)
	})

	t.Run("numeric timestamp is epoch millis", func(t *testing.T) {
		fc := &types.FeatureCollection{Features: []types.Feature{feature(map[string]interface{}{
			"FireDiscoveryDateTime": float64(1755216000000),
		})}}

		fires, _ := ParseFireFeatures(fc)

		require.Len(t, fires, 1)
		require.NotNil(t, fires[0].Discovered)
		assert.Equal(t, time.UnixMilli(1755216000000).UTC(), *fires[0].Discovered)
	})

	t.Run("empty batch", func(t *testing.T) {
		fires, skipped := ParseFireFeatures(&types.FeatureCollection{})

		assert.NotNil(t, fires)
		assert.Empty(t, fires)
		assert.Equal(t, 0, skipped)
	})

	t.Run("nil collection", func(t *testing.T) {
		fires, skipped := ParseFireFeatures(nil)

		assert.Empty(t, fires)
		assert.Equal(t, 0, skipped)
	})
}
