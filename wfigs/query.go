package wfigs

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go-emberai/types"
)

// milesPerDegree is the linear miles-to-degrees conversion used for radius
// searches. It is applied to both axes, so boxes get wider than the true
// great-circle radius at high latitudes and are wrong across the date line.
// Kept as-is for compatibility with existing consumers.
const milesPerDegree = 69.0

// BuildQueryParams turns a FireFilter into the feature service query
// parameters. Output is deterministic for a given filter and clock reading:
// conditions are emitted in state, min-acres, age-cutoff order. With no
// filters set the where clause is the select-all tautology "1=1".
//
// The age cutoff is computed from the current date, so the same filter built
// on different days yields a different clause. That is the intended rolling
// window, not a bug.
func BuildQueryParams(f types.FireFilter) url.Values {
	params := url.Values{}
	params.Set("where", "1=1")
	params.Set("outFields", "*")
	params.Set("f", "geojson")

	var conditions []string

	if f.State != "" {
		conditions = append(conditions, fmt.Sprintf("POOState='%s'", strings.ToUpper(f.State)))
	}

	if f.MinAcres > 0 {
		conditions = append(conditions, "DailyAcres >= "+formatAcres(f.MinAcres))
	}

	if f.MaxAgeDays > 0 {
		cutoff := clock.Now().AddDate(0, 0, -f.MaxAgeDays).Format("2006-01-02")
		conditions = append(conditions, fmt.Sprintf("FireDiscoveryDateTime >= '%s'", cutoff))
	}

	if len(conditions) > 0 {
		params.Set("where", strings.Join(conditions, " AND "))
	}

	// The geometry keys travel together: either all three or none.
	if f.Bbox != nil {
		params.Set("geometry", f.Bbox.String())
		params.Set("geometryType", "esriGeometryEnvelope")
		params.Set("spatialRel", "esriSpatialRelIntersects")
	}

	return params
}

// HighPriorityParams builds the query for fires worth ember spotfire
// analysis: big, poorly contained, structures at risk. Unlike
// BuildQueryParams all three conditions are always present, zero thresholds
// included, and results are ordered largest-first on the server. This is its
// own request shape, not a variant of the general builder.
//
// "StructuresThreated" is the upstream field name, typo included.
func HighPriorityParams(f types.FireFilter) url.Values {
	conditions := []string{
		"DailyAcres >= " + formatAcres(f.MinAcres),
		fmt.Sprintf("PercentContained <= %d", f.MaxContainment),
		fmt.Sprintf("StructuresThreated >= %d", f.StructuresThreatened),
	}

	params := url.Values{}
	params.Set("where", strings.Join(conditions, " AND "))
	params.Set("outFields", "*")
	params.Set("f", "geojson")
	params.Set("orderByFields", "DailyAcres DESC")
	return params
}

// formatAcres renders an acreage threshold as a plain decimal. %g would
// switch to scientific notation at 1e6, which the feature service's query
// language does not understand.
func formatAcres(acres float64) string {
	return strconv.FormatFloat(acres, 'f', -1, 64)
}

// RadiusBoundingBox approximates a radius search as a square envelope
// centered on the given point, using the flat milesPerDegree conversion on
// both axes.
func RadiusBoundingBox(latitude, longitude, radiusMiles float64) types.BoundingBox {
	degreeRadius := radiusMiles / milesPerDegree

	return types.BoundingBox{
		Xmin: longitude - degreeRadius,
		Ymin: latitude - degreeRadius,
		Xmax: longitude + degreeRadius,
		Ymax: latitude + degreeRadius,
	}
}
