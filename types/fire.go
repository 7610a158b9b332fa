package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// PerimeterType selects which WFIGS perimeter dataset a query runs against.
type PerimeterType string

const (
	Current    PerimeterType = "current"
	YearToDate PerimeterType = "ytd"
	Certified  PerimeterType = "certified"
	Historical PerimeterType = "historical"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// FireFilter holds the optional filters for a perimeter query. Zero values
// mean "not set": empty state, 0 acres, 0 days and a nil bounding box all
// drop out of the generated where clause. MaxContainment and
// StructuresThreatened only apply to the high-priority query path.
type FireFilter struct {
	State                string
	MinAcres             float64
	MaxAgeDays           int
	Bbox                 *BoundingBox
	MaxContainment       int
	StructuresThreatened int
}

// BoundingBox is a WGS84 envelope. Callers guarantee min <= max on both axes.
type BoundingBox struct {
	Xmin float64 `json:"xmin" firestore:"xmin"`
	Ymin float64 `json:"ymin" firestore:"ymin"`
	Xmax float64 `json:"xmax" firestore:"xmax"`
	Ymax float64 `json:"ymax" firestore:"ymax"`
}

// String renders the envelope in the "xmin,ymin,xmax,ymax" form the ArcGIS
// geometry parameter expects.
func (b BoundingBox) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.Xmin, b.Ymin, b.Xmax, b.Ymax)
}

// FirePerimeter is a normalized fire incident parsed from a WFIGS feature.
// Values are immutable once built by the processor.
type FirePerimeter struct {
	IncidentID   string          `json:"incident_id" firestore:"incidentId"`
	IncidentName string          `json:"incident_name" firestore:"incidentName"`
	Geometry     json.RawMessage `json:"geometry" firestore:"-"` // perimeter polygons are too large for snapshot docs
	Acres        float64         `json:"acres" firestore:"acres"`
	Containment  int             `json:"containment_percent" firestore:"containmentPercent"`
	Discovered   *time.Time      `json:"discovery_date" firestore:"discoveryDate"`
	State        string          `json:"state" firestore:"state"`
	County       string          `json:"county" firestore:"county"`
	Cause        string          `json:"fire_cause" firestore:"fireCause"`
	Behavior     string          `json:"fire_behavior" firestore:"fireBehavior"`
	POILatitude  float64         `json:"poi_latitude" firestore:"poiLatitude"`
	POILongitude float64         `json:"poi_longitude" firestore:"poiLongitude"`
	Suppression  string          `json:"suppression_method" firestore:"suppressionMethod"`
	InitialAcres float64         `json:"initial_response_acres" firestore:"initialResponseAcres"`
	Personnel    int             `json:"total_personnel" firestore:"totalPersonnel"`
	Threatened   int             `json:"structures_threatened" firestore:"structuresThreatened"`
	Destroyed    int             `json:"structures_destroyed" firestore:"structuresDestroyed"`
	Complexity   string          `json:"fire_management_complexity" firestore:"fireManagementComplexity"`
	CostToDate   float64         `json:"estimated_cost" firestore:"estimatedCost"`
	Origin       string          `json:"fire_origin" firestore:"fireOrigin"`
	Weather      string          `json:"weather_concerns" firestore:"weatherConcerns"`
	FuelModel    string          `json:"fuel_model" firestore:"fuelModel"`
	DangerRating string          `json:"fire_danger_rating" firestore:"fireDangerRating"`
}

// RiskAssessment is the derived ember spotfire classification for one fire.
type RiskAssessment struct {
	Score       int       `json:"ember_risk_score" firestore:"emberRiskScore"`
	Level       RiskLevel `json:"ember_risk_level" firestore:"emberRiskLevel"`
	RadiusMiles int       `json:"danger_zone_radius_miles" firestore:"dangerZoneRadiusMiles"`
}
