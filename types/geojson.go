package types

import "encoding/json"

// FeatureCollection represents the root structure of a feature service response.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one record from the feature service: a free-form attribute bag
// plus the perimeter geometry, which we pass through untouched.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}
