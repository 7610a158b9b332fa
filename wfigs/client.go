package wfigs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go-emberai/types"
)

const baseURL = "https://services3.arcgis.com/T4QMspbfLg3qTGWY/ArcGIS/rest/services"

const userAgent = "EmberAI-FirePerimeter-Service/1.0"

// Service queries the NIFC/WFIGS feature services. Endpoints and the HTTP
// client are exported so tests can point the service at a local server.
type Service struct {
	HTTPClient *http.Client
	Endpoints  map[types.PerimeterType]string
}

// NewService returns a Service wired to the public WFIGS endpoints.
func NewService() *Service {
	return &Service{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Endpoints: map[types.PerimeterType]string{
			types.Current:    baseURL + "/WFIGS_Interagency_Perimeters_Current/FeatureServer/0/query",
			types.YearToDate: baseURL + "/WFIGS_Interagency_Perimeters_YearToDate/FeatureServer/0/query",
			types.Certified:  baseURL + "/WFIGS_Interagency_Perimeters_Certified/FeatureServer/0/query",
			types.Historical: baseURL + "/InterAgencyFirePerimeterHistory_All_Years_View/FeatureServer/0/query",
		},
	}
}

// FetchPerimeters runs a filtered query against one perimeter dataset.
// Transport and decode failures come back unchanged; there are no retries.
func (s *Service) FetchPerimeters(ctx context.Context, perimeterType types.PerimeterType, filter types.FireFilter) (*types.FeatureCollection, error) {
	endpoint, ok := s.Endpoints[perimeterType]
	if !ok {
		return nil, fmt.Errorf("unknown perimeter type: %s", perimeterType)
	}

	log.Printf("Fetching %s fire perimeters", perimeterType)
	fc, err := s.query(ctx, endpoint, BuildQueryParams(filter))
	if err != nil {
		return nil, err
	}

	log.Printf("Retrieved %d fire perimeters", len(fc.Features))
	return fc, nil
}

// FetchHighPriority fetches fires matching the filter's high-priority
// thresholds from the current perimeter dataset, largest first.
func (s *Service) FetchHighPriority(ctx context.Context, filter types.FireFilter) (*types.FeatureCollection, error) {
	log.Println("Fetching high-priority fires for ember analysis")
	fc, err := s.query(ctx, s.Endpoints[types.Current], HighPriorityParams(filter))
	if err != nil {
		return nil, err
	}

	log.Printf("Retrieved %d high-priority fires", len(fc.Features))
	return fc, nil
}

// FetchByCoordinates fetches fires whose perimeters intersect an approximate
// radius around a point.
func (s *Service) FetchByCoordinates(ctx context.Context, latitude, longitude, radiusMiles float64, perimeterType types.PerimeterType) (*types.FeatureCollection, error) {
	bbox := RadiusBoundingBox(latitude, longitude, radiusMiles)
	return s.FetchPerimeters(ctx, perimeterType, types.FireFilter{Bbox: &bbox})
}

// PerimeterResult pairs one requested dataset with its fetched collection.
type PerimeterResult struct {
	Type  types.PerimeterType      `json:"type"`
	Fires *types.FeatureCollection `json:"fires"`
}

// FetchMultiplePerimeterTypes fetches several perimeter datasets
// concurrently with the same filter. Results come back in the caller's
// requested order regardless of completion order. The policy is
// all-or-nothing: if any branch fails the whole call fails and no partial
// results are returned.
func (s *Service) FetchMultiplePerimeterTypes(ctx context.Context, perimeterTypes []types.PerimeterType, filter types.FireFilter) ([]PerimeterResult, error) {
	collections := make([]*types.FeatureCollection, len(perimeterTypes))
	errs := make([]error, len(perimeterTypes))

	var wg sync.WaitGroup
	for i, perimeterType := range perimeterTypes {
		wg.Add(1)
		go func(idx int, pt types.PerimeterType) {
			defer wg.Done()
			collections[idx], errs[idx] = s.FetchPerimeters(ctx, pt, filter)
		}(i, perimeterType)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("fetching %s perimeters: %w", perimeterTypes[i], err)
		}
	}

	results := make([]PerimeterResult, len(perimeterTypes))
	for i, perimeterType := range perimeterTypes {
		results[i] = PerimeterResult{Type: perimeterType, Fires: collections[i]}
	}
	return results, nil
}

func (s *Service) query(ctx context.Context, endpoint string, params url.Values) (*types.FeatureCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("feature service returned status: " + resp.Status)
	}

	var fc types.FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding feature service response: %w", err)
	}

	return &fc, nil
}
