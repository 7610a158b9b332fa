package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-emberai/geocode"
	"go-emberai/processor"
	"go-emberai/types"
	"go-emberai/wfigs"
)

// GetLiveCurrentFires returns current fire perimeters with optional state,
// min_acres, max_age_days and bbox filtering.
func GetLiveCurrentFires(c *gin.Context, fireService *wfigs.Service) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fires, err := fireService.FetchPerimeters(c.Request.Context(), types.Current, filter)
	if err != nil {
		log.Printf("Error fetching live current fires: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, fires)
}

// GetLiveFireIncidents returns current fires normalized into typed incidents
// along with the count of records skipped during normalization.
func GetLiveFireIncidents(c *gin.Context, fireService *wfigs.Service) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fc, err := fireService.FetchPerimeters(c.Request.Context(), types.Current, filter)
	if err != nil {
		log.Printf("Error fetching fire incidents: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fires, skipped := processor.ParseFireFeatures(fc)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(fires),
		"skipped": skipped,
		"fires":   fires,
	})
}

// GetLiveHighPriorityFires returns fires matching the ember analysis
// thresholds, largest first.
func GetLiveHighPriorityFires(c *gin.Context, fireService *wfigs.Service) {
	minAcres, err := floatQuery(c, "min_acres", 1000)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	maxContainment, err := intQuery(c, "max_containment", 50)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	structuresThreatened, err := intQuery(c, "structures_threatened", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := types.FireFilter{
		MinAcres:             minAcres,
		MaxContainment:       maxContainment,
		StructuresThreatened: structuresThreatened,
	}

	fires, err := fireService.FetchHighPriority(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Error fetching live high-priority fires: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, fires)
}

// GetLiveNearbyFires returns fires within a radius of the given coordinates.
func GetLiveNearbyFires(c *gin.Context, fireService *wfigs.Service) {
	latitude, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
	longitude, errLon := strconv.ParseFloat(c.Query("longitude"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required decimal degrees"})
		return
	}
	radiusMiles, err := floatQuery(c, "radius_miles", 50)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fires, err := fireService.FetchByCoordinates(c.Request.Context(), latitude, longitude, radiusMiles, types.Current)
	if err != nil {
		log.Printf("Error fetching live nearby fires: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, fires)
}

// GetFiresNearAddress geocodes a place name and returns fires within a
// radius of it.
func GetFiresNearAddress(c *gin.Context, fireService *wfigs.Service) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}
	radiusMiles, err := floatQuery(c, "radius_miles", 50)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lat, lng, formatted, err := geocode.LocatePlace(address)
	if err != nil {
		log.Printf("Error geocoding %q: %v", address, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fires, err := fireService.FetchByCoordinates(c.Request.Context(), lat, lng, radiusMiles, types.Current)
	if err != nil {
		log.Printf("Error fetching fires near %q: %v", address, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":      formatted,
		"latitude":     lat,
		"longitude":    lng,
		"radius_miles": radiusMiles,
		"fires":        fires,
	})
}

// GetLiveFireStats returns summary statistics for current fire activity.
func GetLiveFireStats(c *gin.Context, fireService *wfigs.Service) {
	fires, err := fireService.FetchPerimeters(c.Request.Context(), types.Current, types.FireFilter{})
	if err != nil {
		log.Printf("Error calculating live fire statistics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, processor.ComputeFireStats(fires))
}

// GetHistoricalFirePerimeters returns perimeters from the all-years history
// dataset.
func GetHistoricalFirePerimeters(c *gin.Context, fireService *wfigs.Service) {
	fetchFiltered(c, fireService, types.Historical, 1000)
}

// GetYearToDateFires returns perimeters from the year-to-date dataset.
func GetYearToDateFires(c *gin.Context, fireService *wfigs.Service) {
	fetchFiltered(c, fireService, types.YearToDate, 500)
}

// GetCertifiedFirePerimeters returns perimeters from the certified dataset.
func GetCertifiedFirePerimeters(c *gin.Context, fireService *wfigs.Service) {
	fetchFiltered(c, fireService, types.Certified, 1000)
}

// GetMultiplePerimeters fetches several perimeter datasets concurrently with
// one shared filter, e.g. ?types=current,ytd. A single failing dataset fails
// the whole request.
func GetMultiplePerimeters(c *gin.Context, fireService *wfigs.Service) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	perimeterTypes, err := parsePerimeterTypes(c.DefaultQuery("types", string(types.Current)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := fireService.FetchMultiplePerimeterTypes(c.Request.Context(), perimeterTypes, filter)
	if err != nil {
		log.Printf("Error fetching multiple perimeter datasets: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}

// GetEmberDangerZones returns fires posing ember spotfire danger, each
// annotated with its risk assessment.
func GetEmberDangerZones(c *gin.Context, fireService *wfigs.Service) {
	minAcres, err := floatQuery(c, "min_acres", 500)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Large enough and less than 80% contained, any structure count.
	filter := types.FireFilter{
		MinAcres:       minAcres,
		MaxContainment: 80,
	}

	fires, err := fireService.FetchHighPriority(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Error generating ember danger zones: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	processor.AnnotateDangerZones(fires)
	c.JSON(http.StatusOK, fires)
}

// HealthCheck probes the feature service and reports connectivity.
func HealthCheck(c *gin.Context, fireService *wfigs.Service) {
	fires, err := fireService.FetchPerimeters(c.Request.Context(), types.Current, types.FireFilter{})
	if err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":           "unhealthy",
			"api_connectivity": "failed",
			"error":            err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             "healthy",
		"api_connectivity":   "ok",
		"fire_service":       "operational",
		"active_fires_count": len(fires.Features),
	})
}

func fetchFiltered(c *gin.Context, fireService *wfigs.Service, perimeterType types.PerimeterType, defaultMinAcres float64) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.MinAcres == 0 {
		filter.MinAcres = defaultMinAcres
	}

	fires, err := fireService.FetchPerimeters(c.Request.Context(), perimeterType, filter)
	if err != nil {
		log.Printf("Error fetching %s fires: %v", perimeterType, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, fires)
}

// filterFromQuery reads the shared filter query parameters. Malformed
// numbers and bounding boxes are a 400, not silently ignored.
func filterFromQuery(c *gin.Context) (types.FireFilter, error) {
	filter := types.FireFilter{State: c.Query("state")}

	if raw := c.Query("min_acres"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, fmt.Errorf("min_acres must be a number")
		}
		filter.MinAcres = v
	}

	if raw := c.Query("max_age_days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("max_age_days must be an integer")
		}
		filter.MaxAgeDays = v
	}

	if raw := c.Query("bbox"); raw != "" {
		bbox, err := parseBbox(raw)
		if err != nil {
			return filter, err
		}
		filter.Bbox = bbox
	}

	return filter, nil
}

func parseBbox(raw string) (*types.BoundingBox, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox must be 'xmin,ymin,xmax,ymax'")
	}

	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bbox must be 'xmin,ymin,xmax,ymax'")
		}
		vals[i] = v
	}

	return &types.BoundingBox{Xmin: vals[0], Ymin: vals[1], Xmax: vals[2], Ymax: vals[3]}, nil
}

func parsePerimeterTypes(raw string) ([]types.PerimeterType, error) {
	var perimeterTypes []types.PerimeterType
	for _, part := range strings.Split(raw, ",") {
		pt := types.PerimeterType(strings.TrimSpace(part))
		switch pt {
		case types.Current, types.YearToDate, types.Certified, types.Historical:
			perimeterTypes = append(perimeterTypes, pt)
		default:
			return nil, fmt.Errorf("unknown perimeter type: %s", pt)
		}
	}
	return perimeterTypes, nil
}

// intQuery and floatQuery read an optional numeric query parameter. Absent
// means the fallback; present but malformed is an error, matching
// filterFromQuery's 400 policy.
func intQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

func floatQuery(c *gin.Context, key string, fallback float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}
