package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-emberai/types"
	"go-emberai/wfigs"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const upstreamBody = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "properties": {"IRWINID": "F-1", "IncidentName": "Cedar Creek", "DailyAcres": 6000, "PercentContained": 10, "POOState": "WA"}, "geometry": {"type": "Polygon", "coordinates": []}},
		{"type": "Feature", "properties": {"IRWINID": "F-2", "IncidentName": "Broken", "DailyAcres": "lots"}, "geometry": null},
		{"type": "Feature", "properties": {"IRWINID": "F-3", "IncidentName": "Bear Gulch", "DailyAcres": 300, "PercentContained": 70, "POOState": "OR"}, "geometry": {"type": "Polygon", "coordinates": []}}
	]
}`

func routerWithUpstream(t *testing.T, handler http.HandlerFunc) *gin.Engine {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	svc := &wfigs.Service{
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Endpoints: map[types.PerimeterType]string{
			types.Current:    upstream.URL,
			types.YearToDate: upstream.URL,
			types.Certified:  upstream.URL,
			types.Historical: upstream.URL,
		},
	}
	return SetupRouter(svc, nil)
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRootRoute(t *testing.T) {
	r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {})
	w := doRequest(r, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "EmberAI")
}

func TestGetLiveCurrentFires(t *testing.T) {
	t.Run("passes filters through and returns the collection", func(t *testing.T) {
		var gotWhere string
		r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {
			gotWhere = req.URL.Query().Get("where")
			w.Write([]byte(upstreamBody))
		})

		w := doRequest(r, http.MethodGet, "/api/fires/live/current?state=wa&min_acres=100")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "POOState='WA' AND DailyAcres >= 100", gotWhere)

		var fc types.FeatureCollection
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
		assert.Len(t, fc.Features, 3)
	})

	t.Run("upstream failure is a 500 with the message", func(t *testing.T) {
		r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		})

		w := doRequest(r, http.MethodGet, "/api/fires/live/current")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "feature service returned status")
	})

	t.Run("malformed bbox is a 400", func(t *testing.T) {
		r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {})

		w := doRequest(r, http.MethodGet, "/api/fires/live/current?bbox=1,2,3")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetLiveFireIncidents(t *testing.T) {
	r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(upstreamBody))
	})

	w := doRequest(r, http.MethodGet, "/api/fires/live/incidents")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count   int                   `json:"count"`
		Skipped int                   `json:"skipped"`
		Fires   []types.FirePerimeter `json:"fires"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 1, body.Skipped)
	require.Len(t, body.Fires, 2)
	assert.Equal(t, "Cedar Creek", body.Fires[0].IncidentName)
	assert.Equal(t, "Bear Gulch", body.Fires[1].IncidentName)
}

func TestGetLiveHighPriorityFires(t *testing.T) {
	t.Run("absent thresholds fall back to defaults", func(t *testing.T) {
		var gotWhere string
		r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {
			gotWhere = req.URL.Query().Get("where")
			w.Write([]byte(upstreamBody))
		})

		w := doRequest(r, http.MethodGet, "/api/fires/live/high-priority")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "DailyAcres >= 1000 AND PercentContained <= 50 AND StructuresThreated >= 1", gotWhere)
	})

	t.Run("malformed min_acres is a 400", func(t *testing.T) {
		upstreamCalled := false
		r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {
			upstreamCalled = true
		})

		w := doRequest(r, http.MethodGet, "/api/fires/live/high-priority?min_acres=abc")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "min_acres must be a number")
		assert.False(t, upstreamCalled)
	})

	t.Run("malformed max_containment is a 400", func(t *testing.T) {
		r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {})

		w := doRequest(r, http.MethodGet, "/api/fires/live/high-priority?max_containment=half")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "max_containment must be an integer")
	})
}

func TestGetLiveNearbyFires(t *testing.T) {
	t.Run("malformed radius_miles is a 400", func(t *testing.T) {
		r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {})

		w := doRequest(r, http.MethodGet, "/api/fires/live/nearby?latitude=34.05&longitude=-118.24&radius_miles=far")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "radius_miles must be a number")
	})
}

func TestGetEmberDangerZones(t *testing.T) {
	r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Contains(t, req.URL.Query().Get("where"), "PercentContained <= 80")
		w.Write([]byte(upstreamBody))
	})

	w := doRequest(r, http.MethodGet, "/api/ember/danger-zones")
	require.Equal(t, http.StatusOK, w.Code)

	var fc types.FeatureCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	require.Len(t, fc.Features, 3)

	first := fc.Features[0].Properties
	assert.Equal(t, float64(5), first["ember_risk_score"])
	assert.Equal(t, "HIGH", first["ember_risk_level"])
	assert.Equal(t, float64(10), first["danger_zone_radius_miles"])
	assert.NotEmpty(t, first["analysis_timestamp"])
}

func TestGetMultiplePerimeters(t *testing.T) {
	t.Run("unknown dataset name is a 400", func(t *testing.T) {
		r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {})

		w := doRequest(r, http.MethodGet, "/api/fires/multi?types=bogus")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns datasets in the requested order", func(t *testing.T) {
		r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(upstreamBody))
		})

		w := doRequest(r, http.MethodGet, "/api/fires/multi?types=ytd,current")
		require.Equal(t, http.StatusOK, w.Code)

		var results []struct {
			Type  string                  `json:"type"`
			Fires types.FeatureCollection `json:"fires"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
		require.Len(t, results, 2)
		assert.Equal(t, "ytd", results[0].Type)
		assert.Equal(t, "current", results[1].Type)
		assert.Len(t, results[0].Fires.Features, 3)
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(upstreamBody))
		})

		w := doRequest(r, http.MethodGet, "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	})

	t.Run("unreachable upstream is a 503", func(t *testing.T) {
		r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		})

		w := doRequest(r, http.MethodGet, "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
	})
}

func TestGetLiveFireStats(t *testing.T) {
	r := routerWithUpstream(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(upstreamBody))
	})

	w := doRequest(r, http.MethodGet, "/api/fires/live/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, float64(3), stats["total_fires"])
	assert.Equal(t, float64(6300), stats["total_acres"])
	// the malformed record contributes an empty state, which counts as its own bucket
	assert.Equal(t, float64(3), stats["states_affected"])
}
