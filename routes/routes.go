package routes

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-emberai/handlers"
	"go-emberai/wfigs"
)

func SetupRouter(fireService *wfigs.Service, firestoreClient *firestore.Client) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "EmberAI Wildfire Detection API running!",
			"version": "1.0.0",
		})
	})

	r.GET("/health", func(c *gin.Context) {
		handlers.HealthCheck(c, fireService)
	})

	// api routes
	live := r.Group("/api/fires/live")
	{
		live.GET("/current", func(c *gin.Context) {
			handlers.GetLiveCurrentFires(c, fireService)
		})
		live.GET("/incidents", func(c *gin.Context) {
			handlers.GetLiveFireIncidents(c, fireService)
		})
		live.GET("/high-priority", func(c *gin.Context) {
			handlers.GetLiveHighPriorityFires(c, fireService)
		})
		live.GET("/nearby", func(c *gin.Context) {
			handlers.GetLiveNearbyFires(c, fireService)
		})
		live.GET("/near-address", func(c *gin.Context) {
			handlers.GetFiresNearAddress(c, fireService)
		})
		live.GET("/stats", func(c *gin.Context) {
			handlers.GetLiveFireStats(c, fireService)
		})
	}

	historical := r.Group("/api/fires/historical")
	{
		historical.GET("/perimeters", func(c *gin.Context) {
			handlers.GetHistoricalFirePerimeters(c, fireService)
		})
		historical.GET("/year-to-date", func(c *gin.Context) {
			handlers.GetYearToDateFires(c, fireService)
		})
		historical.GET("/certified", func(c *gin.Context) {
			handlers.GetCertifiedFirePerimeters(c, fireService)
		})
	}

	r.GET("/api/fires/multi", func(c *gin.Context) {
		handlers.GetMultiplePerimeters(c, fireService)
	})

	r.POST("/api/fires/snapshot", func(c *gin.Context) {
		handlers.ExportFireSnapshot(c, fireService, firestoreClient)
	})

	ember := r.Group("/api/ember")
	{
		ember.GET("/danger-zones", func(c *gin.Context) {
			handlers.GetEmberDangerZones(c, fireService)
		})
		ember.GET("/report", func(c *gin.Context) {
			handlers.GetEmberReport(c, fireService)
		})
	}

	return r
}
