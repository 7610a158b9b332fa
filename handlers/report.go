package handlers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-emberai/processor"
	"go-emberai/summarization"
	"go-emberai/types"
	"go-emberai/wfigs"
)

// GetEmberReport fetches high-priority fires, normalizes them, and returns
// an AI-written situation report.
func GetEmberReport(c *gin.Context, fireService *wfigs.Service) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY environment variable not set.")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "situation reports are not configured"})
		return
	}

	minAcres, err := floatQuery(c, "min_acres", 1000)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := types.FireFilter{
		MinAcres:       minAcres,
		MaxContainment: 80,
	}

	fc, err := fireService.FetchHighPriority(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Error fetching fires for situation report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fires, skipped := processor.ParseFireFeatures(fc)
	if len(fires) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message": "No fires met the report criteria",
			"skipped": skipped,
		})
		return
	}

	openaiClient := openai.NewClient(apiKey)
	ctxReport, cancelReport := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelReport()

	report, err := summarization.GenerateSituationReport(ctxReport, fires, openaiClient)
	if err != nil {
		log.Printf("Error generating situation report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":     report,
		"fire_count": len(fires),
		"skipped":    skipped,
	})
}
