package handlers

import (
	"log"
	"net/http"
	"path/filepath"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-emberai/archive"
	"go-emberai/db"
	"go-emberai/processor"
	"go-emberai/types"
	"go-emberai/wfigs"
)

const exportDir = "data"

// ExportFireSnapshot fetches current fires, normalizes them, writes a
// timestamped JSON archive file, and persists the batch to Firestore when a
// client is available.
func ExportFireSnapshot(c *gin.Context, fireService *wfigs.Service, firestoreClient *firestore.Client) {
	log.Println("Received request to export fire snapshot...")

	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fc, err := fireService.FetchPerimeters(c.Request.Context(), types.Current, filter)
	if err != nil {
		log.Printf("Error fetching fires for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch fire data",
			"details": err.Error(),
		})
		return
	}

	fires, skipped := processor.ParseFireFeatures(fc)
	if len(fires) == 0 {
		log.Println("No fires found to export.")
		c.JSON(http.StatusOK, gin.H{
			"message": "No fires found to export.",
			"count":   0,
			"skipped": skipped,
		})
		return
	}

	path, err := archive.SaveFireData(fires, exportDir, "")
	if err != nil {
		log.Printf("Error writing fire snapshot file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to write snapshot file",
			"details": err.Error(),
		})
		return
	}

	if firestoreClient != nil {
		if err := db.SaveFireSnapshot(firestoreClient, fires); err != nil {
			log.Printf("Warning: snapshot file written but Firestore save failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Snapshot saved",
		"filename": filepath.Base(path),
		"count":    len(fires),
		"skipped":  skipped,
	})
}
