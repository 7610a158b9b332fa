package cronjobs

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/robfig/cron/v3"

	"go-emberai/archive"
	"go-emberai/db"
	"go-emberai/processor"
	"go-emberai/types"
	"go-emberai/wfigs"
)

const snapshotDir = "data"

// refreshSnapshot fetches current perimeters, normalizes them, and persists
// the batch to disk and Firestore.
func refreshSnapshot(fireService *wfigs.Service, firestoreClient *firestore.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fc, err := fireService.FetchPerimeters(ctx, types.Current, types.FireFilter{})
	if err != nil {
		log.Printf("Error fetching fires for snapshot: %v", err)
		return
	}

	fires, skipped := processor.ParseFireFeatures(fc)
	if skipped > 0 {
		log.Printf("Snapshot normalization skipped %d malformed records", skipped)
	}
	if len(fires) == 0 {
		log.Println("Snapshot refresh found no fires.")
		return
	}

	if _, err := archive.SaveFireData(fires, snapshotDir, ""); err != nil {
		log.Printf("Error writing snapshot file: %v", err)
	}

	if firestoreClient != nil {
		if err := db.SaveFireSnapshot(firestoreClient, fires); err != nil {
			log.Printf("Error saving snapshot to Firestore: %v", err)
		}
	}
}

func InitCronJobs(fireService *wfigs.Service, firestoreClient *firestore.Client) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Fire snapshot: run every 30 minutes
	_, err := c.AddFunc("*/30 * * * *", func() {
		log.Println("\nCronJob: Fire Snapshot Running")
		refreshSnapshot(fireService, firestoreClient)
	})
	if err != nil {
		log.Println("Error scheduling Fire Snapshot", err)
	}

	c.Start()
}
