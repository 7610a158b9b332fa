package db

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"

	"go-emberai/types"
)

const (
	firesCollection     = "fires"
	snapshotsCollection = "snapshots"
)

// SaveFireSnapshot saves a batch of normalized fires to the 'fires'
// collection using BulkWriter for efficient non-transactional writes, keyed
// by incident ID, then records a snapshot metadata document with the
// timestamp and count. Snapshots are write-only; nothing in the service
// reads them back.
func SaveFireSnapshot(client *firestore.Client, fires []types.FirePerimeter) error {
	if len(fires) == 0 {
		log.Println("No fires to save.")
		return nil
	}

	ctx := context.Background()
	bw := client.BulkWriter(ctx)
	firesCollectionRef := client.Collection(firesCollection)

	log.Printf("Preparing to save %d fires using BulkWriter to collection '%s'...", len(fires), firesCollection)

	savedCount := 0
	for i := range fires {
		fire := fires[i]

		if fire.IncidentID == "" {
			log.Printf("Warning: Skipping fire with empty incident ID: %s", fire.IncidentName)
			continue // Cannot save without an ID
		}
		docRef := firesCollectionRef.Doc(fire.IncidentID)

		_, err := bw.Set(docRef, fire)
		if err != nil {
			log.Printf("Error enqueueing fire %s for save: %v", fire.IncidentID, err)
		} else {
			savedCount++
		}
	}

	if savedCount == 0 {
		log.Println("No valid fires were enqueued for saving.")
		return nil
	}

	// NOTE: Flush sends any remaining writes and waits for them to complete.
	// It should be called before the BulkWriter goes out of scope.
	log.Printf("Flushing BulkWriter for %d enqueued fire saves...", savedCount)
	bw.Flush()

	stamp := time.Now().UTC()
	snapshot := map[string]interface{}{
		"timestamp": stamp.Format(time.RFC3339),
		"count":     savedCount,
	}
	_, err := client.Collection(snapshotsCollection).Doc(stamp.Format("20060102_150405")).Set(ctx, snapshot)
	if err != nil {
		log.Printf("Error writing snapshot metadata: %v", err)
		return err
	}

	log.Printf("Saved snapshot of %d fires.", savedCount)
	return nil
}
