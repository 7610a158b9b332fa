package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"go-emberai/cronjobs"
	"go-emberai/db"
	"go-emberai/routes"
	"go-emberai/wfigs"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Print and check env
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey != "" {
		fmt.Println("OPENAI_API_KEY loaded")
	}

	// Init firestore
	firestoreClient, err := db.InitFirestore()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	fireService := wfigs.NewService()

	// Initialize cron jobs
	cronjobs.InitCronJobs(fireService, firestoreClient)

	r := routes.SetupRouter(fireService, firestoreClient)
	if err := r.Run(":8080"); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
