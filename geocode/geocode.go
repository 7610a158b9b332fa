package geocode

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"googlemaps.github.io/maps"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
)

// InitMapsClient initializes and returns a singleton Google Maps client.
func InitMapsClient() (*maps.Client, error) {
	var err error
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			err = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey))
		if err != nil {
			log.Fatalf("Failed to create maps client: %v", err)
		}
	})
	return mapsClient, err
}

// LocatePlace forward-geocodes an address or place name and returns its
// coordinates and formatted address. The near-address fire lookup uses this
// to turn a place name into a radius search center.
func LocatePlace(address string) (lat, lng float64, formatted string, err error) {
	client, err := InitMapsClient()
	if err != nil {
		return 0, 0, "", err
	}

	req := &maps.GeocodingRequest{
		Address: address,
	}

	results, err := client.Geocode(context.Background(), req)
	if err != nil {
		return 0, 0, "", err
	}
	if len(results) == 0 {
		return 0, 0, "", fmt.Errorf("no geocode results for %q", address)
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, results[0].FormattedAddress, nil
}
