package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/thesavant42/platewatch/internal/models"
)

const (
	seedEpoch = 1635769200000 // 2021-11-01T12:20:00Z
	seedStep  = 86400000      // one day
)

var seedRegions = []string{"Jakarta", "Bandung", "Surabaya", "Medan"}

// seedNamespace keeps generated ids stable across runs
var seedNamespace = uuid.MustParse("6f1d2c1e-7b0a-4f57-9a5e-2f1b8c3d4e5f")

// SeedSightings generates n sample sightings for ownerUID, one day apart
func SeedSightings(ownerUID string, n int) []models.Sighting {
	records := make([]models.Sighting, n)
	for i := range records {
		records[i] = models.Sighting{
			ID:          uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("%s/%d", ownerUID, i))).String(),
			PlateNumber: fmt.Sprintf("B%dXYZ", 1000+i),
			Region:      seedRegions[i%len(seedRegions)],
			Timestamp:   models.Millis(seedEpoch + int64(i)*seedStep),
		}
	}
	return records
}

// Seed provisions a session for uid and fills it with n sample sightings
func Seed(ctx context.Context, store Store, token, uid string, n int) (int, error) {
	if token != "" {
		if err := store.SaveSession(ctx, token, uid); err != nil {
			return 0, err
		}
	}
	return store.InsertSightings(ctx, uid, SeedSightings(uid, n))
}
