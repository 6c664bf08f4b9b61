package db

import (
	"context"
	"errors"
	"strings"

	"github.com/thesavant42/platewatch/internal/models"
)

// ErrNotFound is returned when a sighting or session does not exist
var ErrNotFound = errors.New("not found")

// Store is the persistence used by the development backend
type Store interface {
	ListSightings(ctx context.Context, ownerUID string) ([]models.Sighting, error)
	GetSighting(ctx context.Context, ownerUID, id string) (models.Sighting, error)
	InsertSightings(ctx context.Context, ownerUID string, records []models.Sighting) (int, error)
	SaveSession(ctx context.Context, token, uid string) error
	LookupSession(ctx context.Context, token string) (string, error)
	Close() error
}

// Open selects the store implementation from the database URL.
// postgres:// URLs use PostgreSQL, anything else is a SQLite file path.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return ConnectPostgres(ctx, databaseURL)
	}
	return New(databaseURL)
}
