package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/thesavant42/platewatch/internal/models"
)

// Postgres is a Store backed by a pgx connection pool
type Postgres struct {
	Pool *pgxpool.Pool
}

// ConnectPostgres opens a pool, checks connectivity and migrates the schema
func ConnectPostgres(ctx context.Context, url string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	cfg.MaxConns = 10
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	// goose migrates through database/sql
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()
	if err := migrate(sqlDB, "postgres"); err != nil {
		pool.Close()
		return nil, err
	}

	return &Postgres{Pool: pool}, nil
}

// Close closes the pool
func (p *Postgres) Close() error {
	p.Pool.Close()
	return nil
}

// InsertSightings inserts sightings owned by ownerUID, skipping existing ids
func (p *Postgres) InsertSightings(ctx context.Context, ownerUID string, records []models.Sighting) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(pgInsertSighting, r.ID, ownerUID, r.PlateNumber, r.Region, int64(r.Timestamp))
	}

	results := p.Pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for _, r := range records {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert sighting %s: %w", r.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// ListSightings returns every sighting owned by ownerUID, oldest first
func (p *Postgres) ListSightings(ctx context.Context, ownerUID string) ([]models.Sighting, error) {
	rows, err := p.Pool.Query(ctx, pgSelectSightings, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sightings: %w", err)
	}

	records, err := pgx.CollectRows(rows, scanSighting)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sightings: %w", err)
	}
	if records == nil {
		records = []models.Sighting{}
	}
	return records, nil
}

// GetSighting returns one sighting owned by ownerUID
func (p *Postgres) GetSighting(ctx context.Context, ownerUID, id string) (models.Sighting, error) {
	rows, err := p.Pool.Query(ctx, pgSelectSighting, ownerUID, id)
	if err != nil {
		return models.Sighting{}, fmt.Errorf("failed to query sighting: %w", err)
	}

	r, err := pgx.CollectExactlyOneRow(rows, scanSighting)
	if errors.Is(err, pgx.ErrNoRows) {
		return r, ErrNotFound
	}
	return r, err
}

// SaveSession maps a session token to a user id
func (p *Postgres) SaveSession(ctx context.Context, token, uid string) error {
	if _, err := p.Pool.Exec(ctx, pgUpsertSession, token, uid, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LookupSession returns the user id behind a session token
func (p *Postgres) LookupSession(ctx context.Context, token string) (string, error) {
	var uid string
	err := p.Pool.QueryRow(ctx, pgSelectSession, token).Scan(&uid)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session: %w", err)
	}
	return uid, nil
}

func scanSighting(row pgx.CollectableRow) (models.Sighting, error) {
	var r models.Sighting
	var ts int64
	err := row.Scan(&r.ID, &r.PlateNumber, &r.Region, &ts)
	r.Timestamp = models.Millis(ts)
	return r, err
}
