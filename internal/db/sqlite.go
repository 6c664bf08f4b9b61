package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thesavant42/platewatch/internal/models"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and migrates the schema
func New(dbPath string) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer
	conn.SetMaxOpenConns(1)

	if err := migrate(conn, "sqlite3"); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// InsertSightings inserts sightings owned by ownerUID.
// Existing ids are skipped; the number of new rows is returned.
func (db *DB) InsertSightings(ctx context.Context, ownerUID string, records []models.Sighting) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, sqliteInsertSighting)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range records {
		result, err := stmt.ExecContext(ctx, r.ID, ownerUID, r.PlateNumber, r.Region, int64(r.Timestamp))
		if err != nil {
			return 0, fmt.Errorf("failed to insert sighting %s: %w", r.ID, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// ListSightings returns every sighting owned by ownerUID, oldest first
func (db *DB) ListSightings(ctx context.Context, ownerUID string) ([]models.Sighting, error) {
	rows, err := db.conn.QueryContext(ctx, sqliteSelectSightings, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sightings: %w", err)
	}
	defer rows.Close()

	records := []models.Sighting{}
	for rows.Next() {
		var r models.Sighting
		var ts int64
		if err := rows.Scan(&r.ID, &r.PlateNumber, &r.Region, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan sighting: %w", err)
		}
		r.Timestamp = models.Millis(ts)
		records = append(records, r)
	}

	return records, rows.Err()
}

// GetSighting returns one sighting owned by ownerUID
func (db *DB) GetSighting(ctx context.Context, ownerUID, id string) (models.Sighting, error) {
	var r models.Sighting
	var ts int64
	err := db.conn.QueryRowContext(ctx, sqliteSelectSighting, ownerUID, id).Scan(&r.ID, &r.PlateNumber, &r.Region, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return r, ErrNotFound
	}
	if err != nil {
		return r, fmt.Errorf("failed to query sighting: %w", err)
	}
	r.Timestamp = models.Millis(ts)
	return r, nil
}

// SaveSession maps a session token to a user id
func (db *DB) SaveSession(ctx context.Context, token, uid string) error {
	if _, err := db.conn.ExecContext(ctx, sqliteUpsertSession, token, uid, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LookupSession returns the user id behind a session token
func (db *DB) LookupSession(ctx context.Context, token string) (string, error) {
	var uid string
	err := db.conn.QueryRowContext(ctx, sqliteSelectSession, token).Scan(&uid)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session: %w", err)
	}
	return uid, nil
}
