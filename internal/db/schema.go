package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migrate brings the schema up to date for the given goose dialect
func migrate(conn *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SQLite statements

const sqliteInsertSighting = `
INSERT INTO sightings (id, owner_uid, plate_number, region, timestamp_ms)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING
`

const sqliteSelectSightings = `
SELECT id, plate_number, region, timestamp_ms
FROM sightings
WHERE owner_uid = ?
ORDER BY timestamp_ms, id
`

const sqliteSelectSighting = `
SELECT id, plate_number, region, timestamp_ms
FROM sightings
WHERE owner_uid = ? AND id = ?
`

const sqliteUpsertSession = `
INSERT INTO sessions (token, uid, created_at_ms)
VALUES (?, ?, ?)
ON CONFLICT (token) DO UPDATE SET uid = excluded.uid
`

const sqliteSelectSession = `SELECT uid FROM sessions WHERE token = ?`

// PostgreSQL statements

const pgInsertSighting = `
INSERT INTO sightings (id, owner_uid, plate_number, region, timestamp_ms)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING
`

const pgSelectSightings = `
SELECT id, plate_number, region, timestamp_ms
FROM sightings
WHERE owner_uid = $1
ORDER BY timestamp_ms, id
`

const pgSelectSighting = `
SELECT id, plate_number, region, timestamp_ms
FROM sightings
WHERE owner_uid = $1 AND id = $2
`

const pgUpsertSession = `
INSERT INTO sessions (token, uid, created_at_ms)
VALUES ($1, $2, $3)
ON CONFLICT (token) DO UPDATE SET uid = EXCLUDED.uid
`

const pgSelectSession = `SELECT uid FROM sessions WHERE token = $1`
