package digest

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hjpark/nukewire/news"
)

// ErrDigestNotFound is returned when no digest is stored for the requested
// date.
var ErrDigestNotFound = errors.New("digest not found")

// schemaVersion is written with every stored digest so future readers can
// tell old payloads apart.
const schemaVersion = 1

// StoredDigest is one persisted digest record. The collection phase writes
// it; the delivery phase (or a later re-send) reads it back without touching
// the snapshot files.
type StoredDigest struct {
	Version   int         `json:"schema_version"`
	RunID     uuid.UUID   `json:"run_id"`
	CreatedAt time.Time   `json:"created_at"`
	Digest    news.Digest `json:"digest"`
}

// Store persists digests in SQLite, one row per target date.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the digest database at the given path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the digests table if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS digests (
		date TEXT PRIMARY KEY,
		schema_version INTEGER NOT NULL,
		run_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		payload TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the digest under its target date and returns the run ID the
// row was written with. Re-running a day replaces that day's digest.
func (s *Store) Save(d news.Digest) (uuid.UUID, error) {
	runID := uuid.New()

	payload, err := json.Marshal(d)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal digest: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO digests (date, schema_version, run_id, created_at, payload)
		VALUES (?, ?, ?, ?, ?)
	`
	now := time.Now().Truncate(0).Format(time.RFC3339Nano)
	if _, err := s.db.Exec(query, d.TargetDate, schemaVersion, runID.String(), now, string(payload)); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert digest: %w", err)
	}

	return runID, nil
}

// Load retrieves the stored digest for a date (rendered YYYY.MM.DD).
func (s *Store) Load(date string) (*StoredDigest, error) {
	query := `
		SELECT schema_version, run_id, created_at, payload
		FROM digests
		WHERE date = ?
	`

	var version int
	var runIDStr, createdAtStr, payload string
	err := s.db.QueryRow(query, date).Scan(&version, &runIDStr, &createdAtStr, &payload)
	if err == sql.ErrNoRows {
		return nil, ErrDigestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query digest: %w", err)
	}

	runID, err := uuid.Parse(runIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run ID: %w", err)
	}

	stored := &StoredDigest{
		Version:   version,
		RunID:     runID,
		CreatedAt: parseTime(createdAtStr),
	}
	if err := json.Unmarshal([]byte(payload), &stored.Digest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal digest: %w", err)
	}

	return stored, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339, s)
	}
	return t.Truncate(0)
}
