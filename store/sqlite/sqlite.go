/*
Package sqlite provides SQLite-backed storage for the API service layer.

PURPOSE:
  Persists the service-level collaborators around the pure computation
  engine: the registry of uploaded company agreements (JSON configs) and
  a history of computations the service has answered. The engine itself
  is persistence-free; this store exists so that the API can register
  agreements without redeploys and export past estimates.

KEY TABLES:
  agreements: Uploaded agreement configs, keyed by agreement ID
  estimates:  History of served computations (request + result JSON)

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

USAGE:
  store, err := sqlite.New("./data/pay.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool with versioned migrations.

SEE ALSO:
  - api/handlers.go: The only consumer
  - factory/agreement.go: Parses the stored agreement JSON
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store persists agreements and estimate history.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Uploaded company agreements (JSON configs, see factory package)
	CREATE TABLE IF NOT EXISTS agreements (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- History of served computations, for export and audit
	CREATE TABLE IF NOT EXISTS estimates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,              -- compensation, floor, arrears
		request_json TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_estimates_kind_created
		ON estimates(kind, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// AGREEMENTS
// =============================================================================

// AgreementRecord is one stored agreement config.
type AgreementRecord struct {
	ID         string
	Name       string
	ConfigJSON string
	CreatedAt  time.Time
}

// SaveAgreement inserts or replaces an agreement config.
func (s *Store) SaveAgreement(ctx context.Context, rec AgreementRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO agreements (id, name, config_json, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			config_json = excluded.config_json`,
		rec.ID, rec.Name, rec.ConfigJSON, rec.CreatedAt.Format(time.RFC3339))
	return err
}

// GetAgreement fetches one agreement by ID.
func (s *Store) GetAgreement(ctx context.Context, id string) (AgreementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec AgreementRecord
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, config_json, created_at FROM agreements WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Name, &rec.ConfigJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, err
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return rec, nil
}

// ListAgreements returns all stored agreements ordered by ID.
func (s *Store) ListAgreements(ctx context.Context) ([]AgreementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, config_json, created_at FROM agreements ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AgreementRecord
	for rows.Next() {
		var rec AgreementRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.ConfigJSON, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteAgreement removes one agreement. Missing IDs are not an error.
func (s *Store) DeleteAgreement(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM agreements WHERE id = ?`, id)
	return err
}

// =============================================================================
// ESTIMATE HISTORY
// =============================================================================

// EstimateRecord is one served computation.
type EstimateRecord struct {
	ID          int64
	Kind        string // compensation, floor, arrears
	RequestJSON string
	ResultJSON  string
	CreatedAt   time.Time
}

// AppendEstimate records a served computation.
func (s *Store) AppendEstimate(ctx context.Context, rec EstimateRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO estimates (kind, request_json, result_json, created_at)
		VALUES (?, ?, ?, ?)`,
		rec.Kind, rec.RequestJSON, rec.ResultJSON, rec.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListEstimates returns the most recent estimates of a kind (all kinds
// when kind is empty), newest first.
func (s *Store) ListEstimates(ctx context.Context, kind string, limit int) ([]EstimateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, kind, request_json, result_json, created_at FROM estimates`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EstimateRecord
	for rows.Next() {
		var rec EstimateRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.RequestJSON, &rec.ResultJSON, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Reset drops all rows. Dev/demo only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM agreements; DELETE FROM estimates;`)
	return err
}
