// Package store persists clustering analyses and monthly usage counters in
// SQLite. The two collections are cluster_analyses and cluster_usage; every
// read and write is scoped by (user_id, company_id).
package store

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/use-this-search/clustering-platform/internal/model"
)

// AnalysisStore is the persistence contract for stored analyses. Records are
// immutable after Create.
type AnalysisStore interface {
	Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error)
	List(ctx context.Context, userID, companyID string, limit, skip int) ([]model.AnalysisSummary, int, error)
	Get(ctx context.Context, id, userID, companyID string) (*model.Analysis, error)
	Delete(ctx context.Context, id, userID, companyID string) error
	ForEach(ctx context.Context, userID, companyID string, fn func(*model.Analysis) error) error
}

// UsageStore is the persistence contract for the monthly usage ledger.
type UsageStore interface {
	CurrentMonth(ctx context.Context, userID, companyID string, now time.Time) (*model.MonthlyUsage, error)
	Record(ctx context.Context, userID, companyID string, keywordCount, clusterCount int, now time.Time) error
	Totals(ctx context.Context, userID, companyID string) (*model.MonthlyUsage, error)
}

// timeLayout keeps fractional seconds fixed-width so the TEXT columns sort
// chronologically. RFC3339Nano trims trailing zeros and would not.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store backs both contracts with one SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at path with WAL mode and initialises the
// schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for better concurrency across request handlers.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS cluster_analyses (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	company_id TEXT NOT NULL,
	total_keywords INTEGER NOT NULL,
	total_clusters INTEGER NOT NULL,
	clusters_json TEXT NOT NULL,
	unclustered_json TEXT NOT NULL,
	gaps_json TEXT NOT NULL,
	pillars_json TEXT NOT NULL,
	processing_time_seconds REAL NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cluster_analyses_owner
	ON cluster_analyses(user_id, company_id, created_at);

CREATE TABLE IF NOT EXISTS cluster_usage (
	user_id TEXT NOT NULL,
	company_id TEXT NOT NULL,
	month_start TEXT NOT NULL,
	analyses_count INTEGER NOT NULL DEFAULT 0,
	keywords_processed INTEGER NOT NULL DEFAULT 0,
	clusters_created INTEGER NOT NULL DEFAULT 0,
	last_analysis_date TEXT NOT NULL,
	PRIMARY KEY(user_id, company_id, month_start)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}
