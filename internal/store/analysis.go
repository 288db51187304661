package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/use-this-search/clustering-platform/internal/apperr"
	"github.com/use-this-search/clustering-platform/internal/model"
)

// Create inserts a new analysis owned by (user_id, company_id), assigning a
// server-generated id. A generated-id collision is retried internally once.
func (s *Store) Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error) {
	clusters, err := json.Marshal(a.Clusters)
	if err != nil {
		return nil, fmt.Errorf("marshal clusters: %w", err)
	}
	unclustered, err := json.Marshal(emptyIfNil(a.UnclusteredKeywords))
	if err != nil {
		return nil, fmt.Errorf("marshal unclustered: %w", err)
	}
	gaps, err := json.Marshal(a.ContentGaps)
	if err != nil {
		return nil, fmt.Errorf("marshal gaps: %w", err)
	}
	pillars, err := json.Marshal(a.PillarOpportunities)
	if err != nil {
		return nil, fmt.Errorf("marshal pillars: %w", err)
	}

	stored := *a
	for attempt := 0; attempt < 2; attempt++ {
		stored.ID = uuid.Must(uuid.NewV7()).String()
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO cluster_analyses
				(id, user_id, company_id, total_keywords, total_clusters,
				 clusters_json, unclustered_json, gaps_json, pillars_json,
				 processing_time_seconds, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			stored.ID, stored.UserID, stored.CompanyID,
			stored.TotalKeywords, stored.TotalClusters,
			string(clusters), string(unclustered), string(gaps), string(pillars),
			stored.ProcessingTimeSeconds, stored.CreatedAt.UTC().Format(timeLayout),
		)
		if err == nil {
			return &stored, nil
		}
		if !isUniqueViolation(err) {
			return nil, fmt.Errorf("insert analysis: %w", err)
		}
	}
	return nil, fmt.Errorf("insert analysis: id collision persisted after retry: %w", err)
}

// List returns summaries owned by the pair, newest first, paged by skip/limit.
func (s *Store) List(ctx context.Context, userID, companyID string, limit, skip int) ([]model.AnalysisSummary, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM cluster_analyses WHERE user_id = ? AND company_id = ?`,
		userID, companyID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count analyses: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, total_keywords, total_clusters, processing_time_seconds, created_at
		FROM cluster_analyses
		WHERE user_id = ? AND company_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`,
		userID, companyID, limit, skip)
	if err != nil {
		return nil, 0, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	summaries := make([]model.AnalysisSummary, 0, limit)
	for rows.Next() {
		var sum model.AnalysisSummary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.TotalKeywords, &sum.TotalClusters,
			&sum.ProcessingTimeSeconds, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("scan analysis summary: %w", err)
		}
		sum.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, 0, fmt.Errorf("parse created_at: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, total, rows.Err()
}

// Get returns the full analysis only if owned by the pair. Cross-tenant reads
// surface NotFound so existence never leaks.
func (s *Store) Get(ctx context.Context, id, userID, companyID string) (*model.Analysis, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, company_id, total_keywords, total_clusters,
		       clusters_json, unclustered_json, gaps_json, pillars_json,
		       processing_time_seconds, created_at
		FROM cluster_analyses
		WHERE id = ? AND user_id = ? AND company_id = ?`,
		id, userID, companyID)
	return scanAnalysis(row)
}

// Delete removes the analysis if owned by the pair. Idempotent past first
// success: a repeat delete surfaces NotFound.
func (s *Store) Delete(ctx context.Context, id, userID, companyID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM cluster_analyses WHERE id = ? AND user_id = ? AND company_id = ?`,
		id, userID, companyID)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if n == 0 {
		return apperr.New(apperr.NotFound, "analysis not found")
	}
	return nil
}

// ForEach streams every analysis owned by the pair through fn, oldest first.
func (s *Store) ForEach(ctx context.Context, userID, companyID string, fn func(*model.Analysis) error) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, company_id, total_keywords, total_clusters,
		       clusters_json, unclustered_json, gaps_json, pillars_json,
		       processing_time_seconds, created_at
		FROM cluster_analyses
		WHERE user_id = ? AND company_id = ?
		ORDER BY created_at ASC`,
		userID, companyID)
	if err != nil {
		return fmt.Errorf("iterate analyses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return err
		}
		if err := fn(a); err != nil {
			return err
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*model.Analysis, error) {
	var a model.Analysis
	var clusters, unclustered, gaps, pillars, createdAt string
	err := row.Scan(&a.ID, &a.UserID, &a.CompanyID, &a.TotalKeywords, &a.TotalClusters,
		&clusters, &unclustered, &gaps, &pillars, &a.ProcessingTimeSeconds, &createdAt)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "analysis not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan analysis: %w", err)
	}
	if err := json.Unmarshal([]byte(clusters), &a.Clusters); err != nil {
		return nil, fmt.Errorf("unmarshal clusters: %w", err)
	}
	if err := json.Unmarshal([]byte(unclustered), &a.UnclusteredKeywords); err != nil {
		return nil, fmt.Errorf("unmarshal unclustered: %w", err)
	}
	if err := json.Unmarshal([]byte(gaps), &a.ContentGaps); err != nil {
		return nil, fmt.Errorf("unmarshal gaps: %w", err)
	}
	if err := json.Unmarshal([]byte(pillars), &a.PillarOpportunities); err != nil {
		return nil, fmt.Errorf("unmarshal pillars: %w", err)
	}
	a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &a, nil
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
