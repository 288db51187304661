package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/use-this-search/clustering-platform/internal/model"
)

// CurrentMonth returns the caller's usage row for now's calendar month, or a
// zero-valued row when no usage has been recorded yet.
func (s *Store) CurrentMonth(ctx context.Context, userID, companyID string, now time.Time) (*model.MonthlyUsage, error) {
	monthStart := model.MonthStart(now)
	usage := &model.MonthlyUsage{
		UserID:     userID,
		CompanyID:  companyID,
		MonthStart: monthStart,
	}

	var lastAnalysis string
	err := s.db.QueryRowContext(ctx, `
		SELECT analyses_count, keywords_processed, clusters_created, last_analysis_date
		FROM cluster_usage
		WHERE user_id = ? AND company_id = ? AND month_start = ?`,
		userID, companyID, monthStart.Format(time.RFC3339)).
		Scan(&usage.AnalysesCount, &usage.KeywordsProcessed, &usage.ClustersCreated, &lastAnalysis)
	if err == sql.ErrNoRows {
		return usage, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read monthly usage: %w", err)
	}
	usage.LastAnalysisDate, err = time.Parse(time.RFC3339Nano, lastAnalysis)
	if err != nil {
		return nil, fmt.Errorf("parse last_analysis_date: %w", err)
	}
	return usage, nil
}

// Record upserts the caller's row for now's month, incrementing the counters
// in a single atomic statement. Concurrent analyses cannot lose increments.
func (s *Store) Record(ctx context.Context, userID, companyID string, keywordCount, clusterCount int, now time.Time) error {
	monthStart := model.MonthStart(now)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cluster_usage
			(user_id, company_id, month_start, analyses_count, keywords_processed,
			 clusters_created, last_analysis_date)
		VALUES (?, ?, ?, 1, ?, ?, ?)
		ON CONFLICT(user_id, company_id, month_start) DO UPDATE SET
			analyses_count = analyses_count + 1,
			keywords_processed = keywords_processed + excluded.keywords_processed,
			clusters_created = clusters_created + excluded.clusters_created,
			last_analysis_date = excluded.last_analysis_date`,
		userID, companyID, monthStart.Format(time.RFC3339),
		keywordCount, clusterCount, now.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// Totals aggregates the caller's ledger rows across all months.
func (s *Store) Totals(ctx context.Context, userID, companyID string) (*model.MonthlyUsage, error) {
	totals := &model.MonthlyUsage{UserID: userID, CompanyID: companyID}

	var lastAnalysis sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(analyses_count), 0),
		       COALESCE(SUM(keywords_processed), 0),
		       COALESCE(SUM(clusters_created), 0),
		       MAX(last_analysis_date)
		FROM cluster_usage
		WHERE user_id = ? AND company_id = ?`,
		userID, companyID).
		Scan(&totals.AnalysesCount, &totals.KeywordsProcessed, &totals.ClustersCreated, &lastAnalysis)
	if err != nil {
		return nil, fmt.Errorf("aggregate usage: %w", err)
	}
	if lastAnalysis.Valid {
		totals.LastAnalysisDate, err = time.Parse(time.RFC3339Nano, lastAnalysis.String)
		if err != nil {
			return nil, fmt.Errorf("parse last_analysis_date: %w", err)
		}
	}
	return totals, nil
}
