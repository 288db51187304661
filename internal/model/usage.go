package model

import (
	"time"
)

// MonthlyUsage is the per-tenant usage counter row for one calendar month.
// Uniqueness key: (user_id, company_id, month_start).
type MonthlyUsage struct {
	UserID            string    `json:"user_id"`
	CompanyID         string    `json:"company_id"`
	MonthStart        time.Time `json:"month_start"`
	AnalysesCount     int       `json:"analyses_count"`
	KeywordsProcessed int       `json:"keywords_processed"`
	ClustersCreated   int       `json:"clusters_created"`
	LastAnalysisDate  time.Time `json:"last_analysis_date"`
}

// MonthStart returns the first instant of t's calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonthStart returns the first instant of the month after t's, in UTC.
// This is the quota reset instant reported to callers.
func NextMonthStart(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// UsageLimits reports a caller's plan limits and current consumption.
type UsageLimits struct {
	PlanTag                  string    `json:"plan_tag"`
	MonthlyAnalysesLimit     int       `json:"monthly_analyses_limit"`
	KeywordsPerAnalysisLimit int       `json:"keywords_per_analysis_limit"`
	AnalysesUsedThisMonth    int       `json:"analyses_used_this_month"`
	ResetDate                time.Time `json:"reset_date"`
}

// UsageStats aggregates a caller's clustering activity across all time.
type UsageStats struct {
	TotalAnalyses              int          `json:"total_analyses"`
	TotalKeywordsClustered     int          `json:"total_keywords_clustered"`
	TotalClustersCreated       int          `json:"total_clusters_created"`
	AverageClustersPerAnalysis float64      `json:"average_clusters_per_analysis"`
	MostCommonIntent           SearchIntent `json:"most_common_intent"`
	MostCommonStage            JourneyStage `json:"most_common_stage"`
	LastAnalysisDate           *time.Time   `json:"last_analysis_date,omitempty"`
}
