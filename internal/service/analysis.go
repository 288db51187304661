// Package service provides business logic for the keyword clustering
// platform: the access guard, the analysis orchestration, exports, and
// usage reporting.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/use-this-search/clustering-platform/internal/apperr"
	"github.com/use-this-search/clustering-platform/internal/clusterer"
	"github.com/use-this-search/clustering-platform/internal/config"
	"github.com/use-this-search/clustering-platform/internal/model"
	"github.com/use-this-search/clustering-platform/internal/store"
	"github.com/use-this-search/clustering-platform/pkg/logger"
	"github.com/use-this-search/clustering-platform/pkg/metrics"
)

// PlanResolver resolves the caller's active plan tag. An empty tag means the
// caller has no active subscription. Supplied at composition time so the
// clustering service never depends on an authentication module directly.
type PlanResolver interface {
	ResolvePlan(ctx context.Context, userID, companyID string) (string, error)
}

// PlanResolverFunc adapts a function to the PlanResolver interface.
type PlanResolverFunc func(ctx context.Context, userID, companyID string) (string, error)

func (f PlanResolverFunc) ResolvePlan(ctx context.Context, userID, companyID string) (string, error) {
	return f(ctx, userID, companyID)
}

// EventPublisher publishes analysis lifecycle events for downstream
// consumers. Publish failures are logged, never surfaced.
type EventPublisher interface {
	AnalysisCompleted(ctx context.Context, a *model.Analysis) error
	AnalysisDeleted(ctx context.Context, userID, companyID, analysisID string) error
}

// AnalysisService orchestrates clustering runs and stored-analysis flows.
type AnalysisService struct {
	engine       *clusterer.Engine
	analyses     store.AnalysisStore
	usage        store.UsageStore
	plans        config.PlanTable
	resolver     PlanResolver
	publisher    EventPublisher
	logger       *logger.Logger
	storeTimeout time.Duration
	now          func() time.Time
}

// NewAnalysisService creates the analysis service. publisher may be nil when
// no event stream is configured.
func NewAnalysisService(
	engine *clusterer.Engine,
	analyses store.AnalysisStore,
	usage store.UsageStore,
	plans config.PlanTable,
	resolver PlanResolver,
	publisher EventPublisher,
	storeTimeout time.Duration,
	log *logger.Logger,
) *AnalysisService {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &AnalysisService{
		engine:       engine,
		analyses:     analyses,
		usage:        usage,
		plans:        plans,
		resolver:     resolver,
		publisher:    publisher,
		logger:       log,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

// Analyze serves a clustering request end-to-end: guard, compute, persist,
// ledger. The ledger increment happens after persistence and survives caller
// cancellation; its failure is logged, never surfaced.
func (s *AnalysisService) Analyze(ctx context.Context, userID, companyID string, req *model.AnalyzeRequest) (*model.Analysis, error) {
	decision, err := s.CheckAndReserve(ctx, userID, companyID, len(req.Keywords))
	if err != nil {
		metrics.GuardRejections.WithLabelValues(string(apperr.KindOf(err))).Inc()
		return nil, err
	}

	start := s.now()
	result := s.engine.Run(clusterer.Input{
		Keywords:      req.Keywords,
		SearchVolumes: req.SearchVolumes,
		Difficulties:  req.Difficulties,
		MaxClusters:   req.MaxClusters,
	})
	elapsed := s.now().Sub(start)

	analysis := &model.Analysis{
		UserID:                userID,
		CompanyID:             companyID,
		TotalKeywords:         len(result.Keywords),
		TotalClusters:         len(result.Clusters),
		Clusters:              result.Clusters,
		UnclusteredKeywords:   result.UnclusteredKeywords,
		ContentGaps:           result.ContentGaps,
		PillarOpportunities:   result.PillarOpportunities,
		ProcessingTimeSeconds: elapsed.Seconds(),
		CreatedAt:             s.now().UTC(),
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	stored, err := s.analyses.Create(storeCtx, analysis)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to store analysis", err)
	}

	// The analysis is durable from here on: the ledger increment and event
	// publish must not be aborted by a caller disconnect.
	tailCtx, cancelTail := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancelTail()

	if err := s.usage.Record(tailCtx, userID, companyID, stored.TotalKeywords, stored.TotalClusters, s.now()); err != nil {
		s.logger.Warn("usage ledger increment lost",
			zap.String("analysis_id", stored.ID),
			zap.String("user_id", userID),
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}

	if s.publisher != nil {
		if err := s.publisher.AnalysisCompleted(tailCtx, stored); err != nil {
			s.logger.Warn("analysis event publish failed",
				zap.String("analysis_id", stored.ID),
				zap.Error(err),
			)
		}
	}

	metrics.RecordAnalysis(decision.PlanTag, stored.TotalKeywords, stored.TotalClusters, elapsed.Seconds())
	s.logger.Info("analysis completed",
		zap.String("analysis_id", stored.ID),
		zap.String("user_id", userID),
		zap.String("company_id", companyID),
		zap.Int("total_keywords", stored.TotalKeywords),
		zap.Int("total_clusters", stored.TotalClusters),
		zap.Duration("processing_time", elapsed),
	)
	return stored, nil
}

// List returns stored-analysis summaries for the caller, newest first.
func (s *AnalysisService) List(ctx context.Context, userID, companyID string, limit, skip int) (*model.ListAnalysesResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	summaries, total, err := s.analyses.List(storeCtx, userID, companyID, limit, skip)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list analyses", err)
	}
	return &model.ListAnalysesResponse{
		Analyses: summaries,
		Total:    total,
		HasMore:  skip+len(summaries) < total,
	}, nil
}

// Get returns a stored analysis owned by the caller.
func (s *AnalysisService) Get(ctx context.Context, id, userID, companyID string) (*model.Analysis, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.analyses.Get(storeCtx, id, userID, companyID)
}

// Delete removes a stored analysis owned by the caller.
func (s *AnalysisService) Delete(ctx context.Context, id, userID, companyID string) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.analyses.Delete(storeCtx, id, userID, companyID); err != nil {
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.AnalysisDeleted(storeCtx, userID, companyID, id); err != nil {
			s.logger.Warn("analysis event publish failed",
				zap.String("analysis_id", id),
				zap.Error(err),
			)
		}
	}
	return nil
}

// UsageLimits reports the caller's plan limits and current-month consumption.
func (s *AnalysisService) UsageLimits(ctx context.Context, userID, companyID string) (*model.UsageLimits, error) {
	planTag, limits, err := s.resolveEligiblePlan(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	usage, err := s.usage.CurrentMonth(storeCtx, userID, companyID, now)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to read usage", err)
	}

	return &model.UsageLimits{
		PlanTag:                  planTag,
		MonthlyAnalysesLimit:     limits.MonthlyAnalysesLimit,
		KeywordsPerAnalysisLimit: limits.KeywordsPerAnalysisLimit,
		AnalysesUsedThisMonth:    usage.AnalysesCount,
		ResetDate:                model.NextMonthStart(now),
	}, nil
}

// Stats aggregates the caller's clustering activity from the ledger and the
// stored analyses.
func (s *AnalysisService) Stats(ctx context.Context, userID, companyID string) (*model.UsageStats, error) {
	if _, _, err := s.resolveEligiblePlan(ctx, userID, companyID); err != nil {
		return nil, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	totals, err := s.usage.Totals(storeCtx, userID, companyID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to aggregate usage", err)
	}

	intentCounts := make(map[model.SearchIntent]int)
	stageCounts := make(map[model.JourneyStage]int)
	err = s.analyses.ForEach(storeCtx, userID, companyID, func(a *model.Analysis) error {
		for _, c := range a.Clusters {
			intentCounts[c.Intent]++
			stageCounts[c.JourneyStage]++
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to scan analyses", err)
	}

	stats := &model.UsageStats{
		TotalAnalyses:          totals.AnalysesCount,
		TotalKeywordsClustered: totals.KeywordsProcessed,
		TotalClustersCreated:   totals.ClustersCreated,
		MostCommonIntent:       mostCommonIntent(intentCounts),
		MostCommonStage:        mostCommonStage(stageCounts),
	}
	if totals.AnalysesCount > 0 {
		stats.AverageClustersPerAnalysis = float64(totals.ClustersCreated) / float64(totals.AnalysesCount)
	}
	if !totals.LastAnalysisDate.IsZero() {
		last := totals.LastAnalysisDate
		stats.LastAnalysisDate = &last
	}
	return stats, nil
}

func mostCommonIntent(counts map[model.SearchIntent]int) model.SearchIntent {
	best := model.IntentInformational
	bestCount := 0
	for _, intent := range model.Intents {
		if counts[intent] > bestCount {
			best = intent
			bestCount = counts[intent]
		}
	}
	return best
}

func mostCommonStage(counts map[model.JourneyStage]int) model.JourneyStage {
	best := model.StageAwareness
	bestCount := 0
	for _, stage := range model.Stages {
		if counts[stage] > bestCount {
			best = stage
			bestCount = counts[stage]
		}
	}
	return best
}
