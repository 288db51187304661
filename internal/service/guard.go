package service

import (
	"context"
	"time"

	"github.com/use-this-search/clustering-platform/internal/apperr"
	"github.com/use-this-search/clustering-platform/internal/config"
	"github.com/use-this-search/clustering-platform/internal/model"
)

// Decision is the access guard's verdict for an eligible request.
type Decision struct {
	PlanTag   string
	Limits    config.PlanLimits
	Used      int
	ResetDate time.Time
}

// CheckAndReserve verifies the caller may run a clustering analysis of
// keywordCount keywords: active eligible plan, per-analysis keyword bounds,
// and remaining monthly quota. It does not pre-increment the ledger; the
// slot is charged only after the analysis completes, so failed analyses do
// not consume quota.
func (s *AnalysisService) CheckAndReserve(ctx context.Context, userID, companyID string, keywordCount int) (*Decision, error) {
	planTag, limits, err := s.resolveEligiblePlan(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	if keywordCount > limits.KeywordsPerAnalysisLimit {
		return nil, apperr.Newf(apperr.TooManyKeywords,
			"your plan allows at most %d keywords per analysis", limits.KeywordsPerAnalysisLimit).
			WithDetails(map[string]any{
				"keywords_per_analysis_limit": limits.KeywordsPerAnalysisLimit,
			})
	}
	if keywordCount < model.MinKeywordsPerAnalysis {
		return nil, apperr.Newf(apperr.TooFewKeywords,
			"at least %d keywords are required", model.MinKeywordsPerAnalysis)
	}

	now := s.now()
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	usage, err := s.usage.CurrentMonth(storeCtx, userID, companyID, now)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to read monthly usage", err)
	}

	reset := model.NextMonthStart(now)
	if usage.AnalysesCount >= limits.MonthlyAnalysesLimit {
		return nil, apperr.Newf(apperr.QuotaExhausted,
			"monthly limit of %d analyses reached", limits.MonthlyAnalysesLimit).
			WithDetails(map[string]any{
				"monthly_analyses_limit": limits.MonthlyAnalysesLimit,
				"reset_date":             reset.Format(time.RFC3339),
			})
	}

	return &Decision{
		PlanTag:   planTag,
		Limits:    limits,
		Used:      usage.AnalysesCount,
		ResetDate: reset,
	}, nil
}

// resolveEligiblePlan resolves the caller's plan tag and checks it against
// the plan table. Missing subscriptions and unknown tags are both ineligible.
func (s *AnalysisService) resolveEligiblePlan(ctx context.Context, userID, companyID string) (string, config.PlanLimits, error) {
	resolveCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	planTag, err := s.resolver.ResolvePlan(resolveCtx, userID, companyID)
	if err != nil {
		return "", config.PlanLimits{}, apperr.Wrap(apperr.Internal, "failed to resolve subscription plan", err)
	}
	if planTag == "" {
		return "", config.PlanLimits{}, apperr.New(apperr.NotEligible, "an active subscription is required for keyword clustering")
	}
	limits, ok := s.plans.Lookup(planTag)
	if !ok {
		return "", config.PlanLimits{}, apperr.New(apperr.NotEligible, "keyword clustering requires an annual subscription").
			WithDetails(map[string]any{"plan_tag": planTag})
	}
	return planTag, limits, nil
}
