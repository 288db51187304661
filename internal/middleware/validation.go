package middleware

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/use-this-search/clustering-platform/internal/model"
)

// ValidateAnalyzeRequest validates the shape of a clustering request before
// it reaches the service. Plan-dependent limits are the access guard's job.
func ValidateAnalyzeRequest(req *model.AnalyzeRequest) error {
	if len(req.Keywords) == 0 {
		return errors.New("keywords cannot be empty")
	}
	for i, kw := range req.Keywords {
		if err := validateKeyword(kw); err != nil {
			return fmt.Errorf("keyword %d: %w", i+1, err)
		}
	}
	if req.MaxClusters != 0 &&
		(req.MaxClusters < model.MinKeywordsPerAnalysis || req.MaxClusters > model.HardMaxClusters) {
		return fmt.Errorf("max_clusters must be between %d and %d",
			model.MinKeywordsPerAnalysis, model.HardMaxClusters)
	}
	for i, v := range req.SearchVolumes {
		if v < 0 {
			return fmt.Errorf("search_volumes[%d] must be non-negative", i)
		}
	}
	for i, d := range req.Difficulties {
		if d < 0 || d > 100 {
			return fmt.Errorf("difficulties[%d] must be between 0 and 100", i)
		}
	}
	return nil
}

func validateKeyword(kw string) error {
	trimmed := strings.TrimSpace(kw)
	if trimmed == "" {
		return errors.New("keyword cannot be empty")
	}
	if len(trimmed) > model.MaxKeywordLength {
		return fmt.Errorf("keyword exceeds %d characters", model.MaxKeywordLength)
	}
	if !utf8.ValidString(kw) {
		return errors.New("keyword must be valid UTF-8")
	}
	return nil
}

// ValidateAnalysisID validates an analysis ID.
func ValidateAnalysisID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid analysis ID format")
	}
	return nil
}
