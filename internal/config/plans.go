package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlanLimits describes what one subscription plan may do with the clustering
// engine. Plans absent from the table are ineligible.
type PlanLimits struct {
	Eligible                 bool `yaml:"eligible"`
	MonthlyAnalysesLimit     int  `yaml:"monthly_analyses_limit"`
	KeywordsPerAnalysisLimit int  `yaml:"keywords_per_analysis_limit"`
}

// PlanTable maps a plan tag to its clustering limits.
type PlanTable map[string]PlanLimits

// Lookup resolves a plan tag. Unknown tags come back ineligible.
func (t PlanTable) Lookup(tag string) (PlanLimits, bool) {
	limits, ok := t[tag]
	if !ok || !limits.Eligible {
		return PlanLimits{}, false
	}
	return limits, true
}

// DefaultPlans returns the compiled-in plan table. Clustering is an
// annual-subscription feature; monthly and trial tags are absent and
// therefore ineligible.
func DefaultPlans() PlanTable {
	return PlanTable{
		"starter_annual": {
			Eligible:                 true,
			MonthlyAnalysesLimit:     25,
			KeywordsPerAnalysisLimit: 100,
		},
		"professional_annual": {
			Eligible:                 true,
			MonthlyAnalysesLimit:     100,
			KeywordsPerAnalysisLimit: 500,
		},
		"enterprise_annual": {
			Eligible:                 true,
			MonthlyAnalysesLimit:     500,
			KeywordsPerAnalysisLimit: 2000,
		},
	}
}

// LoadPlans returns the plan table, overridden by the YAML file at path when
// path is non-empty. The file replaces the whole table.
func LoadPlans(path string) (PlanTable, error) {
	if path == "" {
		return DefaultPlans(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plans file: %w", err)
	}
	var table PlanTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse plans file: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("plans file %s defines no plans", path)
	}
	return table, nil
}
