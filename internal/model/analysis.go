// Package model defines data structures for the keyword clustering platform.
package model

import (
	"time"
)

// SearchIntent classifies what a searcher wants from a keyword group.
type SearchIntent string

const (
	IntentInformational SearchIntent = "informational"
	IntentCommercial    SearchIntent = "commercial"
	IntentTransactional SearchIntent = "transactional"
	IntentNavigational  SearchIntent = "navigational"
)

// Intents lists all intents in classification tie-break order.
var Intents = []SearchIntent{
	IntentInformational,
	IntentCommercial,
	IntentTransactional,
	IntentNavigational,
}

// JourneyStage classifies where a keyword group sits in the buyer journey.
type JourneyStage string

const (
	StageAwareness     JourneyStage = "awareness"
	StageConsideration JourneyStage = "consideration"
	StageDecision      JourneyStage = "decision"
)

// Stages lists all journey stages in classification tie-break order.
var Stages = []JourneyStage{
	StageAwareness,
	StageConsideration,
	StageDecision,
}

// Cluster is one labelled keyword group within an analysis.
type Cluster struct {
	ID                 int          `json:"id"`
	Name               string       `json:"name"`
	PrimaryKeyword     string       `json:"primary_keyword"`
	Keywords           []string     `json:"keywords"`
	Intent             SearchIntent `json:"intent"`
	JourneyStage       JourneyStage `json:"journey_stage"`
	TopicTheme         string       `json:"topic_theme"`
	SearchVolumeTotal  int          `json:"search_volume_total"`
	DifficultyAverage  float64      `json:"difficulty_average"`
	ContentSuggestions []string     `json:"content_suggestions"`
	PriorityScore      float64      `json:"priority_score"`
}

// GapKind tags the variant of a content gap.
type GapKind string

const (
	GapIntent  GapKind = "intent_gap"
	GapJourney GapKind = "journey_gap"
)

// Priority grades gaps and opportunities.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ContentGap flags an intent or journey-stage bucket with under-coverage.
type ContentGap struct {
	Kind           GapKind  `json:"kind"`
	Bucket         string   `json:"bucket"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
	Priority       Priority `json:"priority"`
}

// OpportunityKind tags the variant of a pillar opportunity.
type OpportunityKind string

const (
	OpportunityPillarPage OpportunityKind = "pillar_page"
	OpportunityTopicHub   OpportunityKind = "topic_hub"
)

// PillarOpportunity recommends a pillar page for a strong cluster or a topic
// hub spanning several clusters with a shared intent.
type PillarOpportunity struct {
	Kind               OpportunityKind `json:"kind"`
	ClusterName        string          `json:"cluster_name,omitempty"`
	IntentBucket       SearchIntent    `json:"intent_bucket,omitempty"`
	Description        string          `json:"description"`
	SupportingKeywords []string        `json:"supporting_keywords"`
	TotalSearchVolume  int             `json:"total_search_volume"`
	ContentSuggestions []string        `json:"content_suggestions,omitempty"`
	Priority           Priority        `json:"priority"`
}

// Analysis is a persisted clustering result. Immutable after creation.
type Analysis struct {
	ID                    string              `json:"id"`
	UserID                string              `json:"user_id"`
	CompanyID             string              `json:"company_id"`
	TotalKeywords         int                 `json:"total_keywords"`
	TotalClusters         int                 `json:"total_clusters"`
	Clusters              []Cluster           `json:"clusters"`
	UnclusteredKeywords   []string            `json:"unclustered_keywords"`
	ContentGaps           []ContentGap        `json:"content_gaps"`
	PillarOpportunities   []PillarOpportunity `json:"pillar_opportunities"`
	ProcessingTimeSeconds float64             `json:"processing_time_seconds"`
	CreatedAt             time.Time           `json:"created_at"`
}

// AnalysisSummary is the list-view projection of an analysis.
type AnalysisSummary struct {
	ID                    string    `json:"id"`
	TotalKeywords         int       `json:"total_keywords"`
	TotalClusters         int       `json:"total_clusters"`
	ProcessingTimeSeconds float64   `json:"processing_time_seconds"`
	CreatedAt             time.Time `json:"created_at"`
}

// ListAnalysesResponse is the response for listing stored analyses.
type ListAnalysesResponse struct {
	Analyses []AnalysisSummary `json:"analyses"`
	Total    int               `json:"total"`
	HasMore  bool              `json:"has_more"`
}
