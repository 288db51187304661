package clusterer

import (
	"fmt"

	"github.com/use-this-search/clustering-platform/internal/model"
)

const (
	intentGapThreshold  = 20.0
	intentGapHighCutoff = 10.0
	stageGapThreshold   = 25.0
	stageGapHighCutoff  = 15.0

	pillarMinPriority = 70.0
	pillarMinKeywords = 5
	hubMinClusters    = 3
)

// deriveGaps flags intent buckets covering less than 20% of clusters and
// journey stages covering less than 25%, in fixed bucket order.
func deriveGaps(clusters []model.Cluster) []model.ContentGap {
	total := len(clusters)
	if total == 0 {
		return nil
	}

	var gaps []model.ContentGap
	for _, intent := range model.Intents {
		count := 0
		for _, c := range clusters {
			if c.Intent == intent {
				count++
			}
		}
		pct := 100 * float64(count) / float64(total)
		if pct >= intentGapThreshold {
			continue
		}
		priority := model.PriorityMedium
		if pct < intentGapHighCutoff {
			priority = model.PriorityHigh
		}
		gaps = append(gaps, model.ContentGap{
			Kind:           model.GapIntent,
			Bucket:         string(intent),
			Description:    fmt.Sprintf("Only %.1f%% of keyword clusters target %s intent", pct, intent),
			Recommendation: fmt.Sprintf("Create more content targeting %s search intent to balance your keyword portfolio", intent),
			Priority:       priority,
		})
	}

	for _, stage := range model.Stages {
		count := 0
		for _, c := range clusters {
			if c.JourneyStage == stage {
				count++
			}
		}
		pct := 100 * float64(count) / float64(total)
		if pct >= stageGapThreshold {
			continue
		}
		priority := model.PriorityMedium
		if pct < stageGapHighCutoff {
			priority = model.PriorityHigh
		}
		gaps = append(gaps, model.ContentGap{
			Kind:           model.GapJourney,
			Bucket:         string(stage),
			Description:    fmt.Sprintf("Only %.1f%% of keyword clusters address the %s stage of the buyer journey", pct, stage),
			Recommendation: fmt.Sprintf("Develop content for the %s stage to cover the full buyer journey", stage),
			Priority:       priority,
		})
	}
	return gaps
}

// derivePillars emits pillar-page opportunities for strong clusters and
// topic-hub opportunities for intents shared by at least three clusters.
// Emission order follows derivation order; there is no further sort.
func derivePillars(clusters []model.Cluster) []model.PillarOpportunity {
	var opps []model.PillarOpportunity
	for _, c := range clusters {
		if c.PriorityScore <= pillarMinPriority || len(c.Keywords) < pillarMinKeywords {
			continue
		}
		opps = append(opps, model.PillarOpportunity{
			Kind:               model.OpportunityPillarPage,
			ClusterName:        c.Name,
			Description:        fmt.Sprintf("Build a pillar page around %q covering %d related keywords", c.Name, len(c.Keywords)),
			SupportingKeywords: c.Keywords,
			TotalSearchVolume:  c.SearchVolumeTotal,
			ContentSuggestions: c.ContentSuggestions,
			Priority:           model.PriorityHigh,
		})
	}

	for _, intent := range model.Intents {
		var members []model.Cluster
		for _, c := range clusters {
			if c.Intent == intent {
				members = append(members, c)
			}
		}
		if len(members) < hubMinClusters {
			continue
		}
		var keywords []string
		var volume int
		for _, c := range members {
			keywords = append(keywords, c.Keywords...)
			volume += c.SearchVolumeTotal
		}
		opps = append(opps, model.PillarOpportunity{
			Kind:               model.OpportunityTopicHub,
			IntentBucket:       intent,
			Description:        fmt.Sprintf("Create a topic hub for %s content spanning %d clusters and %d keywords", intent, len(members), len(keywords)),
			SupportingKeywords: keywords,
			TotalSearchVolume:  volume,
			Priority:           model.PriorityMedium,
		})
	}
	return opps
}
