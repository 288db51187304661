package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/use-this-search/clustering-platform/internal/apperr"
	"github.com/use-this-search/clustering-platform/internal/model"
	"github.com/use-this-search/clustering-platform/pkg/metrics"
)

// Export renders a stored analysis as CSV or JSON, honouring the section
// flags. The analysis must be owned by the caller.
func (s *AnalysisService) Export(ctx context.Context, userID, companyID string, req *model.ExportRequest) (*model.Export, error) {
	if req.Format != model.FormatCSV && req.Format != model.FormatJSON {
		return nil, apperr.Newf(apperr.UnsupportedFormat, "unsupported export format %q", req.Format)
	}

	analysis, err := s.Get(ctx, req.AnalysisID, userID, companyID)
	if err != nil {
		return nil, err
	}

	var export *model.Export
	switch req.Format {
	case model.FormatCSV:
		export, err = exportCSV(analysis, req)
	case model.FormatJSON:
		export, err = exportJSON(analysis, req)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to render export", err)
	}
	metrics.ExportsTotal.WithLabelValues(string(req.Format)).Inc()
	return export, nil
}

func exportCSV(a *model.Analysis, req *model.ExportRequest) (*model.Export, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"Cluster_ID", "Cluster_Name", "Primary_Keyword", "Keywords",
		"Search_Intent", "Buyer_Journey_Stage", "Search_Volume_Total",
		"Difficulty_Average", "Priority_Score",
	}
	if req.IncludeSuggestions {
		header = append(header, "Content_Suggestions")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, c := range a.Clusters {
		row := []string{
			strconv.Itoa(c.ID),
			c.Name,
			c.PrimaryKeyword,
			strings.Join(c.Keywords, "; "),
			string(c.Intent),
			string(c.JourneyStage),
			strconv.Itoa(c.SearchVolumeTotal),
			fmt.Sprintf("%.2f", c.DifficultyAverage),
			fmt.Sprintf("%.2f", c.PriorityScore),
		}
		if req.IncludeSuggestions {
			row = append(row, strings.Join(c.ContentSuggestions, "; "))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	if req.IncludeGaps && len(a.ContentGaps) > 0 {
		w.Write([]string{})
		w.Write([]string{"CONTENT GAPS"})
		w.Write([]string{"Type", "Description", "Recommendation", "Priority"})
		for _, g := range a.ContentGaps {
			if err := w.Write([]string{
				string(g.Kind), g.Description, g.Recommendation, string(g.Priority),
			}); err != nil {
				return nil, err
			}
		}
	}

	if req.IncludeOpportunities && len(a.PillarOpportunities) > 0 {
		w.Write([]string{})
		w.Write([]string{"PILLAR OPPORTUNITIES"})
		w.Write([]string{"Type", "Description", "Priority", "Keywords", "Search_Volume"})
		for _, p := range a.PillarOpportunities {
			if err := w.Write([]string{
				string(p.Kind),
				p.Description,
				string(p.Priority),
				strings.Join(p.SupportingKeywords, "; "),
				strconv.Itoa(p.TotalSearchVolume),
			}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &model.Export{
		Data:        buf.Bytes(),
		ContentType: "text/csv",
		Filename:    fmt.Sprintf("keyword_clusters_%s.csv", a.ID),
	}, nil
}

// jsonExport is the JSON export shape. Clusters always carry their content
// suggestions; the suggestion flag applies to CSV only.
type jsonExport struct {
	AnalysisID          string                     `json:"analysis_id"`
	CreatedAt           string                     `json:"created_at"`
	TotalKeywords       int                        `json:"total_keywords"`
	TotalClusters       int                        `json:"total_clusters"`
	Clusters            []model.Cluster            `json:"clusters"`
	ContentGaps         *[]model.ContentGap        `json:"content_gaps,omitempty"`
	PillarOpportunities *[]model.PillarOpportunity `json:"pillar_opportunities,omitempty"`
}

func exportJSON(a *model.Analysis, req *model.ExportRequest) (*model.Export, error) {
	out := jsonExport{
		AnalysisID:    a.ID,
		CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		TotalKeywords: a.TotalKeywords,
		TotalClusters: a.TotalClusters,
		Clusters:      a.Clusters,
	}
	if req.IncludeGaps {
		gaps := a.ContentGaps
		if gaps == nil {
			gaps = []model.ContentGap{}
		}
		out.ContentGaps = &gaps
	}
	if req.IncludeOpportunities {
		opps := a.PillarOpportunities
		if opps == nil {
			opps = []model.PillarOpportunity{}
		}
		out.PillarOpportunities = &opps
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return &model.Export{
		Data:        data,
		ContentType: "application/json",
		Filename:    fmt.Sprintf("keyword_clusters_%s.json", a.ID),
	}, nil
}
