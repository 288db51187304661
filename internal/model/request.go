package model

const (
	// MinKeywordsPerAnalysis is the floor on keywords per clustering run.
	MinKeywordsPerAnalysis = 2
	// MaxKeywordLength caps a single keyword after trimming.
	MaxKeywordLength = 120
	// DefaultMaxClusters is used when a request omits max_clusters.
	DefaultMaxClusters = 15
	// HardMaxClusters is the schema ceiling on max_clusters.
	HardMaxClusters = 25
)

// AnalyzeRequest is the request to run a clustering analysis.
// SearchVolumes and Difficulties are parallel to Keywords; missing positions
// take defaults downstream.
type AnalyzeRequest struct {
	Keywords      []string  `json:"keywords"`
	SearchVolumes []int     `json:"search_volumes,omitempty"`
	Difficulties  []float64 `json:"difficulties,omitempty"`
	MaxClusters   int       `json:"max_clusters,omitempty"`
}

// ExportFormat selects the export rendering.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ExportRequest is the request to export a stored analysis.
type ExportRequest struct {
	AnalysisID           string       `json:"analysis_id"`
	Format               ExportFormat `json:"format"`
	IncludeSuggestions   bool         `json:"include_suggestions"`
	IncludeGaps          bool         `json:"include_gaps"`
	IncludeOpportunities bool         `json:"include_opportunities"`
}

// Export is a rendered export ready to stream to the caller.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}
