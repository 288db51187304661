package clusterer

import (
	"sort"

	"github.com/use-this-search/clustering-platform/internal/model"
)

// Engine runs the clustering pipeline. It is a value constructed once at
// start-up; its stop-word set and lemmatizer are injected dependencies.
type Engine struct {
	stopwords  *Stopwords
	lemmatizer *Lemmatizer
}

// NewEngine creates an engine with the default stop-word set and lemmatizer.
func NewEngine() *Engine {
	return &Engine{
		stopwords:  DefaultStopwords(),
		lemmatizer: NewLemmatizer(),
	}
}

// Input is a validated clustering request: raw keywords with optional
// parallel metrics and a cluster-count cap.
type Input struct {
	Keywords      []string
	SearchVolumes []int
	Difficulties  []float64
	MaxClusters   int
}

// Result is the computed, unpersisted outcome of a clustering run.
type Result struct {
	Keywords            []string
	Clusters            []model.Cluster
	UnclusteredKeywords []string
	ContentGaps         []model.ContentGap
	PillarOpportunities []model.PillarOpportunity
}

// Run executes the full pipeline: normalise, vectorize, select k, partition,
// label, derive insights. Deterministic for a given input; input order only
// affects the ordering of clusters with equal priority.
func (e *Engine) Run(in Input) Result {
	keywords := Normalize(in.Keywords)
	metrics := newKeywordMetrics(keywords, in.SearchVolumes, in.Difficulties)

	maxClusters := in.MaxClusters
	if maxClusters <= 0 {
		maxClusters = model.DefaultMaxClusters
	}

	labels := e.assign(keywords, maxClusters)

	groups := make(map[int][]string)
	order := make([]int, 0)
	for i, kw := range keywords {
		if _, seen := groups[labels[i]]; !seen {
			order = append(order, labels[i])
		}
		groups[labels[i]] = append(groups[labels[i]], kw)
	}
	sort.Ints(order)

	clusters := make([]model.Cluster, 0, len(order))
	for i, label := range order {
		clusters = append(clusters, labelCluster(i+1, groups[label], metrics, e.stopwords))
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].PriorityScore != clusters[j].PriorityScore {
			return clusters[i].PriorityScore > clusters[j].PriorityScore
		}
		return clusters[i].Name < clusters[j].Name
	})
	for i := range clusters {
		clusters[i].ID = i + 1
	}

	return Result{
		Keywords:            keywords,
		Clusters:            clusters,
		UnclusteredKeywords: []string{},
		ContentGaps:         deriveGaps(clusters),
		PillarOpportunities: derivePillars(clusters),
	}
}

// assign produces a group label per keyword. Fewer than three keywords
// short-circuit to a single group; this path is not an error.
func (e *Engine) assign(keywords []string, maxClusters int) []int {
	if len(keywords) < 3 {
		return make([]int, len(keywords))
	}

	docs := make([]string, len(keywords))
	for i, kw := range keywords {
		docs[i] = expandText(kw, e.stopwords, e.lemmatizer)
	}
	vec := &vectorizer{stopwords: e.stopwords}
	matrix, vocab := vec.fitTransform(docs)
	if len(vocab) == 0 {
		return make([]int, len(keywords))
	}

	k := selectK(matrix, maxClusters)
	if k <= 1 {
		return make([]int, len(keywords))
	}
	labels, _ := partition(matrix, k)
	return labels
}
