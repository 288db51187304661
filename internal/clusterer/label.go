package clusterer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/use-this-search/clustering-platform/internal/model"
)

// Substring pattern sets for intent and journey-stage classification. These
// are part of the public contract of the engine.
var intentPatterns = map[model.SearchIntent][]string{
	model.IntentInformational: {
		"what is", "how to", "why", "when", "where", "guide", "tutorial",
		"learn", "understand", "explain", "definition", "meaning", "help",
		"tips", "advice", "examples", "benefits", "advantages", "disadvantages",
	},
	model.IntentCommercial: {
		"best", "top", "review", "compare", "comparison", "vs", "versus",
		"alternative", "option", "choice", "recommend", "rating", "ranking",
		"solution", "tool", "software", "service", "provider", "company",
	},
	model.IntentTransactional: {
		"buy", "purchase", "price", "cost", "cheap", "discount", "deal",
		"coupon", "sale", "order", "shop", "store", "online", "download",
		"free trial", "signup", "subscribe", "get started", "pricing",
	},
	model.IntentNavigational: {
		"login", "sign in", "dashboard", "account", "profile", "settings",
		"contact", "support", "official", "website", "homepage",
	},
}

var journeyPatterns = map[model.JourneyStage][]string{
	model.StageAwareness: {
		"what is", "how to", "why", "benefits", "importance", "guide",
		"introduction", "basics", "beginner", "start", "learn", "understand",
	},
	model.StageConsideration: {
		"best", "top", "compare", "comparison", "vs", "versus", "alternative",
		"option", "features", "pros and cons", "review", "evaluation",
	},
	model.StageDecision: {
		"price", "pricing", "cost", "buy", "purchase", "trial", "demo",
		"discount", "coupon", "plan", "subscription", "get started",
	},
}

var suggestionTemplates = map[model.SearchIntent][]string{
	model.IntentInformational: {
		"Complete Guide to %s",
		"What You Need to Know About %s",
		"%s 101: Beginner's Guide",
	},
	model.IntentCommercial: {
		"Best %s Tools & Software",
		"Top %s Solutions Compared",
		"%s Review & Comparison",
	},
	model.IntentTransactional: {
		"%s Pricing & Plans",
		"Get Started with %s",
		"%s Free Trial & Demo",
	},
	model.IntentNavigational: {
		"%s Content Hub",
		"Learn About %s",
		"%s Resources",
	},
}

// keywordMetrics carries the per-keyword search volume and difficulty values
// aligned with the normalised keyword order.
type keywordMetrics struct {
	volumes      map[string]int
	difficulties map[string]float64
}

const (
	defaultSearchVolume = 100
	defaultDifficulty   = 50.0
)

// newKeywordMetrics aligns optional parallel metric sequences to the
// normalised keyword order. Missing positions take defaults; the shorter
// prefix wins on length mismatch.
func newKeywordMetrics(keywords []string, volumes []int, difficulties []float64) keywordMetrics {
	m := keywordMetrics{
		volumes:      make(map[string]int, len(keywords)),
		difficulties: make(map[string]float64, len(keywords)),
	}
	for i, kw := range keywords {
		m.volumes[kw] = defaultSearchVolume
		m.difficulties[kw] = defaultDifficulty
		if i < len(volumes) {
			m.volumes[kw] = volumes[i]
		}
		if i < len(difficulties) {
			m.difficulties[kw] = difficulties[i]
		}
	}
	return m
}

// labelCluster builds a fully labelled cluster from group members. Members
// must be in normalised-input order.
func labelCluster(id int, members []string, metrics keywordMetrics, stops *Stopwords) model.Cluster {
	primary := primaryKeyword(members)
	topic := primaryTopic(members, stops)
	intent := classifyIntent(members)
	stage := classifyStage(members)

	var volumeTotal int
	var difficultySum float64
	for _, kw := range members {
		volumeTotal += metrics.volumes[kw]
		difficultySum += metrics.difficulties[kw]
	}
	difficultyAvg := difficultySum / float64(len(members))

	return model.Cluster{
		ID:                 id,
		Name:               clusterName(members, stops),
		PrimaryKeyword:     primary,
		Keywords:           members,
		Intent:             intent,
		JourneyStage:       stage,
		TopicTheme:         topic,
		SearchVolumeTotal:  volumeTotal,
		DifficultyAverage:  difficultyAvg,
		ContentSuggestions: contentSuggestions(topic, intent),
		PriorityScore:      priorityScore(volumeTotal, difficultyAvg, len(members)),
	}
}

// primaryKeyword picks the longest member; earliest in input order on ties.
func primaryKeyword(members []string) string {
	primary := members[0]
	for _, kw := range members[1:] {
		if len(kw) > len(primary) {
			primary = kw
		}
	}
	return primary
}

// clusterName joins the two most frequent qualifying tokens across members,
// title-cased. Stop-words and tokens shorter than three characters never
// qualify. Falls back to the literal "Cluster" when nothing qualifies.
func clusterName(members []string, stops *Stopwords) string {
	freq := make(map[string]int)
	for _, kw := range members {
		for _, tok := range tokenize(kw) {
			if len(tok) < 3 || stops.Contains(tok) {
				continue
			}
			freq[tok]++
		}
	}
	if len(freq) == 0 {
		return "Cluster"
	}

	tokens := make([]string, 0, len(freq))
	for tok := range freq {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if freq[tokens[i]] != freq[tokens[j]] {
			return freq[tokens[i]] > freq[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	for i, tok := range tokens {
		tokens[i] = titleCase(tok)
	}
	return strings.Join(tokens, " ")
}

// primaryTopic returns the most frequent non-stop-word across members,
// alphabetically first on ties.
func primaryTopic(members []string, stops *Stopwords) string {
	freq := make(map[string]int)
	for _, kw := range members {
		for _, tok := range tokenize(kw) {
			if len(tok) < 3 || stops.Contains(tok) {
				continue
			}
			freq[tok]++
		}
	}
	var topic string
	best := 0
	for tok, c := range freq {
		if c > best || (c == best && (topic == "" || tok < topic)) {
			topic = tok
			best = c
		}
	}
	return topic
}

// classifyIntent counts pattern hits per intent across all members; one count
// per contained pattern per member. Ties resolve in declaration order, and an
// all-zero score defaults to informational.
func classifyIntent(members []string) model.SearchIntent {
	best := model.IntentInformational
	bestScore := 0
	for _, intent := range model.Intents {
		score := patternScore(members, intentPatterns[intent])
		if score > bestScore {
			best = intent
			bestScore = score
		}
	}
	return best
}

func classifyStage(members []string) model.JourneyStage {
	best := model.StageAwareness
	bestScore := 0
	for _, stage := range model.Stages {
		score := patternScore(members, journeyPatterns[stage])
		if score > bestScore {
			best = stage
			bestScore = score
		}
	}
	return best
}

func patternScore(members []string, patterns []string) int {
	score := 0
	for _, kw := range members {
		for _, pat := range patterns {
			if strings.Contains(kw, pat) {
				score++
			}
		}
	}
	return score
}

// contentSuggestions renders the three fixed title templates for the intent.
func contentSuggestions(topic string, intent model.SearchIntent) []string {
	name := "topic"
	if topic != "" {
		name = topic
	}
	name = titleCase(name)

	templates := suggestionTemplates[intent]
	out := make([]string, len(templates))
	for i, tpl := range templates {
		out[i] = fmt.Sprintf(tpl, name)
	}
	return out
}

// priorityScore computes min(100, (V/(D+1))*m/100), rounded to two decimals.
func priorityScore(volumeTotal int, difficultyAvg float64, memberCount int) float64 {
	p := float64(volumeTotal) / (difficultyAvg + 1) * float64(memberCount)
	score := p / 100
	if score > 100 {
		score = 100
	}
	return roundTo(score, 2)
}

func roundTo(x float64, places int) float64 {
	shift := 1.0
	for i := 0; i < places; i++ {
		shift *= 10
	}
	return float64(int64(x*shift+0.5)) / shift
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
