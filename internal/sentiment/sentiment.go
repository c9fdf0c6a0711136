// Package sentiment scores suggestion texts with keyword rules. The keyword
// tables live in an explicit Lexicon value so tests can substitute their own
// dictionaries; there is no package-level mutable state.
package sentiment

import (
	"sort"
	"strings"

	"suggestwatch/internal/lang"
	"suggestwatch/internal/model"
)

// Analyzer scores texts against a fixed Lexicon.
type Analyzer struct {
	lexicon *Lexicon
}

// NewAnalyzer creates an Analyzer over the given lexicon.
func NewAnalyzer(lexicon *Lexicon) *Analyzer {
	return &Analyzer{lexicon: lexicon}
}

// Analyze scores a single suggestion text. The brand name is stripped from
// the normalized text first so that keyword matches reflect what users typed
// around the brand, not the brand itself.
func (a *Analyzer) Analyze(text, brandName, language string) model.Analysis {
	normalized := lang.Normalize(text)
	cleaned := strings.TrimSpace(strings.ReplaceAll(normalized, lang.Normalize(brandName), ""))

	tiers := a.lexicon.negativeFor(language)
	for _, severity := range severityOrder {
		matched := matchKeywords(cleaned, tiers[severity])
		if len(matched) > 0 {
			w := severityWeights[severity]
			return model.Analysis{
				Sentiment:  model.SentimentNegative,
				Score:      w.Score,
				Category:   a.detectCategory(matched),
				Matched:    matched,
				Confidence: w.Confidence,
			}
		}
	}

	if matched := matchKeywords(cleaned, a.lexicon.positiveFor(language)); len(matched) > 0 {
		return model.Analysis{
			Sentiment:  model.SentimentPositive,
			Score:      0.6,
			Matched:    matched,
			Confidence: 0.75,
		}
	}

	return model.Analysis{
		Sentiment:  model.SentimentNeutral,
		Score:      0.0,
		Matched:    []string{},
		Confidence: 0.50,
	}
}

// AnalyzeBatch scores every text in order.
func (a *Analyzer) AnalyzeBatch(texts []string, brandName, language string) []model.Analysis {
	results := make([]model.Analysis, len(texts))
	for i, text := range texts {
		results[i] = a.Analyze(text, brandName, language)
	}
	return results
}

// detectCategory returns the first category (in table order) containing any
// of the matched keywords. Table order is the tie-break policy.
func (a *Analyzer) detectCategory(matched []string) string {
	for _, cat := range a.lexicon.Categories {
		for _, kw := range matched {
			for _, catKw := range cat.Keywords {
				if kw == catKw {
					return cat.Name
				}
			}
		}
	}
	return ""
}

// matchKeywords returns the keywords contained in text, in keyword order.
func matchKeywords(text string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// Summarize aggregates a batch of analyses into counts, the negative ratio,
// categories sorted by frequency and the average score.
func Summarize(results []model.Analysis) model.SentimentSummary {
	summary := model.SentimentSummary{
		Total:         len(results),
		TopCategories: []model.CategoryCount{},
	}
	if summary.Total == 0 {
		return summary
	}

	categories := make(map[string]int)
	var scoreSum float64
	for _, r := range results {
		switch r.Sentiment {
		case model.SentimentNegative:
			summary.Negative++
		case model.SentimentPositive:
			summary.Positive++
		default:
			summary.Neutral++
		}
		if r.Category != "" {
			categories[r.Category]++
		}
		scoreSum += r.Score
	}

	for name, count := range categories {
		summary.TopCategories = append(summary.TopCategories, model.CategoryCount{Name: name, Count: count})
	}
	sort.Slice(summary.TopCategories, func(i, j int) bool {
		a, b := summary.TopCategories[i], summary.TopCategories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})

	summary.NegativeRatio = float64(summary.Negative) / float64(summary.Total)
	summary.AvgScore = scoreSum / float64(summary.Total)
	return summary
}
