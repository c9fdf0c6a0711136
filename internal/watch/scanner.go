package watch

import (
	"context"
	"fmt"
	"time"

	"suggestwatch/internal/diff"
	"suggestwatch/internal/lang"
	"suggestwatch/internal/model"
	"suggestwatch/internal/sentiment"
)

// ScanReport is the outcome of one brand scan. Err is set (and the other
// fields are zero) when the scan failed as a whole.
type ScanReport struct {
	BrandID          int64
	BrandName        string
	SnapshotID       int64
	TotalQueries     int
	TotalSuggestions int
	Sentiment        model.SentimentSummary
	Diff             diff.Summary
	NewNegatives     int
	Err              string
}

// Estimate predicts the size and duration of a brand scan.
type Estimate struct {
	TotalQueries     int
	EstimatedSeconds float64
}

// Scanner sequences one full scan-and-reconcile cycle per brand:
// collect → score → persist → diff → notify.
type Scanner struct {
	store     Store
	collector Collector
	scorer    Scorer
	notifiers []Notifier
	logger    Logger
	clock     Clock

	requestDelay time.Duration
	maxWorkers   int
}

// NewScanner creates a Scanner with the provided dependencies.
// requestDelay and maxWorkers are only used for estimates; the collector
// applies its own limits during collection.
func NewScanner(store Store, collector Collector, scorer Scorer, notifiers []Notifier, logger Logger, clock Clock, requestDelay time.Duration, maxWorkers int) *Scanner {
	return &Scanner{
		store:        store,
		collector:    collector,
		scorer:       scorer,
		notifiers:    notifiers,
		logger:       logger,
		clock:        clock,
		requestDelay: requestDelay,
		maxWorkers:   maxWorkers,
	}
}

// ScanBrand runs a full scan for one brand.
//
// The previous current-state list is read strictly before any write of this
// cycle, so the diff never observes its own upserts. The snapshot row is
// written as a single unit before any suggestion references it.
func (s *Scanner) ScanBrand(ctx context.Context, brand model.Brand, progress ProgressFunc) (*ScanReport, error) {
	results, err := s.collector.CollectBrand(ctx, brand, progress)
	if err != nil {
		return nil, fmt.Errorf("collecting suggestions for %s: %w", brand.Name, err)
	}

	texts := dedupeSuggestions(results)

	analyses := make([]model.Analysis, len(texts))
	for i, text := range texts {
		analyses[i] = s.scorer.Analyze(text, brand.Name, brand.Language)
	}

	previous, err := s.store.CurrentSuggestions(brand.ID, SuggestionFilter{})
	if err != nil {
		return nil, fmt.Errorf("reading previous suggestions for %s: %w", brand.Name, err)
	}

	queries := make([]string, len(results))
	for i, r := range results {
		queries[i] = r.Query
	}
	snapshotID, err := s.store.CreateSnapshot(brand.ID, "autocomplete", queries, results)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot for %s: %w", brand.Name, err)
	}

	current := make([]diff.Entry, len(texts))
	for i, text := range texts {
		rank := int64(i + 1)
		if _, err := s.store.UpsertSuggestion(UpsertParams{
			SnapshotID: snapshotID,
			BrandID:    brand.ID,
			Text:       text,
			Rank:       &rank,
			Sentiment:  analyses[i].Sentiment,
			Score:      analyses[i].Score,
			Category:   analyses[i].Category,
		}); err != nil {
			return nil, fmt.Errorf("upserting suggestion %q for %s: %w", text, brand.Name, err)
		}
		current[i] = diff.Entry{Text: text, Rank: &rank}
	}

	previousEntries := make([]diff.Entry, len(previous))
	for i, p := range previous {
		previousEntries[i] = diff.Entry{Text: p.Text, Rank: p.Rank}
	}
	delta := diff.Compare(previousEntries, current)

	newNegatives := collectNewNegatives(delta.New, texts, analyses)
	if len(newNegatives) > 0 {
		s.dispatchAlerts(ctx, brand, newNegatives)
	}

	s.logger.Info("brand scan finished",
		"brand", brand.Name,
		"snapshot_id", snapshotID,
		"suggestions", len(texts),
		"new", delta.Summary.New,
		"disappeared", delta.Summary.Disappeared,
		"new_negatives", len(newNegatives))

	return &ScanReport{
		BrandID:          brand.ID,
		BrandName:        brand.Name,
		SnapshotID:       snapshotID,
		TotalQueries:     len(results),
		TotalSuggestions: len(texts),
		Sentiment:        sentiment.Summarize(analyses),
		Diff:             delta.Summary,
		NewNegatives:     len(newNegatives),
	}, nil
}

// ScanAll scans every active brand sequentially. A failure scanning one
// brand is converted into an error report and the batch continues.
func (s *Scanner) ScanAll(ctx context.Context, progress ProgressFunc) ([]ScanReport, error) {
	brands, err := s.store.ActiveBrands()
	if err != nil {
		return nil, fmt.Errorf("listing active brands: %w", err)
	}

	reports := make([]ScanReport, 0, len(brands))
	for i, brand := range brands {
		if progress != nil {
			progress(i+1, len(brands), brand.Name)
		}

		report, err := s.ScanBrand(ctx, brand, nil)
		if err != nil {
			s.logger.Error("brand scan failed", "brand", brand.Name, "error", err)
			reports = append(reports, ScanReport{
				BrandID:   brand.ID,
				BrandName: brand.Name,
				Err:       err.Error(),
			})
			continue
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

// Estimate predicts query count and duration for a brand scan without
// touching the network.
func (s *Scanner) Estimate(brand model.Brand) Estimate {
	var queries []string
	for _, kw := range brand.Keywords {
		queries = append(queries, lang.QueryVariants(kw, brand.ExpandAZ, brand.ExpandTurkish)...)
	}
	total := len(lang.Dedupe(queries))

	seconds := float64(total) * s.requestDelay.Seconds()
	if s.maxWorkers > 0 {
		seconds = float64(total) / float64(s.maxWorkers) * s.requestDelay.Seconds()
	}
	return Estimate{TotalQueries: total, EstimatedSeconds: seconds}
}

// dedupeSuggestions flattens per-query results into a single list of unique
// suggestion texts, preserving first-occurrence order. The dedup key is the
// normalized form; the stored value is the original surface form.
func dedupeSuggestions(results []model.QueryResult) []string {
	seen := make(map[string]bool)
	var texts []string
	for _, r := range results {
		for _, text := range r.Suggestions {
			key := lang.Normalize(text)
			if !seen[key] {
				seen[key] = true
				texts = append(texts, text)
			}
		}
	}
	return texts
}

// collectNewNegatives intersects the diff's new partition with the scored
// batch and keeps the negative ones, in scan order.
func collectNewNegatives(newEntries []diff.Entry, texts []string, analyses []model.Analysis) []model.NewNegative {
	isNew := make(map[string]bool, len(newEntries))
	for _, e := range newEntries {
		isNew[e.Text] = true
	}

	var negatives []model.NewNegative
	for i, text := range texts {
		if isNew[text] && analyses[i].Sentiment == model.SentimentNegative {
			negatives = append(negatives, model.NewNegative{
				Text:     text,
				Score:    analyses[i].Score,
				Category: analyses[i].Category,
			})
		}
	}
	return negatives
}

// dispatchAlerts fans the payload out to every configured sender. Failures
// are logged and independent; they never fail the scan. Every attempt is
// recorded in the alert audit log.
func (s *Scanner) dispatchAlerts(ctx context.Context, brand model.Brand, negatives []model.NewNegative) {
	for _, n := range s.notifiers {
		deliveryErr := ""
		if err := n.SendNewNegativeAlert(ctx, brand.Name, negatives); err != nil {
			deliveryErr = err.Error()
			s.logger.Error("alert delivery failed", "notifier", n.Name(), "brand", brand.Name, "error", err)
		}
		if err := s.store.RecordAlert(brand.ID, n.Name(), negatives, deliveryErr == "", deliveryErr); err != nil {
			s.logger.Error("recording alert failed", "notifier", n.Name(), "brand", brand.Name, "error", err)
		}
	}
}
