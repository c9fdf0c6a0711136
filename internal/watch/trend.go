package watch

import (
	"fmt"

	"suggestwatch/internal/model"
)

// Window defaults for trend derivation.
const (
	DefaultRecentWindowDays = 7
	DefaultRatioWindowDays  = 30

	// persistentThreshold is the fixed times_seen floor for a negative
	// suggestion to count as persistent. Three scans, not a rolling count.
	persistentThreshold = 3
)

// TrendDetector derives brand-level trend signals from stored history.
// It is read-only: every operation is a query plus in-memory filtering.
type TrendDetector struct {
	store Store
	clock Clock
}

// NewTrendDetector creates a TrendDetector over the given store.
func NewTrendDetector(store Store, clock Clock) *TrendDetector {
	return &TrendDetector{store: store, clock: clock}
}

// RisingNegative returns negative suggestions first seen within the last
// windowDays. A brand with no history yields an empty slice, not an error.
func (d *TrendDetector) RisingNegative(brandID int64, windowDays int) ([]model.Suggestion, error) {
	cutoff := d.clock.Now().AddDate(0, 0, -windowDays)
	recent, err := d.store.SuggestionsFirstSeenSince(brandID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying recent suggestions: %w", err)
	}
	return filterNegative(recent), nil
}

// DecliningNegative returns negative suggestions whose last_seen predates
// the window cutoff: negative content that has fallen out of the current
// result set (or simply gone stale without rescans).
func (d *TrendDetector) DecliningNegative(brandID int64, windowDays int) ([]model.Suggestion, error) {
	cutoff := d.clock.Now().AddDate(0, 0, -windowDays)
	stale, err := d.store.SuggestionsNotSeenSince(brandID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying stale suggestions: %w", err)
	}
	return filterNegative(stale), nil
}

// PersistentNegative returns negative suggestions confirmed in at least
// three scans, regardless of recency.
func (d *TrendDetector) PersistentNegative(brandID int64) ([]model.Suggestion, error) {
	negatives, err := d.store.CurrentSuggestions(brandID, SuggestionFilter{Sentiment: model.SentimentNegative})
	if err != nil {
		return nil, fmt.Errorf("querying negative suggestions: %w", err)
	}

	persistent := []model.Suggestion{}
	for _, s := range negatives {
		if s.TimesSeen >= persistentThreshold {
			persistent = append(persistent, s)
		}
	}
	return persistent, nil
}

// NegativeRatioTrend returns the chronological day-bucketed series of
// negative/total ratios over the last windowDays. Days with no recorded
// suggestions are absent from the series; a day with a zero total (which
// the store should not produce) yields ratio 0.0.
func (d *TrendDetector) NegativeRatioTrend(brandID int64, windowDays int) ([]model.RatioPoint, error) {
	daily, err := d.store.DailySentimentCounts(brandID, windowDays)
	if err != nil {
		return nil, fmt.Errorf("querying daily sentiment counts: %w", err)
	}

	points := make([]model.RatioPoint, len(daily))
	for i, day := range daily {
		ratio := 0.0
		if day.Total > 0 {
			ratio = float64(day.Negative) / float64(day.Total)
		}
		points[i] = model.RatioPoint{Date: day.Date, Ratio: ratio}
	}
	return points, nil
}

// Detect runs all four signals with the default windows: a 7-day recent
// window for rising/declining and a windowDays ratio series (30 when
// windowDays is zero or negative).
func (d *TrendDetector) Detect(brandID int64, windowDays int) (*model.TrendReport, error) {
	if windowDays <= 0 {
		windowDays = DefaultRatioWindowDays
	}

	rising, err := d.RisingNegative(brandID, DefaultRecentWindowDays)
	if err != nil {
		return nil, err
	}
	declining, err := d.DecliningNegative(brandID, DefaultRecentWindowDays)
	if err != nil {
		return nil, err
	}
	persistent, err := d.PersistentNegative(brandID)
	if err != nil {
		return nil, err
	}
	ratios, err := d.NegativeRatioTrend(brandID, windowDays)
	if err != nil {
		return nil, err
	}

	return &model.TrendReport{
		RisingNegative:     rising,
		DecliningNegative:  declining,
		PersistentNegative: persistent,
		NegativeRatioTrend: ratios,
	}, nil
}

func filterNegative(suggestions []model.Suggestion) []model.Suggestion {
	negatives := []model.Suggestion{}
	for _, s := range suggestions {
		if s.Sentiment == model.SentimentNegative {
			negatives = append(negatives, s)
		}
	}
	return negatives
}
