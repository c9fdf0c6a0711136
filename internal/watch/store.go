package watch

import (
	"time"

	"suggestwatch/internal/model"
)

// SuggestionFilter narrows a current-state suggestion query.
// Zero values mean "no filter".
type SuggestionFilter struct {
	Sentiment   string
	MinLastSeen *time.Time
}

// UpsertParams carries one scored suggestion into the store.
type UpsertParams struct {
	SnapshotID int64
	BrandID    int64
	Text       string
	Rank       *int64
	Sentiment  string
	Score      float64
	Category   string
}

// Store is the persistence contract the service layer depends on.
// Single-row lookups return (nil, nil) when nothing matches.
type Store interface {
	// Brands
	ActiveBrands() ([]model.Brand, error)
	BrandByName(name string) (*model.Brand, error)

	// Snapshots. CreateSnapshot writes the snapshot row as a single unit;
	// suggestion upserts referencing it must happen afterwards.
	CreateSnapshot(brandID int64, source string, queries []string, results []model.QueryResult) (int64, error)
	LatestSnapshot(brandID int64) (*model.Snapshot, error)

	// Suggestions. UpsertSuggestion inserts with times_seen=1 when the
	// (brand, text) pair is new, otherwise updates rank/sentiment/last_seen
	// and increments times_seen, leaving first_seen untouched.
	UpsertSuggestion(p UpsertParams) (int64, error)
	CurrentSuggestions(brandID int64, filter SuggestionFilter) ([]model.Suggestion, error)
	SuggestionsFirstSeenSince(brandID int64, cutoff time.Time) ([]model.Suggestion, error)
	// SuggestionsNotSeenSince returns rows whose last_seen predates cutoff.
	// This is staleness, not confirmed absence: a suggestion scanned once,
	// long ago, qualifies even if no rescan happened since.
	SuggestionsNotSeenSince(brandID int64, cutoff time.Time) ([]model.Suggestion, error)
	DailySentimentCounts(brandID int64, windowDays int) ([]model.DailySentimentCount, error)

	// Alerts. RecordAlert appends one delivery-attempt audit row; it never
	// affects the delivery outcome itself.
	RecordAlert(brandID int64, channel string, payload []model.NewNegative, success bool, deliveryErr string) error
}
