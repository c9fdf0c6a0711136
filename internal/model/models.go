package model

import "time"

// Sentiment labels assigned by keyword scoring.
const (
	SentimentNegative = "negative"
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
)

// Brand is a tracked entity. Brands are never hard-deleted; deactivation
// preserves the historical suggestion lineage.
type Brand struct {
	ID            int64
	Name          string   // Unique
	Keywords      []string // Seed keywords expanded into query variants
	Language      string   // e.g. "tr", "en"
	Country       string   // e.g. "TR"
	ExpandAZ      bool     // Append "keyword a".."keyword z" variants
	ExpandTurkish bool     // Append Turkish-letter variants
	Active        bool
	CreatedAt     time.Time
}

// Snapshot records one completed collection run for a brand.
// Immutable once written.
type Snapshot struct {
	ID      int64
	BrandID int64
	Source  string // e.g. "autocomplete"
	TakenAt time.Time
	Queries []string // Queries issued during the run
	RawData string   // JSON-encoded per-query results, kept for audit/replay
}

// QueryResult is the raw outcome of a single autocomplete query.
// A non-empty Error means the query failed; Suggestions is empty in that
// case and the rest of the brand scan continues.
type QueryResult struct {
	Query       string    `json:"query"`
	Suggestions []string  `json:"suggestions"`
	Source      string    `json:"source"`
	CollectedAt time.Time `json:"collected_at"`
	Error       string    `json:"error,omitempty"`
}

// Suggestion is the single live row per (brand, text): the latest known
// rank, sentiment and recurrence for that suggestion string.
type Suggestion struct {
	ID         int64
	SnapshotID int64 // Snapshot that last updated this row
	BrandID    int64
	Text       string // Raw surface form as collected
	Rank       *int64 // 1-based position in its scan; nil if unknown
	Sentiment  string
	Score      float64
	Category   string
	FirstSeen  time.Time // Set on insert, never changed
	LastSeen   time.Time // Advanced every time the text reappears
	TimesSeen  int64     // Incremented, never decremented
}

// Campaign is an operator-declared time window over a brand's history,
// used for before/during comparisons. Never auto-closed by the system.
type Campaign struct {
	ID        int64
	BrandID   int64
	Name      string
	StartedAt time.Time
	EndedAt   *time.Time // nil while the campaign is running
	Notes     string
}

// Analysis is the sentiment scoring result for a single suggestion text.
type Analysis struct {
	Sentiment  string
	Score      float64 // -1.0 … +1.0
	Category   string  // empty when no category matched
	Matched    []string
	Confidence float64 // 0.0 … 1.0
}

// CategoryCount pairs a category name with its occurrence count.
type CategoryCount struct {
	Name  string
	Count int
}

// SentimentSummary aggregates a batch of analyses.
type SentimentSummary struct {
	Total         int
	Negative      int
	Positive      int
	Neutral       int
	NegativeRatio float64
	TopCategories []CategoryCount // Sorted by count, descending
	AvgScore      float64
}

// DailySentimentCount is one day bucket of per-sentiment counts,
// keyed by the date component of first_seen.
type DailySentimentCount struct {
	Date     string // YYYY-MM-DD
	Negative int64
	Positive int64
	Neutral  int64
	Total    int64
}

// SentimentCounts holds plain per-label totals over an arbitrary period.
type SentimentCounts struct {
	Negative int64
	Positive int64
	Neutral  int64
	Total    int64
}

// RatioPoint is one day of the negative-ratio series.
type RatioPoint struct {
	Date  string
	Ratio float64
}

// TrendReport groups the derived trend signals for a brand.
type TrendReport struct {
	RisingNegative     []Suggestion
	DecliningNegative  []Suggestion
	PersistentNegative []Suggestion
	NegativeRatioTrend []RatioPoint
}

// NewNegative is one entry of a new-negative alert payload.
type NewNegative struct {
	Text     string  `json:"text"`
	Score    float64 `json:"score"`
	Category string  `json:"category,omitempty"`
}

// BrandStats is the aggregate dashboard view of one brand.
type BrandStats struct {
	TotalSuggestions  int64
	NegativeCount     int64
	PositiveCount     int64
	NeutralCount      int64
	NegativeRatio     float64
	LastScan          *time.Time
	TotalScans        int64
	NewLast7d         int64
	DisappearedLast7d int64
}

// CampaignComparison holds sentiment counts before and during a campaign.
// For a running campaign the "during" period extends to now.
type CampaignComparison struct {
	Campaign Campaign
	Before   SentimentCounts
	During   SentimentCounts
}
