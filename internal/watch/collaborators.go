package watch

import (
	"context"

	"suggestwatch/internal/model"
)

// ProgressFunc receives (current, total, label) events while a long-running
// operation advances. Consumers range from CLI progress output to test
// harnesses; the service layer never assumes a particular UI.
type ProgressFunc func(current, total int, label string)

// Collector produces raw per-query suggestion batches for a brand.
// Individual query failures are recorded inline on the QueryResult; only a
// total collector failure returns an error.
type Collector interface {
	CollectBrand(ctx context.Context, brand model.Brand, progress ProgressFunc) ([]model.QueryResult, error)
}

// Scorer maps a suggestion text to its sentiment analysis.
type Scorer interface {
	Analyze(text, brandName, language string) model.Analysis
}

// Notifier delivers a new-negative alert. Delivery success of each sender
// is independent and never affects the scan's own outcome.
type Notifier interface {
	Name() string
	SendNewNegativeAlert(ctx context.Context, brandName string, suggestions []model.NewNegative) error
}
