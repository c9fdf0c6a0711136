// Package diff compares two ranked suggestion lists and classifies every
// suggestion as new, disappeared, moved or unchanged. It is pure computation:
// no storage, no network, no shared state.
package diff

// Entry is one suggestion as seen by the diff: a text key (treated as the
// unique identity) and an optional 1-based rank. Rank values are opaque;
// they need not be dense or contiguous.
type Entry struct {
	Text string
	Rank *int64
}

// Move records a common suggestion whose rank changed between snapshots.
type Move struct {
	Text    string
	OldRank int64
	NewRank int64
}

// Summary holds the partition counts plus the raw input sizes.
type Summary struct {
	New           int
	Disappeared   int
	Moved         int
	Unchanged     int
	TotalPrevious int
	TotalCurrent  int
}

// Report is the full delta between a previous and a current snapshot state.
type Report struct {
	New         []Entry // Present in current only, in current order
	Disappeared []Entry // Present in previous only, in previous order
	Moved       []Move  // Common, both ranks set, ranks differ
	Unchanged   []Entry // Remaining common entries
	Summary     Summary
}

// Compare computes the delta between previous and current.
//
// Duplicate text keys within one input indicate an upstream deduplication
// bug; they are resolved deterministically (the last occurrence wins for
// rank lookup, each key is classified once) rather than treated as fatal.
//
// A common key where either side's rank is nil is never classified as
// moved; it falls through to unchanged. Complexity is O(n+m).
func Compare(previous, current []Entry) *Report {
	prevByText := index(previous)
	currByText := index(current)

	report := &Report{
		New:         []Entry{},
		Disappeared: []Entry{},
		Moved:       []Move{},
		Unchanged:   []Entry{},
	}

	// Walk current once: each key lands in exactly one of new/moved/unchanged.
	seen := make(map[string]bool, len(current))
	for _, e := range current {
		if seen[e.Text] {
			continue
		}
		seen[e.Text] = true

		prev, ok := prevByText[e.Text]
		if !ok {
			report.New = append(report.New, currByText[e.Text])
			continue
		}
		curr := currByText[e.Text]
		if prev.Rank != nil && curr.Rank != nil && *prev.Rank != *curr.Rank {
			report.Moved = append(report.Moved, Move{
				Text:    e.Text,
				OldRank: *prev.Rank,
				NewRank: *curr.Rank,
			})
		} else {
			report.Unchanged = append(report.Unchanged, curr)
		}
	}

	// Walk previous for keys absent from current.
	emitted := make(map[string]bool, len(previous))
	for _, e := range previous {
		if emitted[e.Text] {
			continue
		}
		emitted[e.Text] = true
		if _, ok := currByText[e.Text]; !ok {
			report.Disappeared = append(report.Disappeared, prevByText[e.Text])
		}
	}

	report.Summary = Summary{
		New:           len(report.New),
		Disappeared:   len(report.Disappeared),
		Moved:         len(report.Moved),
		Unchanged:     len(report.Unchanged),
		TotalPrevious: len(previous),
		TotalCurrent:  len(current),
	}
	return report
}

// index builds a text→entry lookup. Later occurrences overwrite earlier
// ones, matching the documented last-occurrence-wins policy.
func index(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Text] = e
	}
	return m
}
