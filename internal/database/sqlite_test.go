package database

import (
	"strings"
	"testing"
	"time"

	"suggestwatch/internal/model"
	"suggestwatch/internal/watch"
)

// testClock is a settable clock so first_seen/last_seen assertions are
// deterministic.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestStore creates an in-memory store with the schema migrated.
func newTestStore(t *testing.T) (*SQLiteStore, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	store, err := NewSQLiteStore(":memory:", clock)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store, clock
}

func mustCreateBrand(t *testing.T, store *SQLiteStore, name string) *model.Brand {
	t.Helper()
	brand, err := store.CreateBrand(name, []string{name}, "tr", "TR", true, true)
	if err != nil {
		t.Fatalf("CreateBrand(%s) error = %v", name, err)
	}
	return brand
}

func mustCreateSnapshot(t *testing.T, store *SQLiteStore, brandID int64) int64 {
	t.Helper()
	id, err := store.CreateSnapshot(brandID, "autocomplete", []string{"q"}, []model.QueryResult{
		{Query: "q", Suggestions: []string{"s"}},
	})
	if err != nil {
		t.Fatalf("CreateSnapshot() error = %v", err)
	}
	return id
}

func upsert(t *testing.T, store *SQLiteStore, snapshotID, brandID int64, text, sentiment string, rank int64) int64 {
	t.Helper()
	id, err := store.UpsertSuggestion(watch.UpsertParams{
		SnapshotID: snapshotID,
		BrandID:    brandID,
		Text:       text,
		Rank:       &rank,
		Sentiment:  sentiment,
		Score:      -0.6,
		Category:   "complaint",
	})
	if err != nil {
		t.Fatalf("UpsertSuggestion(%s) error = %v", text, err)
	}
	return id
}

func TestSQLiteStore_Brands(t *testing.T) {
	t.Run("create and find by name", func(t *testing.T) {
		store, _ := newTestStore(t)

		created := mustCreateBrand(t, store, "acme")
		if created.ID == 0 {
			t.Error("ID is zero")
		}
		if !created.Active {
			t.Error("new brand should be active")
		}

		found, err := store.BrandByName("acme")
		if err != nil {
			t.Fatalf("BrandByName() error = %v", err)
		}
		if found == nil {
			t.Fatal("BrandByName() returned nil, want brand")
		}
		if found.ID != created.ID || len(found.Keywords) != 1 || found.Keywords[0] != "acme" {
			t.Errorf("found = %+v, want created brand with keywords", found)
		}
	})

	t.Run("not found returns nil", func(t *testing.T) {
		store, _ := newTestStore(t)

		found, err := store.BrandByName("nope")
		if err != nil {
			t.Fatalf("BrandByName() error = %v", err)
		}
		if found != nil {
			t.Errorf("BrandByName() = %+v, want nil", found)
		}
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		store, _ := newTestStore(t)

		mustCreateBrand(t, store, "acme")
		if _, err := store.CreateBrand("acme", nil, "tr", "TR", true, true); err == nil {
			t.Error("expected error for duplicate brand name")
		}
	})

	t.Run("deactivation hides from active list only", func(t *testing.T) {
		store, _ := newTestStore(t)

		a := mustCreateBrand(t, store, "a")
		mustCreateBrand(t, store, "b")

		if err := store.DeactivateBrand(a.ID); err != nil {
			t.Fatalf("DeactivateBrand() error = %v", err)
		}

		active, err := store.ActiveBrands()
		if err != nil {
			t.Fatalf("ActiveBrands() error = %v", err)
		}
		if len(active) != 1 || active[0].Name != "b" {
			t.Errorf("active = %+v, want only b", active)
		}

		all, err := store.ListBrands()
		if err != nil {
			t.Fatalf("ListBrands() error = %v", err)
		}
		if len(all) != 2 {
			t.Errorf("all brands = %d, want 2 (soft delete)", len(all))
		}
	})

	t.Run("update brand", func(t *testing.T) {
		store, _ := newTestStore(t)

		brand := mustCreateBrand(t, store, "acme")
		brand.Keywords = []string{"acme", "acme bank"}
		brand.Language = "en"
		if err := store.UpdateBrand(*brand); err != nil {
			t.Fatalf("UpdateBrand() error = %v", err)
		}

		found, err := store.BrandByID(brand.ID)
		if err != nil {
			t.Fatalf("BrandByID() error = %v", err)
		}
		if len(found.Keywords) != 2 || found.Language != "en" {
			t.Errorf("found = %+v, want updated fields", found)
		}
	})
}

func TestSQLiteStore_Snapshots(t *testing.T) {
	store, clock := newTestStore(t)
	brand := mustCreateBrand(t, store, "acme")

	t.Run("no snapshots yet returns nil", func(t *testing.T) {
		snap, err := store.LatestSnapshot(brand.ID)
		if err != nil {
			t.Fatalf("LatestSnapshot() error = %v", err)
		}
		if snap != nil {
			t.Errorf("LatestSnapshot() = %+v, want nil", snap)
		}
	})

	t.Run("latest returns most recent", func(t *testing.T) {
		first := mustCreateSnapshot(t, store, brand.ID)
		clock.advance(time.Hour)
		second := mustCreateSnapshot(t, store, brand.ID)

		snap, err := store.LatestSnapshot(brand.ID)
		if err != nil {
			t.Fatalf("LatestSnapshot() error = %v", err)
		}
		if snap == nil || snap.ID != second {
			t.Fatalf("LatestSnapshot() = %+v, want snapshot %d (not %d)", snap, second, first)
		}
		if len(snap.Queries) != 1 || snap.Queries[0] != "q" {
			t.Errorf("Queries = %v, want [q]", snap.Queries)
		}
		if snap.RawData == "" {
			t.Error("RawData should carry the per-query results")
		}
	})
}

func TestSQLiteStore_UpsertSuggestion(t *testing.T) {
	t.Run("counter monotonicity and timestamp rules", func(t *testing.T) {
		store, clock := newTestStore(t)
		brand := mustCreateBrand(t, store, "acme")
		snap := mustCreateSnapshot(t, store, brand.ID)

		firstID := upsert(t, store, snap, brand.ID, "acme şikayet", "negative", 1)

		rows, err := store.CurrentSuggestions(brand.ID, watch.SuggestionFilter{})
		if err != nil {
			t.Fatalf("CurrentSuggestions() error = %v", err)
		}
		if len(rows) != 1 || rows[0].TimesSeen != 1 {
			t.Fatalf("rows = %+v, want one row with times_seen=1", rows)
		}
		firstSeen := rows[0].FirstSeen

		// Re-scan twice; times_seen climbs by exactly 1 each call, first_seen
		// never moves, last_seen tracks the clock.
		for i := int64(2); i <= 3; i++ {
			clock.advance(24 * time.Hour)
			id := upsert(t, store, snap, brand.ID, "acme şikayet", "negative", 2)
			if id != firstID {
				t.Errorf("upsert returned id %d, want original row %d", id, firstID)
			}

			rows, err = store.CurrentSuggestions(brand.ID, watch.SuggestionFilter{})
			if err != nil {
				t.Fatalf("CurrentSuggestions() error = %v", err)
			}
			if len(rows) != 1 {
				t.Fatalf("row count = %d, want 1 (unique per brand+text)", len(rows))
			}
			got := rows[0]
			if got.TimesSeen != i {
				t.Errorf("times_seen = %d, want %d", got.TimesSeen, i)
			}
			if !got.FirstSeen.Equal(firstSeen) {
				t.Errorf("first_seen changed: %v -> %v", firstSeen, got.FirstSeen)
			}
			if !got.LastSeen.After(firstSeen) {
				t.Errorf("last_seen = %v, want after %v", got.LastSeen, firstSeen)
			}
			if got.Rank == nil || *got.Rank != 2 {
				t.Errorf("rank = %v, want updated to 2", got.Rank)
			}
		}
	})

	t.Run("distinct texts get distinct rows", func(t *testing.T) {
		store, _ := newTestStore(t)
		brand := mustCreateBrand(t, store, "acme")
		snap := mustCreateSnapshot(t, store, brand.ID)

		upsert(t, store, snap, brand.ID, "acme a", "neutral", 1)
		upsert(t, store, snap, brand.ID, "acme b", "neutral", 2)

		rows, err := store.CurrentSuggestions(brand.ID, watch.SuggestionFilter{})
		if err != nil {
			t.Fatalf("CurrentSuggestions() error = %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("row count = %d, want 2", len(rows))
		}
	})
}

func TestSQLiteStore_SuggestionQueries(t *testing.T) {
	store, clock := newTestStore(t)
	brand := mustCreateBrand(t, store, "acme")
	snap := mustCreateSnapshot(t, store, brand.ID)

	// Day 1: an old negative that will go stale, and a neutral.
	upsert(t, store, snap, brand.ID, "acme fraud", "negative", 1)
	upsert(t, store, snap, brand.ID, "acme shop", "neutral", 2)

	// Ten days later: one fresh negative; the neutral is reconfirmed.
	clock.advance(10 * 24 * time.Hour)
	upsert(t, store, snap, brand.ID, "acme scam", "negative", 1)
	upsert(t, store, snap, brand.ID, "acme shop", "neutral", 2)

	cutoff := clock.now.Add(-7 * 24 * time.Hour)

	t.Run("sentiment filter", func(t *testing.T) {
		rows, err := store.CurrentSuggestions(brand.ID, watch.SuggestionFilter{Sentiment: "negative"})
		if err != nil {
			t.Fatalf("CurrentSuggestions() error = %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("negative rows = %d, want 2", len(rows))
		}
	})

	t.Run("min last seen filter", func(t *testing.T) {
		rows, err := store.CurrentSuggestions(brand.ID, watch.SuggestionFilter{MinLastSeen: &cutoff})
		if err != nil {
			t.Fatalf("CurrentSuggestions() error = %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("recent rows = %d, want 2 (scam + reconfirmed shop)", len(rows))
		}
	})

	t.Run("first seen since", func(t *testing.T) {
		rows, err := store.SuggestionsFirstSeenSince(brand.ID, cutoff)
		if err != nil {
			t.Fatalf("SuggestionsFirstSeenSince() error = %v", err)
		}
		if len(rows) != 1 || rows[0].Text != "acme scam" {
			t.Errorf("rows = %+v, want only the fresh negative", rows)
		}
	})

	t.Run("not seen since", func(t *testing.T) {
		rows, err := store.SuggestionsNotSeenSince(brand.ID, cutoff)
		if err != nil {
			t.Fatalf("SuggestionsNotSeenSince() error = %v", err)
		}
		if len(rows) != 1 || rows[0].Text != "acme fraud" {
			t.Errorf("rows = %+v, want only the stale negative", rows)
		}
	})

	t.Run("daily sentiment counts", func(t *testing.T) {
		counts, err := store.DailySentimentCounts(brand.ID, 30)
		if err != nil {
			t.Fatalf("DailySentimentCounts() error = %v", err)
		}
		if len(counts) != 2 {
			t.Fatalf("day buckets = %d, want 2", len(counts))
		}
		// Chronological; each suggestion contributes to its first_seen day.
		if counts[0].Date >= counts[1].Date {
			t.Errorf("buckets not chronological: %+v", counts)
		}
		if counts[0].Negative != 1 || counts[0].Neutral != 1 || counts[0].Total != 2 {
			t.Errorf("day one = %+v, want 1 negative, 1 neutral", counts[0])
		}
		if counts[1].Negative != 1 || counts[1].Total != 1 {
			t.Errorf("day two = %+v, want the fresh negative only", counts[1])
		}
	})

	t.Run("empty history yields empty results", func(t *testing.T) {
		other := mustCreateBrand(t, store, "other")

		rows, err := store.CurrentSuggestions(other.ID, watch.SuggestionFilter{})
		if err != nil {
			t.Fatalf("CurrentSuggestions() error = %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("rows = %+v, want empty", rows)
		}
		counts, err := store.DailySentimentCounts(other.ID, 30)
		if err != nil {
			t.Fatalf("DailySentimentCounts() error = %v", err)
		}
		if len(counts) != 0 {
			t.Errorf("counts = %+v, want empty", counts)
		}
	})

	t.Run("top negative by recurrence", func(t *testing.T) {
		rows, err := store.TopNegativeSuggestions(brand.ID, 10)
		if err != nil {
			t.Fatalf("TopNegativeSuggestions() error = %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("rows = %d, want 2", len(rows))
		}
	})
}

func TestSQLiteStore_RecordAlert(t *testing.T) {
	store, _ := newTestStore(t)
	brand := mustCreateBrand(t, store, "acme")

	err := store.RecordAlert(brand.ID, "telegram", []model.NewNegative{
		{Text: "acme fraud", Score: -0.9, Category: "fraud"},
	}, false, "timeout")
	if err != nil {
		t.Fatalf("RecordAlert() error = %v", err)
	}

	var channel, payload, deliveryErr string
	var success bool
	err = store.db.QueryRow(`SELECT channel, payload, success, error FROM alerts WHERE brand_id = ?`,
		brand.ID).Scan(&channel, &payload, &success, &deliveryErr)
	if err != nil {
		t.Fatalf("reading alert row: %v", err)
	}
	if channel != "telegram" || success || deliveryErr != "timeout" {
		t.Errorf("alert row = %s/%v/%s, want telegram failure with error", channel, success, deliveryErr)
	}
	if !strings.Contains(payload, "acme fraud") {
		t.Errorf("payload = %q, want suggestions JSON", payload)
	}
}

func TestSQLiteStore_Campaigns(t *testing.T) {
	store, clock := newTestStore(t)
	brand := mustCreateBrand(t, store, "acme")
	snap := mustCreateSnapshot(t, store, brand.ID)

	// One negative before the campaign window.
	upsert(t, store, snap, brand.ID, "acme fraud", "negative", 1)

	clock.advance(24 * time.Hour)
	campaign, err := store.CreateCampaign(brand.ID, "reputation push", "PR campaign")
	if err != nil {
		t.Fatalf("CreateCampaign() error = %v", err)
	}

	// Two suggestions first seen during the window.
	clock.advance(24 * time.Hour)
	upsert(t, store, snap, brand.ID, "acme awards", "positive", 1)
	upsert(t, store, snap, brand.ID, "acme reviews", "neutral", 2)

	t.Run("comparison splits before and during", func(t *testing.T) {
		cmp, err := store.CampaignComparison(campaign.ID)
		if err != nil {
			t.Fatalf("CampaignComparison() error = %v", err)
		}
		if cmp == nil {
			t.Fatal("CampaignComparison() returned nil")
		}
		if cmp.Before.Negative != 1 || cmp.Before.Total != 1 {
			t.Errorf("before = %+v, want the pre-campaign negative", cmp.Before)
		}
		if cmp.During.Positive != 1 || cmp.During.Neutral != 1 || cmp.During.Total != 2 {
			t.Errorf("during = %+v, want the in-window pair", cmp.During)
		}
	})

	t.Run("end campaign", func(t *testing.T) {
		if err := store.EndCampaign(campaign.ID); err != nil {
			t.Fatalf("EndCampaign() error = %v", err)
		}
		// Ending twice is an error.
		if err := store.EndCampaign(campaign.ID); err == nil {
			t.Error("second EndCampaign() expected error")
		}

		campaigns, err := store.ListCampaigns(brand.ID)
		if err != nil {
			t.Fatalf("ListCampaigns() error = %v", err)
		}
		if len(campaigns) != 1 || campaigns[0].EndedAt == nil {
			t.Errorf("campaigns = %+v, want one ended campaign", campaigns)
		}
	})

	t.Run("missing campaign returns nil", func(t *testing.T) {
		cmp, err := store.CampaignComparison(9999)
		if err != nil {
			t.Fatalf("CampaignComparison() error = %v", err)
		}
		if cmp != nil {
			t.Errorf("CampaignComparison() = %+v, want nil", cmp)
		}
	})
}

func TestSQLiteStore_BrandStats(t *testing.T) {
	store, clock := newTestStore(t)
	brand := mustCreateBrand(t, store, "acme")

	t.Run("fresh brand", func(t *testing.T) {
		stats, err := store.BrandStats(brand.ID)
		if err != nil {
			t.Fatalf("BrandStats() error = %v", err)
		}
		if stats.TotalSuggestions != 0 || stats.TotalScans != 0 || stats.LastScan != nil {
			t.Errorf("stats = %+v, want zero values", stats)
		}
		if stats.NegativeRatio != 0.0 {
			t.Errorf("NegativeRatio = %v, want 0 for empty history", stats.NegativeRatio)
		}
	})

	t.Run("after scans", func(t *testing.T) {
		snap := mustCreateSnapshot(t, store, brand.ID)
		upsert(t, store, snap, brand.ID, "acme fraud", "negative", 1)
		upsert(t, store, snap, brand.ID, "acme shop", "neutral", 2)

		clock.advance(10 * 24 * time.Hour)
		snap2 := mustCreateSnapshot(t, store, brand.ID)
		upsert(t, store, snap2, brand.ID, "acme scam", "negative", 1)

		stats, err := store.BrandStats(brand.ID)
		if err != nil {
			t.Fatalf("BrandStats() error = %v", err)
		}
		if stats.TotalSuggestions != 3 || stats.TotalScans != 2 {
			t.Errorf("stats = %+v, want 3 suggestions over 2 scans", stats)
		}
		if stats.NegativeCount != 2 || stats.NeutralCount != 1 {
			t.Errorf("counts = %+v, want 2 negative, 1 neutral", stats)
		}
		if stats.NewLast7d != 1 {
			t.Errorf("NewLast7d = %d, want 1", stats.NewLast7d)
		}
		if stats.DisappearedLast7d != 2 {
			t.Errorf("DisappearedLast7d = %d, want 2 (stale day-one rows)", stats.DisappearedLast7d)
		}
		if stats.LastScan == nil {
			t.Error("LastScan should be set")
		}
	})
}
