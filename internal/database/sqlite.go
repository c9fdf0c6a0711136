package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"suggestwatch/internal/database/migrations"
	"suggestwatch/internal/model"
	"suggestwatch/internal/watch"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements the watch.Store interface plus the operator-facing
// brand/campaign/stats operations used by the CLI.
type SQLiteStore struct {
	db    *sql.DB
	clock watch.Clock
	path  string
}

// NewSQLiteStore opens (or creates) the database at path and migrates it to
// the latest schema. path can be ":memory:" for an in-memory database.
func NewSQLiteStore(path string, clock watch.Clock) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	if clock == nil {
		clock = watch.RealClock{}
	}

	return &SQLiteStore{db: db, clock: clock, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection with the PRAGMAs
// the store relies on. Exported for tools and tests.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Foreign keys are OFF by default in SQLite for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// now returns the current time in UTC truncated to whole seconds, keeping
// every stored timestamp in one comparable format.
func (s *SQLiteStore) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Second)
}

// Brand operations

// CreateBrand registers a new brand. The name must be unique.
func (s *SQLiteStore) CreateBrand(name string, keywords []string, language, country string, expandAZ, expandTurkish bool) (*model.Brand, error) {
	kw, err := json.Marshal(keywords)
	if err != nil {
		return nil, fmt.Errorf("encoding keywords: %w", err)
	}

	createdAt := s.now()
	res, err := s.db.Exec(
		`INSERT INTO brands (name, keywords, language, country, expand_az, expand_turkish, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, 1, ?)`,
		name, string(kw), language, country, expandAZ, expandTurkish, createdAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("brand %q already exists", name)
		}
		return nil, fmt.Errorf("creating brand: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading brand id: %w", err)
	}

	return &model.Brand{
		ID:            id,
		Name:          name,
		Keywords:      keywords,
		Language:      language,
		Country:       country,
		ExpandAZ:      expandAZ,
		ExpandTurkish: expandTurkish,
		Active:        true,
		CreatedAt:     createdAt,
	}, nil
}

func (s *SQLiteStore) BrandByID(id int64) (*model.Brand, error) {
	row := s.db.QueryRow(`SELECT id, name, keywords, language, country, expand_az, expand_turkish, active, created_at
		FROM brands WHERE id = ?`, id)
	return scanBrand(row)
}

func (s *SQLiteStore) BrandByName(name string) (*model.Brand, error) {
	row := s.db.QueryRow(`SELECT id, name, keywords, language, country, expand_az, expand_turkish, active, created_at
		FROM brands WHERE name = ?`, name)
	return scanBrand(row)
}

// ListBrands returns every brand, inactive ones included, by creation order.
func (s *SQLiteStore) ListBrands() ([]model.Brand, error) {
	return s.queryBrands(`SELECT id, name, keywords, language, country, expand_az, expand_turkish, active, created_at
		FROM brands ORDER BY id`)
}

// ActiveBrands returns only brands not soft-deactivated.
func (s *SQLiteStore) ActiveBrands() ([]model.Brand, error) {
	return s.queryBrands(`SELECT id, name, keywords, language, country, expand_az, expand_turkish, active, created_at
		FROM brands WHERE active = 1 ORDER BY id`)
}

// UpdateBrand rewrites the editable fields of an existing brand.
func (s *SQLiteStore) UpdateBrand(b model.Brand) error {
	kw, err := json.Marshal(b.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}

	res, err := s.db.Exec(
		`UPDATE brands SET name = ?, keywords = ?, language = ?, country = ?,
		 expand_az = ?, expand_turkish = ?, active = ? WHERE id = ?`,
		b.Name, string(kw), b.Language, b.Country, b.ExpandAZ, b.ExpandTurkish, b.Active, b.ID)
	if err != nil {
		return fmt.Errorf("updating brand: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("brand %d not found", b.ID)
	}
	return nil
}

// DeactivateBrand soft-deletes a brand. History is preserved.
func (s *SQLiteStore) DeactivateBrand(id int64) error {
	res, err := s.db.Exec(`UPDATE brands SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivating brand: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("brand %d not found", id)
	}
	return nil
}

// Snapshot operations

// CreateSnapshot appends one immutable collection-run record and returns its
// ID. The row is committed as a single unit before any suggestion upsert
// references it.
func (s *SQLiteStore) CreateSnapshot(brandID int64, source string, queries []string, results []model.QueryResult) (int64, error) {
	q, err := json.Marshal(queries)
	if err != nil {
		return 0, fmt.Errorf("encoding queries: %w", err)
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return 0, fmt.Errorf("encoding raw results: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO snapshots (brand_id, source, taken_at, queries, raw_data) VALUES (?, ?, ?, ?, ?)`,
		brandID, source, s.now(), string(q), string(raw))
	if err != nil {
		return 0, fmt.Errorf("creating snapshot: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading snapshot id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) LatestSnapshot(brandID int64) (*model.Snapshot, error) {
	row := s.db.QueryRow(
		`SELECT id, brand_id, source, taken_at, queries, raw_data
		 FROM snapshots WHERE brand_id = ? ORDER BY id DESC LIMIT 1`, brandID)

	var snap model.Snapshot
	var queries string
	err := row.Scan(&snap.ID, &snap.BrandID, &snap.Source, &snap.TakenAt, &queries, &snap.RawData)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // No scan has happened yet
	}
	if err != nil {
		return nil, fmt.Errorf("finding latest snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(queries), &snap.Queries); err != nil {
		return nil, fmt.Errorf("decoding snapshot queries: %w", err)
	}
	return &snap, nil
}

// Suggestion operations

// UpsertSuggestion applies the insert-vs-update rule inside one transaction:
// a new (brand, text) pair is inserted with times_seen=1 and
// first_seen=last_seen=now; an existing pair gets rank/sentiment/last_seen
// refreshed and times_seen incremented, with first_seen left untouched.
func (s *SQLiteStore) UpsertSuggestion(p watch.UpsertParams) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	now := s.now()

	var id, timesSeen int64
	err = tx.QueryRow(`SELECT id, times_seen FROM suggestions WHERE brand_id = ? AND text = ?`,
		p.BrandID, p.Text).Scan(&id, &timesSeen)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.Exec(
			`INSERT INTO suggestions (snapshot_id, brand_id, text, rank, sentiment, sentiment_score, category, first_seen, last_seen, times_seen)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
			p.SnapshotID, p.BrandID, p.Text, p.Rank, p.Sentiment, p.Score, p.Category, now, now)
		if err != nil {
			return 0, fmt.Errorf("inserting suggestion: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading suggestion id: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("finding existing suggestion: %w", err)
	default:
		_, err = tx.Exec(
			`UPDATE suggestions SET snapshot_id = ?, rank = ?, sentiment = ?, sentiment_score = ?,
			 category = ?, last_seen = ?, times_seen = ? WHERE id = ?`,
			p.SnapshotID, p.Rank, p.Sentiment, p.Score, p.Category, now, timesSeen+1, id)
		if err != nil {
			return 0, fmt.Errorf("updating suggestion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return id, nil
}

// CurrentSuggestions returns the live per-text rows for a brand, most
// recently seen first, optionally filtered by sentiment or recency.
func (s *SQLiteStore) CurrentSuggestions(brandID int64, filter watch.SuggestionFilter) ([]model.Suggestion, error) {
	query := `SELECT id, snapshot_id, brand_id, text, rank, sentiment, sentiment_score, category, first_seen, last_seen, times_seen
		FROM suggestions WHERE brand_id = ?`
	args := []any{brandID}

	if filter.Sentiment != "" {
		query += ` AND sentiment = ?`
		args = append(args, filter.Sentiment)
	}
	if filter.MinLastSeen != nil {
		query += ` AND datetime(last_seen) >= datetime(?)`
		args = append(args, filter.MinLastSeen.UTC())
	}
	query += ` ORDER BY datetime(last_seen) DESC, id`

	return s.querySuggestions(query, args...)
}

// SuggestionsFirstSeenSince returns rows first observed at or after cutoff,
// newest first.
func (s *SQLiteStore) SuggestionsFirstSeenSince(brandID int64, cutoff time.Time) ([]model.Suggestion, error) {
	return s.querySuggestions(
		`SELECT id, snapshot_id, brand_id, text, rank, sentiment, sentiment_score, category, first_seen, last_seen, times_seen
		 FROM suggestions WHERE brand_id = ? AND datetime(first_seen) >= datetime(?)
		 ORDER BY datetime(first_seen) DESC, id`,
		brandID, cutoff.UTC())
}

// SuggestionsNotSeenSince returns rows whose last_seen predates cutoff.
// Staleness semantics: a row scanned once, long ago, qualifies even if no
// rescan has confirmed its absence since.
func (s *SQLiteStore) SuggestionsNotSeenSince(brandID int64, cutoff time.Time) ([]model.Suggestion, error) {
	return s.querySuggestions(
		`SELECT id, snapshot_id, brand_id, text, rank, sentiment, sentiment_score, category, first_seen, last_seen, times_seen
		 FROM suggestions WHERE brand_id = ? AND datetime(last_seen) < datetime(?)
		 ORDER BY datetime(last_seen) DESC, id`,
		brandID, cutoff.UTC())
}

// DailySentimentCounts buckets suggestions by the date component of
// first_seen over the last windowDays, ordered chronologically. Days with no
// recorded suggestions produce no row.
func (s *SQLiteStore) DailySentimentCounts(brandID int64, windowDays int) ([]model.DailySentimentCount, error) {
	cutoff := s.now().AddDate(0, 0, -windowDays).Format("2006-01-02")

	rows, err := s.db.Query(
		`SELECT DATE(first_seen) AS day,
		        SUM(CASE WHEN sentiment = 'negative' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN sentiment = 'positive' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN sentiment = 'neutral'  THEN 1 ELSE 0 END),
		        COUNT(*)
		 FROM suggestions
		 WHERE brand_id = ? AND DATE(first_seen) >= ?
		 GROUP BY DATE(first_seen)
		 ORDER BY DATE(first_seen)`,
		brandID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying daily sentiment counts: %w", err)
	}
	defer rows.Close()

	var counts []model.DailySentimentCount
	for rows.Next() {
		var c model.DailySentimentCount
		if err := rows.Scan(&c.Date, &c.Negative, &c.Positive, &c.Neutral, &c.Total); err != nil {
			return nil, fmt.Errorf("scanning daily sentiment count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading daily sentiment counts: %w", err)
	}
	return counts, nil
}

// TopNegativeSuggestions returns the most frequently confirmed negative
// suggestions for a brand.
func (s *SQLiteStore) TopNegativeSuggestions(brandID int64, limit int) ([]model.Suggestion, error) {
	return s.querySuggestions(
		`SELECT id, snapshot_id, brand_id, text, rank, sentiment, sentiment_score, category, first_seen, last_seen, times_seen
		 FROM suggestions WHERE brand_id = ? AND sentiment = 'negative'
		 ORDER BY times_seen DESC, datetime(last_seen) DESC LIMIT ?`,
		brandID, limit)
}

// RecordAlert appends one alert delivery attempt to the audit log.
func (s *SQLiteStore) RecordAlert(brandID int64, channel string, payload []model.NewNegative, success bool, deliveryErr string) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding alert payload: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO alerts (brand_id, channel, payload, success, error, sent_at) VALUES (?, ?, ?, ?, ?, ?)`,
		brandID, channel, string(raw), success, deliveryErr, s.now())
	if err != nil {
		return fmt.Errorf("recording alert: %w", err)
	}
	return nil
}

// Campaign operations

// CreateCampaign opens a campaign window for a brand starting now.
func (s *SQLiteStore) CreateCampaign(brandID int64, name, notes string) (*model.Campaign, error) {
	startedAt := s.now()
	res, err := s.db.Exec(
		`INSERT INTO campaigns (brand_id, name, started_at, notes) VALUES (?, ?, ?, ?)`,
		brandID, name, startedAt, notes)
	if err != nil {
		return nil, fmt.Errorf("creating campaign: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading campaign id: %w", err)
	}
	return &model.Campaign{ID: id, BrandID: brandID, Name: name, StartedAt: startedAt, Notes: notes}, nil
}

// EndCampaign closes a running campaign. Ending an already-ended campaign
// is an error; the window boundaries are operator decisions, not system ones.
func (s *SQLiteStore) EndCampaign(id int64) error {
	res, err := s.db.Exec(`UPDATE campaigns SET ended_at = ? WHERE id = ? AND ended_at IS NULL`,
		s.now(), id)
	if err != nil {
		return fmt.Errorf("ending campaign: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("campaign %d not found or already ended", id)
	}
	return nil
}

// ListCampaigns returns campaigns newest first, optionally for one brand
// (brandID 0 = all brands).
func (s *SQLiteStore) ListCampaigns(brandID int64) ([]model.Campaign, error) {
	query := `SELECT id, brand_id, name, started_at, ended_at, COALESCE(notes, '')
		FROM campaigns`
	var args []any
	if brandID != 0 {
		query += ` WHERE brand_id = ?`
		args = append(args, brandID)
	}
	query += ` ORDER BY datetime(started_at) DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []model.Campaign
	for rows.Next() {
		var c model.Campaign
		var endedAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.BrandID, &c.Name, &c.StartedAt, &endedAt, &c.Notes); err != nil {
			return nil, fmt.Errorf("scanning campaign: %w", err)
		}
		if endedAt.Valid {
			t := endedAt.Time
			c.EndedAt = &t
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading campaigns: %w", err)
	}
	return campaigns, nil
}

// CampaignComparison returns sentiment counts before the campaign started
// versus during its window. A running campaign's window extends to now.
func (s *SQLiteStore) CampaignComparison(id int64) (*model.CampaignComparison, error) {
	row := s.db.QueryRow(
		`SELECT id, brand_id, name, started_at, ended_at, COALESCE(notes, '')
		 FROM campaigns WHERE id = ?`, id)

	var c model.Campaign
	var endedAt sql.NullTime
	err := row.Scan(&c.ID, &c.BrandID, &c.Name, &c.StartedAt, &endedAt, &c.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding campaign: %w", err)
	}

	end := s.now()
	if endedAt.Valid {
		t := endedAt.Time
		c.EndedAt = &t
		end = t
	}

	before, err := s.sentimentCountsWhere(c.BrandID, `datetime(first_seen) < datetime(?)`, c.StartedAt)
	if err != nil {
		return nil, err
	}
	during, err := s.sentimentCountsWhere(c.BrandID,
		`datetime(first_seen) >= datetime(?) AND datetime(first_seen) <= datetime(?)`, c.StartedAt, end)
	if err != nil {
		return nil, err
	}

	return &model.CampaignComparison{Campaign: c, Before: before, During: during}, nil
}

// Stats

// BrandStats aggregates the dashboard view of one brand.
func (s *SQLiteStore) BrandStats(brandID int64) (*model.BrandStats, error) {
	counts, err := s.sentimentCountsWhere(brandID, `1 = 1`)
	if err != nil {
		return nil, err
	}

	stats := &model.BrandStats{
		TotalSuggestions: counts.Total,
		NegativeCount:    counts.Negative,
		PositiveCount:    counts.Positive,
		NeutralCount:     counts.Neutral,
	}
	if counts.Total > 0 {
		stats.NegativeRatio = float64(counts.Negative) / float64(counts.Total)
	}

	err = s.db.QueryRow(`SELECT COUNT(*) FROM snapshots WHERE brand_id = ?`,
		brandID).Scan(&stats.TotalScans)
	if err != nil {
		return nil, fmt.Errorf("counting snapshots: %w", err)
	}

	var lastScan time.Time
	err = s.db.QueryRow(`SELECT taken_at FROM snapshots WHERE brand_id = ? ORDER BY id DESC LIMIT 1`,
		brandID).Scan(&lastScan)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Never scanned
	case err != nil:
		return nil, fmt.Errorf("querying last scan: %w", err)
	default:
		stats.LastScan = &lastScan
	}

	cutoff := s.now().AddDate(0, 0, -7)
	err = s.db.QueryRow(`SELECT COUNT(*) FROM suggestions WHERE brand_id = ? AND datetime(first_seen) >= datetime(?)`,
		brandID, cutoff).Scan(&stats.NewLast7d)
	if err != nil {
		return nil, fmt.Errorf("querying recent suggestions: %w", err)
	}
	err = s.db.QueryRow(`SELECT COUNT(*) FROM suggestions WHERE brand_id = ? AND datetime(last_seen) < datetime(?)`,
		brandID, cutoff).Scan(&stats.DisappearedLast7d)
	if err != nil {
		return nil, fmt.Errorf("querying stale suggestions: %w", err)
	}

	return stats, nil
}

// helpers

func (s *SQLiteStore) sentimentCountsWhere(brandID int64, clause string, args ...any) (model.SentimentCounts, error) {
	query := `SELECT
		SUM(CASE WHEN sentiment = 'negative' THEN 1 ELSE 0 END),
		SUM(CASE WHEN sentiment = 'positive' THEN 1 ELSE 0 END),
		SUM(CASE WHEN sentiment = 'neutral'  THEN 1 ELSE 0 END),
		COUNT(*)
		FROM suggestions WHERE brand_id = ? AND ` + clause

	var c model.SentimentCounts
	var neg, pos, neu sql.NullInt64
	err := s.db.QueryRow(query, append([]any{brandID}, args...)...).Scan(&neg, &pos, &neu, &c.Total)
	if err != nil {
		return c, fmt.Errorf("querying sentiment counts: %w", err)
	}
	c.Negative, c.Positive, c.Neutral = neg.Int64, pos.Int64, neu.Int64
	return c, nil
}

func (s *SQLiteStore) queryBrands(query string, args ...any) ([]model.Brand, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying brands: %w", err)
	}
	defer rows.Close()

	var brands []model.Brand
	for rows.Next() {
		b, err := scanBrandRow(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading brands: %w", err)
	}
	return brands, nil
}

func (s *SQLiteStore) querySuggestions(query string, args ...any) ([]model.Suggestion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []model.Suggestion
	for rows.Next() {
		var sg model.Suggestion
		var rank sql.NullInt64
		var sentiment, category sql.NullString
		err := rows.Scan(&sg.ID, &sg.SnapshotID, &sg.BrandID, &sg.Text, &rank,
			&sentiment, &sg.Score, &category, &sg.FirstSeen, &sg.LastSeen, &sg.TimesSeen)
		if err != nil {
			return nil, fmt.Errorf("scanning suggestion: %w", err)
		}
		if rank.Valid {
			r := rank.Int64
			sg.Rank = &r
		}
		sg.Sentiment = sentiment.String
		sg.Category = category.String
		suggestions = append(suggestions, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading suggestions: %w", err)
	}
	return suggestions, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBrand(row *sql.Row) (*model.Brand, error) {
	b, err := scanBrandRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return b, nil
}

func scanBrandRow(r rowScanner) (*model.Brand, error) {
	var b model.Brand
	var keywords string
	err := r.Scan(&b.ID, &b.Name, &keywords, &b.Language, &b.Country,
		&b.ExpandAZ, &b.ExpandTurkish, &b.Active, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning brand: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &b.Keywords); err != nil {
		return nil, fmt.Errorf("decoding brand keywords: %w", err)
	}
	return &b, nil
}

// Path returns the database file path (or ":memory:").
func (s *SQLiteStore) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteStore implements the watch.Store interface.
var _ watch.Store = (*SQLiteStore)(nil)
