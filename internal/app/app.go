package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"suggestwatch/internal/collector"
	"suggestwatch/internal/config"
	"suggestwatch/internal/database"
	"suggestwatch/internal/model"
	"suggestwatch/internal/notify"
	"suggestwatch/internal/sentiment"
	"suggestwatch/internal/watch"
)

// App is the application layer between the CLI and the watch service.
// It constructs all dependencies from config, exposes high-level operations
// that accept brand names instead of IDs, and manages the DB lifecycle on
// Close.
type App struct {
	cfg     *config.Config
	store   *database.SQLiteStore
	scanner *watch.Scanner
	trends  *watch.TrendDetector
	logger  watch.Logger
	logFile *os.File
}

// NewApp creates a fully wired App from the given config. operation
// identifies the CLI command being run (e.g. "scan", "trends"). The caller
// must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", problems[0])
	}

	defaults, err := GetDefaults()
	if err != nil {
		return nil, err
	}

	opID := fmt.Sprintf("%s-%s", operation, uuid.NewString()[:8])
	logger, logFile, err := newLogger(defaults["log_dir"], opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	store, err := database.NewSQLiteStore(cfg.Settings.Database, watch.RealClock{})
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	requestDelay := time.Duration(cfg.Settings.RequestDelay * float64(time.Second))
	client := collector.NewAutocompleteClient(collector.Config{
		UserAgent:    cfg.Settings.UserAgent,
		RequestDelay: requestDelay,
		MaxWorkers:   cfg.Settings.MaxWorkers,
	})

	analyzer := sentiment.NewAnalyzer(sentiment.DefaultLexicon())
	notifiers := notify.FromConfig(cfg.Notifications)
	adapter := &slogAdapter{l: logger}

	scanner := watch.NewScanner(store, client, analyzer, notifiers, adapter, watch.RealClock{},
		requestDelay, cfg.Settings.MaxWorkers)
	trends := watch.NewTrendDetector(store, watch.RealClock{})

	return &App{
		cfg:     cfg,
		store:   store,
		scanner: scanner,
		trends:  trends,
		logger:  adapter,
		logFile: logFile,
	}, nil
}

// brand resolves a brand name to its record, turning absence into an error.
func (a *App) brand(name string) (*model.Brand, error) {
	brand, err := a.store.BrandByName(name)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("brand %q not found", name)
	}
	return brand, nil
}

// AddBrand registers a brand for tracking. With no keywords given the brand
// name itself is the seed keyword.
func (a *App) AddBrand(name string, keywords []string, language, country string, expandAZ, expandTurkish bool) (*model.Brand, error) {
	if len(keywords) == 0 {
		keywords = []string{name}
	}
	if language == "" {
		language = "tr"
	}
	if country == "" {
		country = "TR"
	}
	return a.store.CreateBrand(name, keywords, language, country, expandAZ, expandTurkish)
}

// ListBrands returns every brand, inactive ones included.
func (a *App) ListBrands() ([]model.Brand, error) {
	return a.store.ListBrands()
}

// UpdateBrand rewrites the editable fields of the named brand. Nil or
// zero-valued arguments leave the corresponding field unchanged.
func (a *App) UpdateBrand(name string, keywords []string, language, country string, active *bool) (*model.Brand, error) {
	brand, err := a.brand(name)
	if err != nil {
		return nil, err
	}

	if len(keywords) > 0 {
		brand.Keywords = keywords
	}
	if language != "" {
		brand.Language = language
	}
	if country != "" {
		brand.Country = country
	}
	if active != nil {
		brand.Active = *active
	}

	if err := a.store.UpdateBrand(*brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeactivateBrand soft-deletes the named brand, preserving its history.
func (a *App) DeactivateBrand(name string) error {
	brand, err := a.brand(name)
	if err != nil {
		return err
	}
	return a.store.DeactivateBrand(brand.ID)
}

// Scan runs a full scan cycle for one named brand.
func (a *App) Scan(ctx context.Context, brandName string, progress watch.ProgressFunc) (*watch.ScanReport, error) {
	brand, err := a.brand(brandName)
	if err != nil {
		return nil, err
	}
	return a.scanner.ScanBrand(ctx, *brand, progress)
}

// ScanAll scans every active brand.
func (a *App) ScanAll(ctx context.Context, progress watch.ProgressFunc) ([]watch.ScanReport, error) {
	return a.scanner.ScanAll(ctx, progress)
}

// Estimate predicts the query count and duration of scanning one brand.
func (a *App) Estimate(brandName string) (*watch.Estimate, error) {
	brand, err := a.brand(brandName)
	if err != nil {
		return nil, err
	}
	est := a.scanner.Estimate(*brand)
	return &est, nil
}

// Trends derives the trend signals for one brand over the given ratio
// window (0 = default).
func (a *App) Trends(brandName string, windowDays int) (*model.TrendReport, error) {
	brand, err := a.brand(brandName)
	if err != nil {
		return nil, err
	}
	return a.trends.Detect(brand.ID, windowDays)
}

// Stats returns the aggregate dashboard view of one brand.
func (a *App) Stats(brandName string) (*model.BrandStats, error) {
	brand, err := a.brand(brandName)
	if err != nil {
		return nil, err
	}
	return a.store.BrandStats(brand.ID)
}

// TopNegatives returns the most frequently confirmed negative suggestions
// for one brand.
func (a *App) TopNegatives(brandName string, limit int) ([]model.Suggestion, error) {
	brand, err := a.brand(brandName)
	if err != nil {
		return nil, err
	}
	return a.store.TopNegativeSuggestions(brand.ID, limit)
}

// StartCampaign opens a campaign window for the named brand.
func (a *App) StartCampaign(brandName, name, notes string) (*model.Campaign, error) {
	brand, err := a.brand(brandName)
	if err != nil {
		return nil, err
	}
	return a.store.CreateCampaign(brand.ID, name, notes)
}

// EndCampaign closes a running campaign.
func (a *App) EndCampaign(id int64) error {
	return a.store.EndCampaign(id)
}

// ListCampaigns lists campaigns, optionally restricted to one brand
// (empty name = all brands).
func (a *App) ListCampaigns(brandName string) ([]model.Campaign, error) {
	var brandID int64
	if brandName != "" {
		brand, err := a.brand(brandName)
		if err != nil {
			return nil, err
		}
		brandID = brand.ID
	}
	return a.store.ListCampaigns(brandID)
}

// CompareCampaign returns sentiment counts before versus during a campaign.
func (a *App) CompareCampaign(id int64) (*model.CampaignComparison, error) {
	cmp, err := a.store.CampaignComparison(id)
	if err != nil {
		return nil, err
	}
	if cmp == nil {
		return nil, fmt.Errorf("campaign %d not found", id)
	}
	return cmp, nil
}

// Close releases the database and log file.
func (a *App) Close() error {
	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
