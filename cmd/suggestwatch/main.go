package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"suggestwatch/internal/app"
	"suggestwatch/internal/config"
	"suggestwatch/internal/watch"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "scan", "trends").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "suggestwatch",
	Short: "Track brand autocomplete suggestions",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["database"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Database: %s\n", defaults["database"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Database:      %s\n", cfg.Settings.Database)
		fmt.Printf("Request delay: %.1fs\n", cfg.Settings.RequestDelay)
		fmt.Printf("Max workers:   %d\n", cfg.Settings.MaxWorkers)
		fmt.Printf("Telegram:      %v\n", cfg.Notifications.Telegram.Enabled)
		fmt.Printf("Slack:         %v\n", cfg.Notifications.Slack.Enabled)
		fmt.Printf("Webhook:       %v\n", cfg.Notifications.Webhook.Enabled)

		if problems := cfg.Validate(); len(problems) > 0 {
			fmt.Println("\nProblems:")
			for _, p := range problems {
				fmt.Printf("  - %s\n", p)
			}
		}
		return nil
	},
}

// brand command
var brandCmd = &cobra.Command{
	Use:   "brand",
	Short: "Manage tracked brands",
}

var brandAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Register a brand for tracking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords, _ := cmd.Flags().GetString("keywords")
		language, _ := cmd.Flags().GetString("language")
		country, _ := cmd.Flags().GetString("country")
		noAZ, _ := cmd.Flags().GetBool("no-az")
		noTurkish, _ := cmd.Flags().GetBool("no-turkish")

		a, err := newApp("brand-add")
		if err != nil {
			return err
		}
		defer a.Close()

		brand, err := a.AddBrand(args[0], splitKeywords(keywords), language, country, !noAZ, !noTurkish)
		if err != nil {
			return err
		}

		fmt.Printf("Added brand %q (#%d) with keywords: %s\n", brand.Name, brand.ID, strings.Join(brand.Keywords, ", "))
		return nil
	},
}

var brandListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked brands",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("brand-list")
		if err != nil {
			return err
		}
		defer a.Close()

		brands, err := a.ListBrands()
		if err != nil {
			return err
		}

		if len(brands) == 0 {
			fmt.Println("No brands tracked.")
			return nil
		}

		for _, b := range brands {
			status := "active"
			if !b.Active {
				status = "inactive"
			}
			fmt.Printf("#%d  %-20s  %s/%s  %-8s  keywords: %s\n",
				b.ID, b.Name, b.Language, b.Country, status, strings.Join(b.Keywords, ", "))
		}
		return nil
	},
}

var brandUpdateCmd = &cobra.Command{
	Use:   "update NAME",
	Short: "Update a brand's settings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords, _ := cmd.Flags().GetString("keywords")
		language, _ := cmd.Flags().GetString("language")
		country, _ := cmd.Flags().GetString("country")

		var active *bool
		if cmd.Flags().Changed("active") {
			v, _ := cmd.Flags().GetBool("active")
			active = &v
		}

		a, err := newApp("brand-update")
		if err != nil {
			return err
		}
		defer a.Close()

		brand, err := a.UpdateBrand(args[0], splitKeywords(keywords), language, country, active)
		if err != nil {
			return err
		}

		fmt.Printf("Updated brand %q\n", brand.Name)
		return nil
	},
}

var brandDeactivateCmd = &cobra.Command{
	Use:   "deactivate NAME",
	Short: "Stop scanning a brand, keeping its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("brand-deactivate")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeactivateBrand(args[0]); err != nil {
			return err
		}

		fmt.Printf("Deactivated brand %q\n", args[0])
		return nil
	},
}

// scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Collect and reconcile suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		brandName, _ := cmd.Flags().GetString("brand")

		a, err := newApp("scan")
		if err != nil {
			return err
		}
		defer a.Close()

		progress := func(current, total int, label string) {
			fmt.Printf("\r[%d/%d] %-40s", current, total, label)
		}

		if brandName != "" {
			report, err := a.Scan(cmd.Context(), brandName, progress)
			fmt.Println()
			if err != nil {
				return err
			}
			printReport(*report)
			return nil
		}

		reports, err := a.ScanAll(cmd.Context(), progress)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(reports) == 0 {
			fmt.Println("No active brands to scan.")
			return nil
		}
		for _, r := range reports {
			printReport(r)
		}
		return nil
	},
}

func printReport(r watch.ScanReport) {
	if r.Err != "" {
		fmt.Printf("%-20s  FAILED: %s\n", r.BrandName, r.Err)
		return
	}
	fmt.Printf("%-20s  %d suggestions from %d queries  new:%d gone:%d moved:%d  negative:%d (%.0f%%)",
		r.BrandName, r.TotalSuggestions, r.TotalQueries,
		r.Diff.New, r.Diff.Disappeared, r.Diff.Moved,
		r.Sentiment.Negative, r.Sentiment.NegativeRatio*100)
	if r.NewNegatives > 0 {
		fmt.Printf("  ⚠ %d new negative(s)", r.NewNegatives)
	}
	fmt.Println()
}

// trends command
var trendsCmd = &cobra.Command{
	Use:   "trends BRAND",
	Short: "Show trend signals for a brand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		a, err := newApp("trends")
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Trends(args[0], days)
		if err != nil {
			return err
		}

		fmt.Printf("Trends for %s:\n\n", args[0])

		fmt.Printf("Rising negative (%d):\n", len(report.RisingNegative))
		for _, s := range report.RisingNegative {
			fmt.Printf("  %s  (first seen %s)\n", s.Text, s.FirstSeen.Format("2006-01-02"))
		}

		fmt.Printf("\nDeclining negative (%d):\n", len(report.DecliningNegative))
		for _, s := range report.DecliningNegative {
			fmt.Printf("  %s  (last seen %s)\n", s.Text, s.LastSeen.Format("2006-01-02"))
		}

		fmt.Printf("\nPersistent negative (%d):\n", len(report.PersistentNegative))
		for _, s := range report.PersistentNegative {
			fmt.Printf("  %s  (seen %d times)\n", s.Text, s.TimesSeen)
		}

		fmt.Println("\nNegative ratio by day:")
		for _, p := range report.NegativeRatioTrend {
			fmt.Printf("  %s  %.0f%%\n", p.Date, p.Ratio*100)
		}
		return nil
	},
}

// campaign command
var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Manage campaign windows",
}

var campaignStartCmd = &cobra.Command{
	Use:   "start BRAND NAME",
	Short: "Open a campaign window",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, _ := cmd.Flags().GetString("notes")

		a, err := newApp("campaign-start")
		if err != nil {
			return err
		}
		defer a.Close()

		campaign, err := a.StartCampaign(args[0], args[1], notes)
		if err != nil {
			return err
		}

		fmt.Printf("Started campaign #%d %q for %s\n", campaign.ID, campaign.Name, args[0])
		return nil
	},
}

var campaignEndCmd = &cobra.Command{
	Use:   "end ID",
	Short: "Close a running campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid campaign id %q", args[0])
		}

		a, err := newApp("campaign-end")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.EndCampaign(id); err != nil {
			return err
		}

		fmt.Printf("Ended campaign #%d\n", id)
		return nil
	},
}

var campaignListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaigns",
	RunE: func(cmd *cobra.Command, args []string) error {
		brandName, _ := cmd.Flags().GetString("brand")

		a, err := newApp("campaign-list")
		if err != nil {
			return err
		}
		defer a.Close()

		campaigns, err := a.ListCampaigns(brandName)
		if err != nil {
			return err
		}

		if len(campaigns) == 0 {
			fmt.Println("No campaigns recorded.")
			return nil
		}

		for _, c := range campaigns {
			ended := "running"
			if c.EndedAt != nil {
				ended = c.EndedAt.Format("2006-01-02")
			}
			fmt.Printf("#%d  %-20s  brand:%d  %s → %s\n",
				c.ID, c.Name, c.BrandID, c.StartedAt.Format("2006-01-02"), ended)
		}
		return nil
	},
}

var campaignCompareCmd = &cobra.Command{
	Use:   "compare ID",
	Short: "Compare sentiment before versus during a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid campaign id %q", args[0])
		}

		a, err := newApp("campaign-compare")
		if err != nil {
			return err
		}
		defer a.Close()

		cmp, err := a.CompareCampaign(id)
		if err != nil {
			return err
		}

		fmt.Printf("Campaign %q (#%d)\n\n", cmp.Campaign.Name, cmp.Campaign.ID)
		fmt.Printf("%-10s  %8s  %8s\n", "", "before", "during")
		fmt.Printf("%-10s  %8d  %8d\n", "negative", cmp.Before.Negative, cmp.During.Negative)
		fmt.Printf("%-10s  %8d  %8d\n", "positive", cmp.Before.Positive, cmp.During.Positive)
		fmt.Printf("%-10s  %8d  %8d\n", "neutral", cmp.Before.Neutral, cmp.During.Neutral)
		fmt.Printf("%-10s  %8d  %8d\n", "total", cmp.Before.Total, cmp.During.Total)
		return nil
	},
}

// stats command
var statsCmd = &cobra.Command{
	Use:   "stats BRAND",
	Short: "Show aggregate statistics for a brand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("stats")
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.Stats(args[0])
		if err != nil {
			return err
		}

		lastScan := "never"
		if stats.LastScan != nil {
			lastScan = stats.LastScan.Format("2006-01-02 15:04:05")
		}

		fmt.Printf("Stats for %s:\n\n", args[0])
		fmt.Printf("Suggestions:    %d (%d negative, %d positive, %d neutral)\n",
			stats.TotalSuggestions, stats.NegativeCount, stats.PositiveCount, stats.NeutralCount)
		fmt.Printf("Negative ratio: %.0f%%\n", stats.NegativeRatio*100)
		fmt.Printf("Scans:          %d (last: %s)\n", stats.TotalScans, lastScan)
		fmt.Printf("Last 7 days:    %d new, %d disappeared\n", stats.NewLast7d, stats.DisappearedLast7d)

		top, err := a.TopNegatives(args[0], 5)
		if err != nil {
			return err
		}
		if len(top) > 0 {
			fmt.Println("\nTop negative suggestions:")
			for _, s := range top {
				fmt.Printf("  %s  (seen %d times)\n", s.Text, s.TimesSeen)
			}
		}
		return nil
	},
}

// estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate BRAND",
	Short: "Predict the size and duration of a scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("estimate")
		if err != nil {
			return err
		}
		defer a.Close()

		est, err := a.Estimate(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Scanning %s would issue %d queries, taking roughly %.0f seconds\n",
			args[0], est.TotalQueries, est.EstimatedSeconds)
		return nil
	},
}

// splitKeywords parses a comma-separated keyword flag, dropping empties.
func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	var keywords []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// brand subcommands
	brandCmd.AddCommand(brandAddCmd)
	brandAddCmd.Flags().String("keywords", "", "Comma-separated seed keywords (default: the brand name)")
	brandAddCmd.Flags().String("language", "tr", "Autocomplete language")
	brandAddCmd.Flags().String("country", "TR", "Autocomplete country")
	brandAddCmd.Flags().Bool("no-az", false, "Skip a-z query expansion")
	brandAddCmd.Flags().Bool("no-turkish", false, "Skip Turkish letter query expansion")
	brandCmd.AddCommand(brandListCmd)
	brandCmd.AddCommand(brandUpdateCmd)
	brandUpdateCmd.Flags().String("keywords", "", "Comma-separated seed keywords")
	brandUpdateCmd.Flags().String("language", "", "Autocomplete language")
	brandUpdateCmd.Flags().String("country", "", "Autocomplete country")
	brandUpdateCmd.Flags().Bool("active", true, "Set the brand active or inactive")
	brandCmd.AddCommand(brandDeactivateCmd)

	// campaign subcommands
	campaignCmd.AddCommand(campaignStartCmd)
	campaignStartCmd.Flags().String("notes", "", "Free-form campaign notes")
	campaignCmd.AddCommand(campaignEndCmd)
	campaignCmd.AddCommand(campaignListCmd)
	campaignListCmd.Flags().String("brand", "", "Restrict to one brand")
	campaignCmd.AddCommand(campaignCompareCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(brandCmd)
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("brand", "", "Scan a single brand instead of all active brands")
	rootCmd.AddCommand(trendsCmd)
	trendsCmd.Flags().Int("days", 0, "Ratio window in days (default 30)")
	rootCmd.AddCommand(campaignCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(estimateCmd)
}
