// ssolint - SSO vendor pricing lint
//
// Usage:
//   ssolint validate [--fail-on-warnings] [--format table|json] [paths...]
//   ssolint suggest [paths...]
//   ssolint links [--timeout 15s] [paths...]
//   ssolint stale [--days 730] [paths...]
//   ssolint migrate [paths...]
//   ssolint watch [dirs...]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"ssolint/engine/validate"
	"ssolint/internal/linkcheck"
	"ssolint/internal/migrate"
	"ssolint/internal/report"
	"ssolint/internal/stale"
	"ssolint/internal/vendordir"
	"ssolint/internal/watch"
	"ssolint/pkg/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "ssolint",
		Usage:   "Validate crowd-sourced SSO vendor pricing records",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"SSOLINT_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "vendor-dir",
				Value:   "_vendors",
				Usage:   "Default directory of vendor YAML files",
				EnvVars: []string{"SSOLINT_VENDOR_DIR"},
			},
		},

		Before: func(c *cli.Context) error {
			platform.InitLogger(c.String("log-level"))
			return nil
		},

		Commands: []*cli.Command{
			validateCommand(),
			suggestCommand(),
			linksCommand(),
			staleCommand(),
			migrateCommand(),
			watchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// collectArgs expands the positional args (or the default vendor dir) into
// vendor files, reporting skipped paths like the legacy tooling did.
func collectArgs(c *cli.Context) []string {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		paths = []string{c.String("vendor-dir")}
	}

	files, skipped := vendordir.Collect(paths)
	for _, path := range skipped {
		fmt.Fprintf(os.Stderr, "Skipping invalid path: %s\n", path)
	}
	return files
}

// =============================================================================
// VALIDATE COMMAND
// =============================================================================

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate vendor pricing records",
		ArgsUsage: "[files, directories or globs]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fail-on-warnings",
				Usage: "Exit non-zero when any record carries warnings",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json)",
			},
		},
		Action: runValidate,
	}
}

func runValidate(c *cli.Context) error {
	files := collectArgs(c)
	engine := validate.NewEngine()

	results := make([]report.FileResult, 0, len(files))
	for _, path := range files {
		results = append(results, report.FileResult{Path: path, Result: engine.ValidateFile(path)})
	}
	summary := report.BuildSummary(results)

	reporter := report.NewReporter(os.Stdout)
	if c.String("format") == "json" {
		if err := reporter.PrintJSON(results, summary); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	} else {
		for _, fr := range results {
			reporter.PrintFile(fr)
		}
		reporter.PrintSummary(summary)
	}

	if summary.FilesWithErrors > 0 {
		return cli.Exit("", 1)
	}
	if c.Bool("fail-on-warnings") && summary.FilesWithWarnings > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// =============================================================================
// SUGGEST COMMAND
// =============================================================================

func suggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Print proposed patches for derivable fields (never writes)",
		ArgsUsage: "[files, directories or globs]",
		Action:    runSuggest,
	}
}

func runSuggest(c *cli.Context) error {
	files := collectArgs(c)
	engine := validate.NewEngine()

	total := 0
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", path, err)
			continue
		}
		suggestions, err := engine.Suggest(content)
		if err != nil {
			continue // unparsable records are validate's business
		}
		for _, s := range suggestions {
			fmt.Printf("%s: add `%s`\n", path, s.Line)
			total++
		}
	}

	fmt.Fprintf(os.Stderr, "\n%d suggestion(s) across %d file(s).\n", total, len(files))
	return nil
}

// =============================================================================
// LINKS COMMAND
// =============================================================================

func linksCommand() *cli.Command {
	return &cli.Command{
		Name:      "links",
		Usage:     "Check that pricing_source URLs are reachable",
		ArgsUsage: "[files, directories or globs]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Value: linkcheck.DefaultTimeout,
				Usage: "Per-request timeout",
			},
			&cli.IntFlag{
				Name:  "delay-ms",
				Value: platform.GetEnvInt("SSOLINT_LINK_DELAY_MS", 300),
				Usage: "Pause between URL probes in milliseconds",
			},
		},
		Action: runLinks,
	}
}

func runLinks(c *cli.Context) error {
	files := collectArgs(c)
	if len(files) == 0 {
		fmt.Println("No vendor files found.")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checker := linkcheck.NewChecker(c.Duration("timeout")).
		WithDelay(time.Duration(c.Int("delay-ms")) * time.Millisecond)

	total := 0
	dead, err := checker.CheckFiles(ctx, files, func(lr linkcheck.LinkResult) {
		total++
		if lr.Result.Dead() {
			fmt.Printf("  DEAD  %s: %s (%s)\n", lr.Vendor, lr.URL, lr.Result.Reason())
		} else {
			fmt.Printf("  OK    %s: %s (%d)\n", lr.Vendor, lr.URL, lr.Result.Status)
		}
	})
	if err != nil {
		return fmt.Errorf("link check aborted: %w", err)
	}

	fmt.Printf("\nChecked %d URL(s) across %d vendor file(s).\n", total, len(files))
	if len(dead) > 0 {
		fmt.Printf("%d dead link(s) found.\n", len(dead))
		return cli.Exit("", 1)
	}
	fmt.Println("All links OK.")
	return nil
}

// =============================================================================
// STALE COMMAND
// =============================================================================

func staleCommand() *cli.Command {
	return &cli.Command{
		Name:      "stale",
		Usage:     "List vendors whose updated_at exceeds the age threshold",
		ArgsUsage: "[files, directories or globs]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "days",
				Value:   stale.DefaultThresholdDays,
				Usage:   "Staleness threshold in days",
				EnvVars: []string{"SSOLINT_STALE_DAYS"},
			},
		},
		Action: runStale,
	}
}

func runStale(c *cli.Context) error {
	files := collectArgs(c)
	days := c.Int("days")

	scanner := stale.NewScanner()
	entries := scanner.Scan(files, days)

	if len(entries) == 0 {
		fmt.Printf("No vendors older than %d days. All up to date.\n", days)
		return nil
	}

	cutoff := scanner.Cutoff(days)
	fmt.Printf("Found %d vendor(s) not updated since %s (%d days ago):\n\n",
		len(entries), cutoff.Format("2006-01-02"), days)
	for _, e := range entries {
		fmt.Printf("  %s  %s  (%s)\n", e.UpdatedAt.Format("2006-01-02"), e.Name, e.Path)
	}
	return nil
}

// =============================================================================
// MIGRATE COMMAND
// =============================================================================

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "Rewrite legacy footnotes/pricing_note fields (one-time)",
		ArgsUsage: "[files, directories or globs]",
		Action:    runMigrate,
	}
}

func runMigrate(c *cli.Context) error {
	files := collectArgs(c)

	migrated := 0
	for _, path := range files {
		changed, err := migrate.File(path)
		if err != nil {
			return fmt.Errorf("failed to migrate %s: %w", path, err)
		}
		if changed {
			fmt.Printf("  migrated: %s\n", path)
			migrated++
		}
	}

	fmt.Printf("\nDone. %d/%d files updated.\n", migrated, len(files))
	return nil
}

// =============================================================================
// WATCH COMMAND
// =============================================================================

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Revalidate vendor records as they change",
		ArgsUsage: "[directories]",
		Action:    runWatch,
	}
}

func runWatch(c *cli.Context) error {
	dirs := c.Args().Slice()
	if len(dirs) == 0 {
		dirs = []string{c.String("vendor-dir")}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := validate.NewEngine()
	reporter := report.NewReporter(os.Stdout)
	logger := slog.Default()

	watcher := watch.New(engine, logger)
	err := watcher.Run(ctx, dirs, func(path string, res *validate.Result) {
		reporter.PrintFile(report.FileResult{Path: path, Result: res})
		if res.Valid && len(res.Warnings) == 0 {
			logger.Info("record valid", "file", path)
		}
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
