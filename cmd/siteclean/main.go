package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/kadeem-campbell/siteclean/internal/audit"
	"github.com/kadeem-campbell/siteclean/internal/config"
	"github.com/kadeem-campbell/siteclean/internal/history"
	"github.com/kadeem-campbell/siteclean/internal/observability"
	"github.com/kadeem-campbell/siteclean/internal/pipeline"
	"github.com/kadeem-campbell/siteclean/internal/rename"
	"github.com/kadeem-campbell/siteclean/internal/version"
	"github.com/kadeem-campbell/siteclean/internal/watch"
)

var CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"siteclean.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Ledger  string           `help:"SQLite run ledger path (empty disables recording)" env:"SITECLEAN_LEDGER"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Clean struct {
		SiteRoot  string `arg:"" help:"Source site directory"`
		Out       string `short:"o" help:"Output directory for the cleaned copy" default:"./public"`
		DryRun    bool   `help:"Report planned changes without touching any file"`
		RenameAll bool   `help:"Canonicalize every file name, not just assets"`
		KeepOut   bool   `help:"Refuse to replace an existing output directory"`
	} `cmd:"" help:"Copy the site and normalize file names and references in the copy"`

	Plan struct {
		SiteRoot  string `arg:"" help:"Source site directory"`
		RenameAll bool   `help:"Canonicalize every file name, not just assets"`
	} `cmd:"" help:"Print the rename mapping without changing anything"`

	Audit struct {
		BuildDir string `arg:"" help:"Built site directory to scan"`
		Deep     bool   `help:"Also parse HTML elements and Markdown links"`
	} `cmd:"" help:"List references that are still not root-absolute"`

	Watch struct {
		SiteRoot    string        `arg:"" help:"Source site directory"`
		Out         string        `short:"o" help:"Output directory for the cleaned copy" default:"./public"`
		RenameAll   bool          `help:"Canonicalize every file name, not just assets"`
		Interval    time.Duration `help:"Also rebuild on this fixed interval (0 disables)" default:"0"`
		MetricsAddr string        `help:"Serve Prometheus metrics on this address"`
	} `cmd:"" help:"Rebuild the cleaned copy whenever the source changes"`

	History struct {
		Limit int `help:"Number of runs to show" default:"10"`
	} `cmd:"" help:"Show recent runs from the ledger"`
}

func main() {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI, kong.Vars{"version": version.String()})

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.SetupLogging(cfg.Logging, CLI.Verbose)

	switch ctx.Command() {
	case "clean <site-root>":
		result, err := pipeline.Build(cfg, CLI.Clean.SiteRoot, CLI.Clean.Out, pipeline.BuildOptions{
			RenameAll: CLI.Clean.RenameAll,
			DryRun:    CLI.Clean.DryRun,
			KeepOut:   CLI.Clean.KeepOut,
		})
		if err != nil {
			slog.Error("Clean failed", "error", err)
			os.Exit(1)
		}
		recordRun(result, CLI.Clean.Out, CLI.Clean.DryRun)
		reportResult(result)

	case "plan <site-root>":
		mapping, err := rename.Plan(CLI.Plan.SiteRoot, cfg.Rules, rename.Options{RenameAll: CLI.Plan.RenameAll})
		if err != nil {
			slog.Error("Plan failed", "error", err)
			os.Exit(1)
		}
		printMapping(mapping)

	case "audit <build-dir>":
		findings, err := audit.Scan(CLI.Audit.BuildDir, CLI.Audit.Deep)
		if err != nil {
			slog.Error("Audit failed", "error", err)
			os.Exit(1)
		}
		for _, f := range findings {
			fmt.Printf("%s: %q (%s)\n", f.File, f.Ref, f.Source)
		}
		if len(findings) > 0 {
			slog.Warn("Non-root references remain", "count", len(findings))
			os.Exit(1)
		}
		slog.Info("No non-root references found")

	case "watch <site-root>":
		if err := runWatch(cfg); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(1)
		}

	case "history":
		if err := runHistory(CLI.History.Limit); err != nil {
			slog.Error("History failed", "error", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", ctx.Command())
		os.Exit(1)
	}
}

func runWatch(cfg *config.Config) error {
	w, err := watch.New(cfg, watch.Options{
		SourceDir:   CLI.Watch.SiteRoot,
		OutDir:      CLI.Watch.Out,
		RenameAll:   CLI.Watch.RenameAll,
		Interval:    CLI.Watch.Interval,
		MetricsAddr: CLI.Watch.MetricsAddr,
		OnResult: func(result *pipeline.Result, err error) {
			if err == nil {
				recordRun(result, CLI.Watch.Out, false)
			}
		},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	slog.Info("Watching for changes", "source", CLI.Watch.SiteRoot, "out", CLI.Watch.Out)
	return w.Run(ctx)
}

func runHistory(limit int) error {
	if CLI.Ledger == "" {
		return fmt.Errorf("no ledger configured, set --ledger or SITECLEAN_LEDGER")
	}
	store, err := history.Open(CLI.Ledger)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  renames=%d rewritten=%d dry_run=%t (%s)\n",
			r.StartedAt.Format(time.RFC3339), r.RunID, len(r.Renames), r.Rewritten, r.DryRun, r.Duration)
	}
	return nil
}

// recordRun appends a completed run to the ledger when one is configured.
// Ledger trouble never fails the run itself.
func recordRun(result *pipeline.Result, buildDir string, dryRun bool) {
	if CLI.Ledger == "" || result == nil {
		return
	}
	store, err := history.Open(CLI.Ledger)
	if err != nil {
		slog.Warn("Failed to open run ledger", "error", err)
		return
	}
	defer store.Close()

	err = store.Append(context.Background(), history.Run{
		RunID:     result.RunID,
		BuildDir:  buildDir,
		DryRun:    dryRun,
		Renames:   result.Mapping,
		Rewritten: len(result.Rewritten),
		StartedAt: result.StartedAt,
		Duration:  result.Duration,
	})
	if err != nil {
		slog.Warn("Failed to record run", "error", err)
	}
}

func reportResult(result *pipeline.Result) {
	printMapping(result.Mapping)
	for _, missing := range result.MissingFiles {
		fmt.Printf("missing: %s\n", missing)
	}
	if result.RedirectsChanged {
		fmt.Println("_redirects: required entries appended")
	}
}

func printMapping(mapping rename.Mapping) {
	sources := make([]string, 0, len(mapping))
	for src := range mapping {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		fmt.Printf("%s -> %s\n", src, mapping[src])
	}
	if len(sources) == 0 {
		fmt.Println("nothing to rename")
	}
}
