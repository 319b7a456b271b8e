// Package pipeline sequences one cleanup run: plan renames, apply them,
// rewrite references, then check deploy structure. The stages run strictly in
// that order — reference resolution depends on the final on-disk layout, so no
// rewriting starts until every rename is applied.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kadeem-campbell/siteclean/internal/deploy"
	"github.com/kadeem-campbell/siteclean/internal/logfields"
	"github.com/kadeem-campbell/siteclean/internal/rename"
	"github.com/kadeem-campbell/siteclean/internal/resolve"
	"github.com/kadeem-campbell/siteclean/internal/rewrite"
)

// Result summarizes one completed run for logging, audit, and the run ledger.
type Result struct {
	RunID            string
	Mapping          rename.Mapping
	Rewritten        []string
	MissingFiles     []string
	RedirectsChanged bool
	StartedAt        time.Time
	Duration         time.Duration
}

// Run executes the plan against its build directory. Per-reference and
// per-file problems degrade to leave-unchanged inside the stages; only
// environment-level I/O errors surface here.
func Run(plan Plan) (*Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	log := slog.With(logfields.RunID(runID), logfields.DryRun(plan.DryRun))

	log.Info("Planning renames", logfields.Stage("plan"), logfields.Path(plan.BuildDir))
	mapping, err := rename.Plan(plan.BuildDir, plan.Rules, rename.Options{RenameAll: plan.RenameAll})
	if err != nil {
		return nil, err
	}
	log.Info("Renames planned", logfields.Stage("plan"), logfields.Count(len(mapping)))

	if err := rename.Apply(plan.BuildDir, mapping, plan.DryRun); err != nil {
		return nil, err
	}

	resolver := resolve.New(plan.Rules, plan.Routes, mapping)
	rewriter := rewrite.New(plan.Rules, resolver, mapping)
	rewritten, err := rewriter.RewriteTree(plan.BuildDir, plan.DryRun)
	if err != nil {
		return nil, err
	}
	log.Info("References rewritten", logfields.Stage("rewrite"), logfields.Count(len(rewritten)))

	missing := deploy.CheckStructure(plan.BuildDir)
	redirectsChanged, err := deploy.TidyRedirects(plan.BuildDir, plan.DryRun)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:            runID,
		Mapping:          mapping,
		Rewritten:        rewritten,
		MissingFiles:     missing,
		RedirectsChanged: redirectsChanged,
		StartedAt:        started,
		Duration:         time.Since(started),
	}
	log.Info("Run complete",
		logfields.Stage("done"),
		logfields.Count(len(mapping)),
		logfields.DurationMS(float64(result.Duration.Milliseconds())),
	)
	return result, nil
}
