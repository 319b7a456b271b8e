package pipeline

import (
	"github.com/kadeem-campbell/siteclean/internal/config"
	"github.com/kadeem-campbell/siteclean/internal/routes"
)

// Plan is an immutable execution plan for one cleanup run. It captures the
// resolved inputs and knobs for every stage so the runner itself is
// deterministic.
type Plan struct {
	BuildDir  string
	RenameAll bool
	DryRun    bool

	Rules  *config.AssetRules
	Routes *routes.Table
}

// PlanBuilder constructs a Plan with resolved rule tables.
type PlanBuilder struct {
	plan Plan
}

// NewPlanBuilder creates a builder seeded from config.
func NewPlanBuilder(cfg *config.Config) *PlanBuilder {
	return &PlanBuilder{plan: Plan{Rules: cfg.Rules, Routes: routes.Default()}}
}

// WithBuildDir sets the build output directory the run operates on.
func (b *PlanBuilder) WithBuildDir(dir string) *PlanBuilder {
	b.plan.BuildDir = dir
	return b
}

// WithRenameAll extends rename eligibility to non-asset files.
func (b *PlanBuilder) WithRenameAll(all bool) *PlanBuilder {
	b.plan.RenameAll = all
	return b
}

// WithDryRun selects preview-only mode: every stage reports without mutating.
func (b *PlanBuilder) WithDryRun(dry bool) *PlanBuilder {
	b.plan.DryRun = dry
	return b
}

// WithRoutes overrides the legacy route table.
func (b *PlanBuilder) WithRoutes(t *routes.Table) *PlanBuilder {
	b.plan.Routes = t
	return b
}

// Build finalizes the plan.
func (b *PlanBuilder) Build() Plan {
	if b.plan.Rules == nil {
		b.plan.Rules = config.DefaultAssetRules()
	}
	return b.plan
}
