package server

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/config"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/skills"
)

// Tenants maps tenant names to their pipeline runners. Every tenant has its own engine,
// so weights, caches and histories never mix.
type Tenants struct {
	defaultRunner *pipeline.Runner
	runners       map[string]*pipeline.Runner
}

// NewTenants creates a registry. Tenant names are case-insensitive.
func NewTenants(defaultRunner *pipeline.Runner, runners map[string]*pipeline.Runner) *Tenants {
	t := &Tenants{defaultRunner: defaultRunner, runners: make(map[string]*pipeline.Runner, len(runners))}
	for name, r := range runners {
		t.runners[strings.ToLower(name)] = r
	}
	return t
}

// Lookup returns the runner for tenant. "" selects the default runner.
func (t *Tenants) Lookup(tenant string) (*pipeline.Runner, bool) {
	if tenant == "" {
		return t.defaultRunner, t.defaultRunner != nil
	}
	r, ok := t.runners[strings.ToLower(tenant)]
	return r, ok
}

// Names returns the configured tenant names in sorted order.
func (t *Tenants) Names() []string {
	names := make([]string, 0, len(t.runners))
	for name := range t.runners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TenantDeps are shared by every tenant engine.
type TenantDeps struct {
	Taxonomy *skills.Taxonomy
	Patterns *skills.IndustryPatterns
	Store    pipeline.Store
	Logger   *zap.Logger
	// Progress receives pipeline step events from every runner.
	Progress pipeline.ProgressCallback
}

// BuildTenants creates the default engine and one engine per configured tenant.
func BuildTenants(cfg *config.Config, deps TenantDeps) (*Tenants, error) {
	build := func(name string, opts []scoring.Option) (*pipeline.Runner, error) {
		weights := cfg.Weights
		if name != "" {
			weights = cfg.Tenants[name]
		}
		engine, err := scoring.NewEngine(weights, opts...)
		if err != nil {
			return nil, fmt.Errorf("tenant %q: %w", name, err)
		}
		runnerOpts := []pipeline.Option{
			pipeline.WithDefaultIndustry(cfg.DefaultIndustry),
		}
		if deps.Logger != nil {
			runnerOpts = append(runnerOpts, pipeline.WithLogger(deps.Logger.With(zap.String("tenant", name))))
		}
		if deps.Store != nil {
			runnerOpts = append(runnerOpts, pipeline.WithStore(deps.Store))
		}
		if deps.Progress != nil {
			runnerOpts = append(runnerOpts, pipeline.WithProgress(deps.Progress))
		}
		return pipeline.NewRunner(engine, runnerOpts...)
	}

	var opts []scoring.Option
	if deps.Taxonomy != nil {
		opts = append(opts, scoring.WithTaxonomy(deps.Taxonomy))
	}
	if deps.Patterns != nil {
		opts = append(opts, scoring.WithIndustryPatterns(deps.Patterns))
	}
	if deps.Logger != nil {
		opts = append(opts, scoring.WithLogger(deps.Logger))
	}

	defaultRunner, err := build("", opts)
	if err != nil {
		return nil, err
	}
	runners := make(map[string]*pipeline.Runner, len(cfg.Tenants))
	for name := range cfg.Tenants {
		r, err := build(name, opts)
		if err != nil {
			return nil, err
		}
		runners[name] = r
	}
	return NewTenants(defaultRunner, runners), nil
}
