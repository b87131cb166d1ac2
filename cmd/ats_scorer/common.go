package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/config"
	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/server"
	"github.com/jonathan/ats-scorer/internal/skills"
)

// loadConfig reads configuration and applies the root logging flags plus any extra
// flag bindings.
func loadConfig(cmd *cobra.Command, bindings map[string]*pflag.Flag) (*config.Config, error) {
	opts := []config.Option{
		config.WithFlag("log.json", cmd.Flags().Lookup("json")),
		config.WithFlag("log.debug", cmd.Flags().Lookup("debug")),
	}
	for key, flag := range bindings {
		opts = append(opts, config.WithFlag(key, flag))
	}
	cfg, err := config.Load(configFile, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// buildTaxonomy returns the built-in taxonomy extended with the configured taxonomy file.
func buildTaxonomy(cfg *config.Config) (*skills.Taxonomy, error) {
	taxonomy := skills.DefaultTaxonomy()
	if cfg.TaxonomyFile == "" {
		return taxonomy, nil
	}
	entries, err := skills.LoadTaxonomyFile(cfg.TaxonomyFile)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := taxonomy.Add(entry); err != nil {
			return nil, err
		}
	}
	return taxonomy, nil
}

// runnerFor builds the engines for every tenant and returns the runner for tenant.
func runnerFor(cfg *config.Config, tenant string, log *zap.Logger, progress pipeline.ProgressCallback) (*pipeline.Runner, error) {
	taxonomy, err := buildTaxonomy(cfg)
	if err != nil {
		return nil, err
	}
	tenants, err := server.BuildTenants(cfg, server.TenantDeps{
		Taxonomy: taxonomy,
		Patterns: skills.DefaultPatterns(),
		Logger:   log,
		Progress: progress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build scoring engine: %w", err)
	}
	runner, ok := tenants.Lookup(tenant)
	if !ok {
		return nil, fmt.Errorf("unknown tenant: %s", tenant)
	}
	return runner, nil
}

// commandRunner loads config and a logger and resolves the tenant runner in one step.
func commandRunner(cmd *cobra.Command, tenant string, progress pipeline.ProgressCallback) (*pipeline.Runner, error) {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	return runnerFor(cfg, tenant, log, progress)
}

func readFile(path, what string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", what, err)
	}
	return data, nil
}

// writeJSON prints v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
