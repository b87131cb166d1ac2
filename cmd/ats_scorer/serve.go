package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/db"
	"github.com/jonathan/ats-scorer/internal/server"
	"github.com/jonathan/ats-scorer/internal/server/ratelimit"
	"github.com/jonathan/ats-scorer/internal/skills"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the scoring endpoints.
When DATABASE_URL is set, scores are persisted to PostgreSQL and the history, taxonomy
and knowledge endpoints are enabled.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().Int("parallelism", 4, "Concurrent scorings per batch request")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, map[string]*pflag.Flag{
		"server.port":        cmd.Flags().Lookup("port"),
		"server.parallelism": cmd.Flags().Lookup("parallelism"),
	})
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	taxonomy, err := buildTaxonomy(cfg)
	if err != nil {
		return err
	}

	deps := server.TenantDeps{
		Taxonomy: taxonomy,
		Patterns: skills.DefaultPatterns(),
		Logger:   log,
	}
	var store server.Store
	if cfg.DatabaseURL != "" {
		database, err := openDatabase(ctx, cfg.DatabaseURL, taxonomy, log)
		if err != nil {
			return err
		}
		defer database.Close()
		deps.Store = database
		store = database
	} else {
		log.Info("DATABASE_URL not set, scoring history will not be persisted and store endpoints return 503")
	}

	tenants, err := server.BuildTenants(cfg, deps)
	if err != nil {
		return fmt.Errorf("failed to build tenants: %w", err)
	}

	srvCfg := server.Config{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Parallelism:     cfg.Server.Parallelism,
		RateLimit: ratelimit.Config{
			Enabled:           cfg.RateLimit.Enabled,
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		},
		Store:    store,
		Taxonomy: taxonomy,
	}
	if cfg.JWT.Enabled() {
		jwtService, err := server.NewJWTService(cfg.JWT)
		if err != nil {
			return err
		}
		srvCfg.JWT = jwtService
	} else {
		log.Warn("JWT secret not set, API authentication is disabled")
	}

	srv, err := server.New(srvCfg, tenants, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}

// openDatabase connects, applies the schema and merges persisted taxonomy entries.
func openDatabase(ctx context.Context, url string, taxonomy *skills.Taxonomy, log *zap.Logger) (*db.DB, error) {
	database, err := db.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	entries, err := database.LoadTaxonomy(ctx)
	if err != nil {
		database.Close()
		return nil, err
	}
	for _, entry := range entries {
		if err := taxonomy.Add(entry); err != nil {
			log.Warn("skipping invalid stored taxonomy entry", zap.String("skill", entry.SkillName), zap.Error(err))
		}
	}
	log.Info("database connected", zap.Int("taxonomy_entries", len(entries)))
	return database, nil
}
