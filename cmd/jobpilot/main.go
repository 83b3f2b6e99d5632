package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jobpilot.local/internal/api"
	"jobpilot.local/internal/config"
	"jobpilot.local/internal/logger"
	"jobpilot.local/internal/metrics"
	ncli "jobpilot.local/internal/notion"
	"jobpilot.local/internal/store"
	"jobpilot.local/internal/tracker"
)

func mask(s string) string {
	if len(s) <= 10 {
		return "****"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

func main() {
	defaultConfig := os.Getenv("JOBPILOT_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "config.yml"
	}
	configPath := flag.String("config", defaultConfig, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("JobPilot stopped", logger.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg *config.Config, log logger.Logger) error {
	log.Info("JobPilot starting",
		logger.String("address", cfg.Server.Address()),
		logger.String("database", cfg.Database.Path),
		logger.Bool("strict_status", cfg.Tracker.StrictStatus),
		logger.Bool("notion", cfg.Notion.Enabled()),
	)

	db, err := store.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	st := store.New(db)
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("SQLite ready", logger.String("path", cfg.Database.Path))

	opts := tracker.Options{StrictStatus: cfg.Tracker.StrictStatus}

	var nc *ncli.Client
	if cfg.Notion.Enabled() {
		log.Info("Notion mirroring enabled",
			logger.String("database_id", cfg.Notion.DatabaseID),
			logger.String("token", mask(cfg.Notion.Token)),
		)
		nc = ncli.New(cfg.Notion.Token, cfg.Notion.DatabaseID, cfg.Notion.Timeout)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Notion.Timeout)
		err := nc.Ping(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("notion ping: %w", err)
		}
		log.Info("Notion connection OK")
		opts.Mirror = nc
	}

	svc := tracker.NewService(st, log.With(logger.String("component", "tracker")), opts)
	srv := api.New(svc, nc, metrics.New(), log.With(logger.String("component", "http")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, cfg.Server)
}
