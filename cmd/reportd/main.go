package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/reportd/internal/config"
	"github.com/sandeepkv93/reportd/internal/report"
	"github.com/sandeepkv93/reportd/internal/schedule"
	"github.com/sandeepkv93/reportd/internal/storage"
	"github.com/sandeepkv93/reportd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "reportd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("REPORTD_CONFIG")
	if configPath == "" {
		configPath = "reportd.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LoggerLevel()}))
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	repo, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("database ready", slog.String("path", cfg.DatabasePath), slog.String("timezone", loc.String()))

	source := storage.NewReportSource(repo)
	loader := report.NewLoader(source, log, loc)
	runtime := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	today := schedule.Midnight(time.Now().In(loc), loc)

	model := update.NewModel(loader, source, log, loc, runtime, today, cfg.DefaultUser)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
