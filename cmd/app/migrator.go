package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"transportation/cmd"
	"transportation/migrations"

	"github.com/pressly/goose/v3"
)

type migrator struct {
	db       *sql.DB
	provider *goose.Provider
	logger   *slog.Logger
}

func newMigrator(config cmd.Config, logger *slog.Logger) (*migrator, error) {
	gormDB, err := openDB(config)
	if err != nil {
		return nil, err
	}
	db, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	provider, err := migrations.NewProvider(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &migrator{db: db, provider: provider, logger: logger.With("component", "migrate")}, nil
}

func (m *migrator) up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	for _, r := range results {
		m.logger.InfoContext(ctx, "Migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	if len(results) == 0 {
		m.logger.InfoContext(ctx, "Schema is up to date")
	}
	return nil
}

func (m *migrator) down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	m.logger.InfoContext(ctx, "Migration rolled back", "version", result.Source.Version)
	return nil
}

func (m *migrator) status(ctx context.Context) error {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("migrate status: %w", err)
	}
	for _, s := range statuses {
		m.logger.InfoContext(ctx, "Migration", "version", s.Source.Version,
			"path", s.Source.Path, "state", string(s.State), "applied_at", s.AppliedAt)
	}
	return nil
}

func (m *migrator) close() {
	_ = m.db.Close()
}
