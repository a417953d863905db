package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transportation/cmd"
	httpin "transportation/internal/adapters/in/http"
	"transportation/internal/core/application/usecases/commands"
	"transportation/internal/core/domain/model/lifecycle"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "tripd",
		Short:         "Transportation trips and package event histories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")

	root.AddCommand(
		newServeCommand(&envFile),
		newMigrateCommand(&envFile),
		newResyncCommand(&envFile),
	)
	return root
}

func newServeCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled jobs",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, logger, err := setup(*envFile)
			if err != nil {
				return err
			}

			app, err := compose(config, logger)
			if err != nil {
				return err
			}

			router, err := httpin.NewRouter(app.CreateServer(), logger)
			if err != nil {
				return err
			}

			jobManager := app.CreateJobManager()
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server listening", "port", config.HTTPPort, "store", config.StoreDriver)
				errCh <- router.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
			}()

			select {
			case err = <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			logger.Info("HTTP server shutting down")
			return router.Shutdown(shutdownCtx)
		},
	}
}

func newMigrateCommand(envFile *string) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	run := func(action func(m *migrator, ctx context.Context) error) func(*cobra.Command, []string) error {
		return func(c *cobra.Command, _ []string) error {
			config, logger, err := setup(*envFile)
			if err != nil {
				return err
			}
			if config.StoreDriver != cmd.StoreDriverPostgres {
				return fmt.Errorf("migrations need STORE_DRIVER=%s", cmd.StoreDriverPostgres)
			}

			m, err := newMigrator(config, logger)
			if err != nil {
				return err
			}
			defer m.close()

			return action(m, c.Context())
		}
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run((*migrator).up),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE:  run((*migrator).down),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the state of every migration",
			Args:  cobra.NoArgs,
			RunE:  run((*migrator).status),
		},
	)
	return migrate
}

func newResyncCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resync",
		Short: "Run one trip events resync pass and exit",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, logger, err := setup(*envFile)
			if err != nil {
				return err
			}

			app, err := compose(config, logger)
			if err != nil {
				return err
			}

			handler := app.CreateResyncTripEventsCommandHandler()
			result, err := handler.Handle(c.Context(), commands.NewResyncTripEventsCommand())
			logger.Info("Trip events resync finished",
				"trips", result.Trips, "changed_packages", result.ChangedPackages)
			return err
		},
	}
}

// setup loads the configuration and installs the JSON logger as the slog
// default.
func setup(envFile string) (cmd.Config, *slog.Logger, error) {
	config, err := cmd.LoadConfig(envFile)
	if err != nil {
		return cmd.Config{}, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}))
	slog.SetDefault(logger)
	return config, logger, nil
}

func compose(config cmd.Config, logger *slog.Logger) (cmd.CompositionRoot, error) {
	ranking, err := lifecycle.LoadRankingFile(config.LifecycleConfig)
	if err != nil {
		return cmd.CompositionRoot{}, err
	}

	var db *gorm.DB
	if config.StoreDriver == cmd.StoreDriverPostgres {
		if db, err = openDB(config); err != nil {
			return cmd.CompositionRoot{}, err
		}
	}

	return cmd.NewCompositionRoot(config, ranking, db, logger)
}

func openDB(config cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}
