package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/digifasal/agrimarket/internal/api"
	"github.com/digifasal/agrimarket/internal/config"
	"github.com/digifasal/agrimarket/internal/logging"
	"github.com/digifasal/agrimarket/internal/migrate"
	"github.com/digifasal/agrimarket/internal/seed"
	"github.com/digifasal/agrimarket/internal/storage"
)

func main() {
	root := &cobra.Command{
		Use:   "agrimarket",
		Short: "Digi Fasal agricultural marketplace server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.FromEnv()
			logging.Init("agrimarket", cfg.Env)
		},
	}

	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			ctx := cmd.Context()

			if cfg.AutoMigrate && cfg.DBDriver != "memory" && cfg.DBDriver != "" {
				if err := migrate.Up(ctx, cfg.DBDriver, cfg.DBDSN); err != nil {
					return fmt.Errorf("auto migrate: %w", err)
				}
			}

			st, err := storage.Open(ctx, storage.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer st.Close()

			if cfg.SeedOnStart {
				if err := seed.Apply(ctx, st); err != nil {
					// a populated relational store rejects the seed on unique
					// constraints, which is fine on restart
					log.Warn().Err(err).Msg("seeding skipped")
				} else {
					log.Info().Msg("database seeded")
				}
			}

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           api.NewHandler(st),
				ReadHeaderTimeout: 10 * time.Second,
			}

			shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("agrimarket listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
			case <-shutdownCtx.Done():
				log.Info().Msg("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
			}
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	run := func(f func(context.Context, string, string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			if cfg.DBDriver == "memory" || cfg.DBDriver == "" {
				return fmt.Errorf("migrations require a relational driver, got %q", cfg.DBDriver)
			}
			return f(cmd.Context(), cfg.DBDriver, cfg.DBDSN)
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply pending migrations", RunE: run(migrate.Up)},
		&cobra.Command{Use: "down", Short: "Roll back the most recent migration", RunE: run(migrate.Down)},
		&cobra.Command{Use: "status", Short: "Print migration status", RunE: run(migrate.Status)},
	)
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demonstration dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			ctx := cmd.Context()

			st, err := storage.Open(ctx, storage.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer st.Close()

			if err := seed.Apply(ctx, st); err != nil {
				return err
			}
			log.Info().Msg("database seeded")
			return nil
		},
	}
}
