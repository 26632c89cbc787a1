// server/commands.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ViniZap4/calmrush-server/auth"
	"github.com/ViniZap4/calmrush-server/catalog"
	"github.com/ViniZap4/calmrush-server/config"
	"github.com/ViniZap4/calmrush-server/domain"
	httpserver "github.com/ViniZap4/calmrush-server/http"
	"github.com/ViniZap4/calmrush-server/logger"
	"github.com/ViniZap4/calmrush-server/metrics"
	"github.com/ViniZap4/calmrush-server/sentiment"
	"github.com/ViniZap4/calmrush-server/store/postgres"
	"github.com/ViniZap4/calmrush-server/store/sqlite"
	"github.com/ViniZap4/calmrush-server/ws"
)

const shutdownTimeout = 10 * time.Second

func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (domain.Store, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		log.Info().Str("path", cfg.SQLitePath).Msg("using sqlite storage")
		return sqlite.New(cfg.SQLitePath)
	default:
		if cfg.MigrateOnStart {
			if err := postgres.Migrate(cfg.DatabaseURL, postgres.Up); err != nil {
				return nil, err
			}
		}
		log.Info().Msg("using postgres storage")
		return postgres.New(ctx, cfg.DatabaseURL)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			cat, err := catalog.Load()
			if err != nil {
				return err
			}

			hub := ws.NewHub()
			go hub.Run(ctx)

			server := httpserver.NewServer(httpserver.Options{
				Store:          store,
				Sessions:       auth.NewSessions(cfg.SessionSecret),
				Hub:            hub,
				Catalog:        cat,
				Metrics:        metrics.New(),
				SecureCookies:  cfg.Production(),
				AllowedOrigins: cfg.AllowedOrigins,
			})

			errc := make(chan error, 1)
			go func() {
				errc <- server.Listen(":" + cfg.Port)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the postgres schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(postgres.Up), string(postgres.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if cfg.Storage != config.StoragePostgres {
				return errors.New("migrations only apply to postgres storage")
			}
			return postgres.Migrate(cfg.DatabaseURL, postgres.Direction(args[0]))
		},
	}
}

func sentimentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment [text]",
		Short: "Classify text the way new thoughts are classified",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := sentiment.Analyze(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sentiment:  %s\n", res.Sentiment)
			fmt.Fprintf(out, "score:      %.2f\n", res.Score)
			fmt.Fprintf(out, "confidence: %.2f\n", res.Confidence)
			if len(res.Keywords) > 0 {
				fmt.Fprintf(out, "keywords:   %s\n", strings.Join(res.Keywords, ", "))
			}
			return nil
		},
	}
}
