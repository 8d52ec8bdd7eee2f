package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"orderflow/cmd"
	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/filestorage"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orderflow",
		Short:         "Marketplace order lifecycle service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		templateCmd(),
		tokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var migrate bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := cmd.LoadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(c.Context(), cfg, migrate)
		},
	}
	c.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before serving")
	return c
}

func serve(ctx context.Context, cfg cmd.Config, migrate bool) error {
	lg := logger.New(cfg.Env, cfg.LogLevel)

	db, err := postgres.Open(cfg.DSN())
	if err != nil {
		return err
	}
	if migrate {
		if err := postgres.Migrate(db); err != nil {
			return err
		}
	}

	storage, err := filestorage.NewLocal(cfg.StorageDir, cfg.StorageBaseURL)
	if err != nil {
		return err
	}

	app := cmd.NewCompositionRoot(cfg, db, storage, lg)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(echoLogLevel(cfg.LogLevel))
	if err := app.NewServer().Register(e, httpin.Auth(httpin.NewTokenParser(cfg.JWTSecret))); err != nil {
		return err
	}

	jobs := app.Jobs()
	if err := jobs.StartAll(); err != nil {
		return err
	}
	defer jobs.StopAll()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
		lg.Info().Str("addr", addr).Msg("starting orderflow")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error", "fatal", "panic":
		return log.ERROR
	default:
		return log.INFO
	}
}
