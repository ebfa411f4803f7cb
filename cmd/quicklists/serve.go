package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-pipeline-cache/internal/checklists"
	"github.com/goliatone/go-pipeline-cache/internal/config"
	"github.com/goliatone/go-pipeline-cache/internal/httpapi"
	"github.com/goliatone/go-pipeline-cache/internal/observability"
	"github.com/goliatone/go-pipeline-cache/pkg/di"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides server.addr")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg config.Config) error {
	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := checklists.OpenSQLite(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := checklists.CreateSchema(ctx, db); err != nil {
		return err
	}

	container, err := di.NewContainer(cfg.Cache.ToCacheConfig(), di.WithLogger(logger))
	if err != nil {
		return err
	}
	checklists.Register(container.Mediator(), checklists.NewHandlers(checklists.NewBunStore(db), logger))

	collector := observability.NewCollector(container.Metrics(), container.Store())
	router := httpapi.NewRouter(container, container.Metrics(), collector, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router.Setup(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("quicklists listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
