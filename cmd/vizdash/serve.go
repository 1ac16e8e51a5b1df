package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vizdash/internal/server"
	"vizdash/internal/service/dataset"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		src, closeSource, err := openSource(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeSource()

		bus, err := initBus(cfg.NATS)
		if err != nil {
			return err
		}
		defer bus.Close()

		svc := dataset.NewService(src,
			dataset.WithSortOptions(sortOptions(cfg.Analytics)...),
			dataset.WithReloadTimeout(cfg.Remote.Timeout),
		)
		svc.Load(ctx)

		sub, err := svc.Watch(bus)
		if err != nil {
			return err
		}
		defer sub.Unsubscribe()

		srv := server.NewServer(cfg.Server, svc, viewOptions(cfg.Analytics))

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			zap.L().Info("starting server", zap.String("addr", srv.Addr()))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})

		// Graceful shutdown
		g.Go(func() error {
			<-gctx.Done()
			zap.L().Info("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return eris.Wrap(err, "server shutdown")
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			return err
		}
		zap.L().Info("shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
