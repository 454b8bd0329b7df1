package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Slganeshkarthik/AgriConnect/internal/app"
	"github.com/Slganeshkarthik/AgriConnect/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API the storefront views call",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = c.cfg.Port
			}
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return serve(ctx, a, ":"+port)
			})
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (defaults to PORT)")
	return cmd
}

// serve runs the API until SIGINT/SIGTERM, then drains in-flight requests.
func serve(ctx context.Context, a *app.App, addr string) error {
	log := logger.Get()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := a.Router()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
