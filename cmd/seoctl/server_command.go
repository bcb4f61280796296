package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kumar045/seo-website/internal/export"
	"github.com/kumar045/seo-website/internal/server"
	"github.com/kumar045/seo-website/internal/store"
	"github.com/kumar045/seo-website/internal/worker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServerCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the web server and the generation worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			pl, adapter, err := a.newPipeline()
			if err != nil {
				return err
			}
			defer adapter.Close()

			queue, err := a.openQueue(ctx)
			if err != nil {
				return err
			}
			defer queue.Close()

			st := store.NewMemory()

			if a.cfg.Worker.Enabled {
				w := worker.NewWorker(queue, st, pl, a.logger)
				go w.Start(ctx)
			} else {
				a.logger.Warn("Worker disabled, queued jobs will wait for another process")
			}

			srv, err := server.NewServer(st, pl, queue, server.Options{
				Addr:         a.cfg.Server.Addr,
				ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeoutSeconds) * time.Second,
				WriteTimeout: time.Duration(a.cfg.Server.WriteTimeoutSeconds) * time.Second,
				Site: export.Site{
					Title: a.cfg.Server.SiteName,
					Link:  a.cfg.Server.SiteURL,
				},
			}, a.logger)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.logger.Info("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				a.logger.Error("Shutdown failed", zap.Error(err))
				return err
			}
			a.logger.Info("Goodbye!")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
