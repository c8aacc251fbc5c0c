package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/satindergrewal/maitreya/internal/api"
)

var shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return a.serve(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides server.port)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	h := a.newHost()

	if err := h.Start(); err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}
	defer h.Stop()

	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(api.NewHandlers(h, a.logger), a.logger.Named("http")),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		a.shutdown(server)
	}()

	a.logger.Info("maitreya live", zap.String("addr", addr), zap.String("host", h.ID()))
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// shutdown drains server for up to shutdownTimeout.
func (a *app) shutdown(server *http.Server) {
	a.logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP shutdown failed", zap.Error(err))
	}
}
