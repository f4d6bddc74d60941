package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cheetahbyte/keyforge/internal/api"
	"github.com/cheetahbyte/keyforge/internal/config"
	"github.com/cheetahbyte/keyforge/internal/handlers"
	"github.com/cheetahbyte/keyforge/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the serial issuance API",
		Long:  `Start the HTTP API. Configuration comes from KEYFORGE_* environment variables and the optional KEYFORGE_CONFIG_FILE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := config.NewLogger(cfg.Logging, os.Stderr)

			stack, err := services.InitServices(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to init services: %w", err)
			}

			r := chi.NewRouter()
			api.Register(r, handlers.New(stack, log), *cfg, log)

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:      r,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", "addr", srv.Addr, "products", len(cfg.Products))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("failed to start server: %w", err)
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
