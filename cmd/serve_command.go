package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"fip_qc/internal/handlers"
	"fip_qc/internal/metrics"
	"fip_qc/internal/repository"
	"fip_qc/internal/repository/db"
	"fip_qc/internal/server"
	"fip_qc/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the QC report API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.Server.Port
			}
			log := ctx.log

			conn, err := db.InitDB(cfg.DB.Path)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := conn.Close(); cerr != nil {
					log.Errorw("failed to close sqlite", "err", cerr)
				}
			}()

			services := service.NewService(repository.NewRepository(conn), service.Deps{
				Config:  cfg,
				Log:     log,
				Metrics: metrics.New(prometheus.DefaultRegisterer),
			})
			apiHandler := handlers.NewHandler(services, log)

			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &server.Server{}
			errc := make(chan error, 1)
			go func() { errc <- srv.Run(port, apiHandler.InitRoutes()) }()
			log.Infow("server_started", "port", port, "db", cfg.DB.Path)

			select {
			case err := <-errc:
				return err
			case <-sigCtx.Done():
			}

			log.Infow("shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides server.port)")
	return cmd
}
