package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/tunebox/tunebox/internal/infra"
	"github.com/tunebox/tunebox/internal/media"
	"github.com/tunebox/tunebox/internal/migrations"
	"github.com/tunebox/tunebox/internal/routes"
	"github.com/tunebox/tunebox/internal/server"
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, logger, db, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if migrate {
				if err := migrations.Run(ctx, db, migrations.Up); err != nil {
					return err
				}
			}

			cache, err := infra.NewRedisClient(ctx, cfg.RedisURL)
			if err != nil {
				return err
			}
			defer func() {
				if err := cache.Close(); err != nil {
					logger.Warn("close redis", "error", err)
				}
			}()

			s3Client, err := infra.NewS3Client(ctx, infra.S3Options{
				Region:    cfg.S3Region,
				Endpoint:  cfg.S3Endpoint,
				AccessKey: cfg.S3AccessKey,
				SecretKey: cfg.S3SecretKey,
			})
			if err != nil {
				return err
			}
			uploader := media.NewS3Uploader(s3Client, cfg.S3Bucket,
				media.PublicBaseURL(cfg.S3PublicURL, cfg.S3Endpoint, cfg.S3Bucket, cfg.S3Region))

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			srv, err := server.New(routes.Deps{
				Cfg:      cfg,
				DB:       db,
				Cache:    cache,
				Uploader: uploader,
				Logger:   logger,
				Registry: registry,
			})
			if err != nil {
				return fmt.Errorf("build server: %w", err)
			}

			srvErrCh := make(chan error, 1)
			go func() {
				srvErrCh <- srv.Listen()
			}()
			logger.Info("server listening", "addr", cfg.Address(), "env", cfg.AppEnv)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case sig := <-sigCh:
				logger.Info("shutdown signal received", "signal", sig.String())
			case err := <-srvErrCh:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}

			logger.Info("server exited cleanly")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving")
	return cmd
}
