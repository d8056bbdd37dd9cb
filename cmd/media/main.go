package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	server "villamarket/internal/adapters/http_server"
	minioad "villamarket/internal/adapters/minio"
	"villamarket/internal/adapters/observability"
	"villamarket/internal/app"
	"villamarket/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	// object store
	store, err := minioad.New(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatal().Err(err).Msg("minio setup failed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatal().Err(err).Msg("bucket setup failed")
	}
	cancel()
	log.Info().Str("bucket", cfg.MinioBucket).Msg("object store ok")

	svc := app.NewMediaService(store, cfg.MinioPublicHost, cfg.MinioBucket)

	// http
	srv := server.New("media")
	reg := observability.InitRegistry()
	observability.ServeMetrics(cfg.MetricsAddr, reg)
	srv.MountMediaHandlers(server.NewMediaHandlers(svc))

	if err := server.Run(cfg.HTTPAddr, srv.Mux()); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
