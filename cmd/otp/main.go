package main

import (
	"github.com/rs/zerolog/log"

	server "villamarket/internal/adapters/http_server"
	"villamarket/internal/adapters/observability"
	redisad "villamarket/internal/adapters/redis"
	"villamarket/internal/app"
	"villamarket/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	// deps
	store := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewOTPService(store, cfg.OTPTTL)

	// http
	srv := server.New("otp")
	reg := observability.InitRegistry()
	observability.ServeMetrics(cfg.MetricsAddr, reg)
	srv.MountOTPHandlers(server.NewOTPHandlers(svc))

	if err := server.Run(cfg.HTTPAddr, srv.Mux()); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
