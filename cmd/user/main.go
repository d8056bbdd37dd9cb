package main

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "villamarket/internal/adapters/http_server"
	"villamarket/internal/adapters/observability"
	"villamarket/internal/app"
	"villamarket/internal/auth"
	"villamarket/internal/shared"
	mysqlrepo "villamarket/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	tokens, err := auth.NewJWTService(cfg.JWTSecret, cfg.TokenLifetime)
	if err != nil {
		log.Fatal().Err(err).Msg("jwt setup failed")
	}
	svc := app.NewUserService(mysqlrepo.NewUserRepo(db), tokens)

	// http
	srv := server.New("user")
	reg := observability.InitRegistry()
	observability.ServeMetrics(cfg.MetricsAddr, reg)
	srv.MountUserHandlers(server.NewUserHandlers(svc))

	if err := server.Run(cfg.HTTPAddr, srv.Mux()); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
