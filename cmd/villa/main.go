package main

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"villamarket/internal/adapters/clients"
	server "villamarket/internal/adapters/http_server"
	"villamarket/internal/adapters/observability"
	"villamarket/internal/app"
	"villamarket/internal/shared"
	mysqlrepo "villamarket/internal/storage/mysql"
)

const upstreamRPS = 50

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
	gate := app.NewAdminGate(clients.NewIdentityClient(cfg.UserServiceURL, upstreamRPS))
	media := clients.NewMediaClient(cfg.MediaServiceURL, upstreamRPS)
	repo := mysqlrepo.NewVillaRepo(db)
	svc := app.NewVillaService(gate, media, repo)

	// http
	srv := server.New("villa")
	reg := observability.InitRegistry()
	observability.ServeMetrics(cfg.MetricsAddr, reg)
	srv.MountVillaHandlers(server.NewVillaHandlers(svc))

	if err := server.Run(cfg.HTTPAddr, srv.Mux()); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
