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

// Requests per second allowed against each sibling service.
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
	identity := clients.NewIdentityClient(cfg.UserServiceURL, upstreamRPS)
	directory := clients.NewVillaDirectoryClient(cfg.VillaServiceURL, upstreamRPS)
	repo := mysqlrepo.NewReservationRepo(db)
	svc := app.NewReservationService(identity, directory, repo)

	// http
	srv := server.New("reservation")
	reg := observability.InitRegistry()
	observability.ServeMetrics(cfg.MetricsAddr, reg)
	srv.MountReservationHandlers(server.NewReservationHandlers(svc))

	if err := server.Run(cfg.HTTPAddr, srv.Mux()); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
