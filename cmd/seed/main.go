package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"villamarket/internal/adapters/observability"
	"villamarket/internal/domain"
	"villamarket/internal/shared"
	mysqlrepo "villamarket/internal/storage/mysql"
)

// seed loads villa fixtures straight into MySQL, bypassing the villa
// service. Meant for local development and demo environments.
func main() {
	fixtures := flag.String("fixtures", "fixtures/villas.json", "path to villa fixtures JSON")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("fixtures", *fixtures).
		Int("workers", cfg.Workers).
		Msg("seed starting")

	villas, err := loadFixtures(*fixtures)
	if err != nil {
		log.Fatal().Err(err).Msg("loading fixtures failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.NewVillaRepo(db)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, v := range villas {
		v := v

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(v domain.Villa) {
			defer wg.Done()
			defer sem.Release(int64(1))

			created, err := repo.Create(ctx, v)
			if err != nil {
				log.Warn().Str("title", v.Title).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("id", created.ID).Str("title", created.Title).Msg("seed ok")
		}(v)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

func loadFixtures(path string) ([]domain.Villa, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var villas []domain.Villa
	if err := json.Unmarshal(b, &villas); err != nil {
		return nil, err
	}
	return villas, nil
}
