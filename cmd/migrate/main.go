package main

import (
	"context"
	"flag"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/database/seeder"
)

func main() {
	action := flag.String("action", "up", "migration action: up, down, drop, version, seed")
	dir := flag.String("dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if *action == "seed" {
		if err := seed(cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		return
	}

	path := *dir
	if path == "" {
		path = cfg.App.MigrationsDir
	}

	r := migration.Runner{Dir: path, Logger: log.Default()}
	if err := r.Run(*action, cfg.Database.DSN()); err != nil {
		log.Fatalf("migration %s failed: %v", *action, err)
	}
}

func seed(cfg config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = pool.Close() }()

	r := seeder.Runner{
		DB:      pool,
		Tx:      dbpostgres.NewTransactionManager(pool),
		Seeders: seeder.Defaults(),
		Logger:  log.Default(),
	}
	return r.Run(ctx)
}
