package main

import (
	"context"
	"log"

	"lexindex/config"
	"lexindex/extract"
	"lexindex/index"
	"lexindex/loader/internal"
	"lexindex/loader/service"
	"lexindex/model"
	"lexindex/store"

	"github.com/joho/godotenv"
)

func init() {
	mustLoadEnvVariables()
}

func main() {
	ctx := context.Background()
	cfg := config.FromEnv()

	pool, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("error to connect to Postgres database: ", err)
		return
	}

	if err := pool.Init(ctx); err != nil {
		log.Fatal("error to create tables: ", err)
		return
	}

	files, err := store.NewLocalFileStore(cfg.StorageDir, cfg.StaticPrefix)
	if err != nil {
		log.Fatal("error to init file storage: ", err)
		return
	}

	var converter *extract.Converter
	if cfg.ConverterURL != "" {
		converter = extract.NewConverter(cfg.ConverterURL)
	}

	watcher, err := internal.NewWatcher(cfg.Loader)
	if err != nil {
		log.Fatal("error to create loader directories: ", err)
		return
	}

	generator := model.NewGenerator(cfg.NewEmbedder(), cfg.Catalog)
	indexer := index.New(pool, generator, cfg.Index)

	service.New(pool, files, extract.New(converter), indexer, watcher).Run()

	log.Println("Closing database connection pool...")
	if err := pool.Close(); err != nil {
		log.Printf("error closing pool: %v\n", err)
	}
}

func mustLoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}
