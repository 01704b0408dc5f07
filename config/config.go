// Package config assembles all runtime settings from the environment.
// Both binaries (API server and ingest loader) share the same knobs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"lexindex/index"
	"lexindex/model"
	"lexindex/types"
)

type Config struct {
	ServerAddr   string
	PostgresDSN  string
	StorageDir   string
	StaticPrefix string
	ConverterURL string

	// EmbeddingProvider is "openai" or "fake"; the fake provider keeps
	// the pipeline runnable without credentials.
	EmbeddingProvider string
	OpenAIBaseURL     string
	OpenAIAPIKey      string

	Catalog model.Catalog
	Index   types.IndexConfig
	Loader  types.LoaderConfig
}

func FromEnv() Config {
	port, _ := strconv.Atoi(getenv("PG_PORT", "5432"))
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		getenv("PG_HOST", "localhost"), port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))

	catalog := model.Catalog{
		SmallModel:        getenv("EMBEDDING_SMALL_MODEL", model.DefaultSmallModel),
		LargeModel:        getenv("EMBEDDING_LARGE_MODEL", model.DefaultLargeModel),
		SmallDimension:    getint("EMBEDDING_SMALL_DIMENSION", model.DefaultSmallDimension),
		LargeDimension:    getint("EMBEDDING_LARGE_DIMENSION", model.DefaultLargeDimension),
		LargeDocThreshold: getint("EMBEDDING_LARGE_DOC_THRESHOLD", model.DefaultLargeDocThreshold),
	}

	return Config{
		ServerAddr:   getenv("SERVER_ADDR", ":8080"),
		PostgresDSN:  dsn,
		StorageDir:   getenv("STORAGE_DIR", "./storage"),
		StaticPrefix: "/files",
		ConverterURL: os.Getenv("CONVERTER_URL"),

		EmbeddingProvider: getenv("EMBEDDING_PROVIDER", "openai"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),

		Catalog: catalog,
		Index: types.IndexConfig{
			MaxChunkChars: getint("CHUNK_SIZE", index.DefaultMaxChunkChars),
			ChunkOverlap:  getint("CHUNK_OVERLAP", index.DefaultChunkOverlap),
			EmbedPause:    getdur("EMBED_PAUSE", index.DefaultEmbedPause),
		},
		Loader: types.LoaderConfig{
			MonitoringTime: getdur("LOADER_MONITORING_TIME", 3*time.Second),
			SourceDir:      getenv("LOADER_SOURCE_DIR", "./inbox"),
			ArchiveDir:     getenv("LOADER_ARCHIVE_DIR", "./archive"),
			BadDir:         getenv("LOADER_BAD_DIR", "./bad"),
		},
	}
}

// NewEmbedder builds the configured embedding provider.
func (c Config) NewEmbedder() model.Embedder {
	if c.EmbeddingProvider == "fake" {
		return model.NewFakeEmbedder(c.Catalog)
	}
	return model.NewOpenAIEmbedder(c.OpenAIBaseURL, c.OpenAIAPIKey)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getdur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
