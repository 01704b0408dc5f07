package server

import (
	"context"
	"log"
	"log/slog"

	"lexindex/app/api"
	"lexindex/app/middleware"
	"lexindex/config"
	"lexindex/extract"
	"lexindex/index"
	"lexindex/model"
	"lexindex/opinions"
	"lexindex/store"

	"github.com/gofiber/fiber/v2"
)

var fiberConfig = fiber.Config{
	ErrorHandler: api.ErrorHandler,
	BodyLimit:    50 * 1024 * 1024, // court PDFs run large
}

type Server struct {
	cfg    config.Config
	logger *slog.Logger
}

func NewServer(cfg config.Config) *Server {
	return &Server{
		cfg:    cfg,
		logger: slog.Default(),
	}
}

func (s *Server) Stop() {
	s.logger.Info("server stopped")
}

func (s *Server) Run() {
	ctx := context.Background()

	pool, err := store.NewPostgresStore(ctx, s.cfg.PostgresDSN)
	if err != nil {
		log.Fatal("error to connect to Postgres database: ", err)
		return
	}

	if err := pool.Init(ctx); err != nil {
		log.Fatal("error to create tables: ", err)
		return
	}

	files, err := store.NewLocalFileStore(s.cfg.StorageDir, s.cfg.StaticPrefix)
	if err != nil {
		log.Fatal("error to init file storage: ", err)
		return
	}

	var converter *extract.Converter
	if s.cfg.ConverterURL != "" {
		converter = extract.NewConverter(s.cfg.ConverterURL)
	}

	var (
		extractor = extract.New(converter)
		generator = model.NewGenerator(s.cfg.NewEmbedder(), s.cfg.Catalog)
		indexer   = index.New(pool, generator, s.cfg.Index)
		processor = opinions.NewProcessor(pool, files, indexer)

		app             = fiber.New(fiberConfig)
		checkHandler    = api.NewCheckHandler()
		indexHandler    = api.NewIndexHandler(indexer)
		documentHandler = api.NewDocumentHandler(pool, files, extractor, indexer)
		opinionHandler  = api.NewOpinionHandler(processor)

		check = app.Group("/check")
		apiv1 = app.Group("/api/v1")
	)

	app.Use(middleware.PlugStatic(s.cfg.StaticPrefix))
	app.Static(s.cfg.StaticPrefix, files.Dir())

	check.Get("/healthy", checkHandler.HandleHealthy)

	apiv1.Post("/documents", documentHandler.HandleUpload)
	apiv1.Get("/documents", documentHandler.HandleList)
	apiv1.Get("/documents/unindexed", indexHandler.HandleUnindexed)
	apiv1.Get("/documents/:id", documentHandler.HandleGet)
	apiv1.Post("/documents/:id/index", indexHandler.HandleIndexDocument)
	apiv1.Post("/documents/reindex", indexHandler.HandleReindexAll)
	apiv1.Post("/opinions/process-from-url", opinionHandler.HandleProcessFromURL)

	if err := app.Listen(s.cfg.ServerAddr); err != nil {
		s.logger.Error("error to start server", "error", err.Error())
	}
}
