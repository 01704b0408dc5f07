package service

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"lexindex/extract"
	"lexindex/index"
	"lexindex/loader/internal"
	"lexindex/store"
	"lexindex/types"

	"github.com/google/uuid"
)

const previewChars = 1000

// Service is the drop-folder ingest worker: extract text from each
// stable file in the source dir, register it as a document, index it and
// archive the file.
type Service struct {
	logger    *slog.Logger
	store     store.DBStorer
	files     store.FileStorer
	extractor *extract.Service
	indexer   *index.Service
	watcher   *internal.Watcher
}

func New(storer store.DBStorer, files store.FileStorer, extractor *extract.Service, indexer *index.Service, watcher *internal.Watcher) *Service {
	return &Service{
		logger:    slog.Default(),
		store:     storer,
		files:     files,
		extractor: extractor,
		indexer:   indexer,
		watcher:   watcher,
	}
}

func (s *Service) Stop() {
	s.logger.Info("loader service stopped")
}

func (s *Service) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fileChan := make(chan string, 10)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(fileChan)
		s.watcher.Watch(ctx, fileChan)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.processFiles(ctx, fileChan)
	}()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)

	<-sigch
	log.Println("Received shutdown signal, shutting down gracefully...")

	cancel()
	signal.Stop(sigch)
	close(sigch)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("All goroutines stopped successfully")
	case <-shutdownCtx.Done():
		log.Println("Timeout waiting for goroutines to stop, forcing shutdown...")
	}

	s.Stop()
}

func (s *Service) processFiles(ctx context.Context, fileChan <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case filePath, ok := <-fileChan:
			if !ok {
				return
			}

			s.logger.Info("processing file", "file", filePath)
			err := s.ingestFile(ctx, filePath)
			if err != nil {
				s.logger.Error("error processing file", "file", filePath, "error", err)
			}

			if ctx.Err() != nil {
				// Leave the file in place so it is retried on restart.
				return
			}

			s.watcher.MoveOut(filePath, err != nil)
			s.watcher.Done(filePath)
		}
	}
}

func (s *Service) ingestFile(ctx context.Context, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	contentType := extract.MimeForExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = extract.Sniff(data)
	}
	if contentType == "" {
		return fmt.Errorf("%w: %s", extract.ErrUnsupportedType, filePath)
	}

	text, err := s.extractor.Text(ctx, data, contentType)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	fileURL, err := s.files.Save(filepath.Base(filePath), data)
	if err != nil {
		return fmt.Errorf("store file: %w", err)
	}

	doc := types.Document{
		ID:          uuid.New(),
		Filename:    filepath.Base(filePath),
		URL:         fileURL,
		ContentType: contentType,
		TextPreview: extract.Preview(text, previewChars),
		FullText:    text,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	result, err := s.indexer.IndexDocument(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("index document: %w", err)
	}

	s.logger.Info("file ingested",
		"document_id", doc.ID,
		"chunks_indexed", result.ChunksIndexed,
		"total_chunks", result.TotalChunks,
		"model", result.EmbeddingModel,
	)
	return nil
}
