package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"lexindex/model"
	"lexindex/store"
	"lexindex/types"

	"github.com/google/uuid"
)

// DefaultEmbedPause is the delay between consecutive embedding calls,
// there to stay under the provider's rate limits.
const DefaultEmbedPause = 100 * time.Millisecond

// Service drives the indexing pipeline for documents: chunk, embed,
// persist with clean-replacement semantics.
type Service struct {
	logger   *slog.Logger
	store    store.DBStorer
	gen      *model.Generator
	splitter Splitter
	pause    time.Duration
}

func New(storer store.DBStorer, gen *model.Generator, cfg types.IndexConfig) *Service {
	return &Service{
		logger:   slog.Default(),
		store:    storer,
		gen:      gen,
		splitter: NewSplitter(cfg.MaxChunkChars, cfg.ChunkOverlap),
		pause:    cfg.EmbedPause,
	}
}

// IndexDocument splits the document's text into chunks, embeds them in
// order and replaces the document's stored chunk set atomically. A failed
// chunk is logged and skipped; it only lowers the stored count. Running
// twice on unchanged text leaves exactly the same number of chunks.
func (s *Service) IndexDocument(ctx context.Context, docID uuid.UUID) (*types.IndexingResult, error) {
	log := s.logger.With("document_id", docID)

	doc, err := s.store.GetDocumentByID(ctx, docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, docID)
		}
		return nil, fmt.Errorf("load document: %w", err)
	}
	if doc.FullText == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, docID)
	}

	// Model choice is fixed once per run from the full document length so
	// every chunk of the document lands in the same vector space.
	textLen := utf8.RuneCountInString(doc.FullText)
	embModel := s.gen.ModelFor(textLen)

	if tokens, err := model.CountTokens(doc.FullText); err == nil {
		log.Debug("document token estimate", "tokens", tokens, "chars", textLen)
	}

	chunks := s.splitter.Split(doc.FullText)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoChunks, docID)
	}
	log.Info("document chunked", "chunks", len(chunks), "model", embModel)

	indexed := make([]types.Chunk, 0, len(chunks))
	for i, text := range chunks {
		embedding, err := s.gen.Generate(ctx, text, textLen)
		if err != nil {
			log.Warn("skipping chunk", "position", i, "error", err)
			continue
		}

		indexed = append(indexed, types.Chunk{
			ID:         uuid.New(),
			DocumentID: docID,
			Position:   i,
			Text:       text,
			Embedding:  embedding,
		})

		if s.pause > 0 && i < len(chunks)-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.pause):
			}
		}
	}

	if err := s.store.ReplaceChunks(ctx, docID, indexed); err != nil {
		return nil, fmt.Errorf("replace chunks: %w", err)
	}

	if stored, err := s.store.CountChunksByDocID(ctx, docID); err != nil {
		log.Warn("could not verify stored chunk count", "error", err)
	} else if stored != len(indexed) {
		log.Warn("stored chunk count mismatch", "stored", stored, "expected", len(indexed))
	}

	log.Info("indexing complete", "chunks_indexed", len(indexed), "total_chunks", len(chunks))

	return &types.IndexingResult{
		DocumentID:     docID,
		ChunksIndexed:  len(indexed),
		TotalChunks:    len(chunks),
		EmbeddingModel: embModel,
		TextLength:     textLen,
	}, nil
}

// UnindexedDocuments lists documents that have text but no chunks yet.
func (s *Service) UnindexedDocuments(ctx context.Context) ([]types.Document, error) {
	return s.store.FindDocumentsWithoutChunks(ctx)
}

// ReindexAllUnindexed indexes every unindexed document sequentially and
// returns one outcome per document. A failing document becomes an error
// record in the list; it never stops the documents after it.
func (s *Service) ReindexAllUnindexed(ctx context.Context) ([]types.IndexingResult, error) {
	docs, err := s.store.FindDocumentsWithoutChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("find unindexed documents: %w", err)
	}
	if len(docs) == 0 {
		s.logger.Info("no documents pending indexing")
		return []types.IndexingResult{}, nil
	}

	s.logger.Info("reindexing unindexed documents", "count", len(docs))

	results := make([]types.IndexingResult, 0, len(docs))
	for _, doc := range docs {
		res, err := s.IndexDocument(ctx, doc.ID)
		if err != nil {
			s.logger.Error("indexing failed", "document_id", doc.ID, "filename", doc.Filename, "error", err)
			results = append(results, types.IndexingResult{
				DocumentID: doc.ID,
				Error:      err.Error(),
			})
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}
