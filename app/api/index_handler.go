package api

import (
	"context"
	"errors"

	"lexindex/index"
	"lexindex/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Indexer is the caller-facing surface of the indexing pipeline.
type Indexer interface {
	IndexDocument(ctx context.Context, docID uuid.UUID) (*types.IndexingResult, error)
	UnindexedDocuments(ctx context.Context) ([]types.Document, error)
	ReindexAllUnindexed(ctx context.Context) ([]types.IndexingResult, error)
}

type IndexHandler struct {
	indexer Indexer
}

func NewIndexHandler(indexer Indexer) *IndexHandler {
	return &IndexHandler{
		indexer: indexer,
	}
}

func (h *IndexHandler) HandleIndexDocument(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrInvalidID()
	}

	result, err := h.indexer.IndexDocument(c.Context(), docID)
	if err != nil {
		switch {
		case errors.Is(err, index.ErrDocumentNotFound):
			return ErrNotFound(docID, "document")
		case errors.Is(err, index.ErrEmptyDocument):
			return NewError(fiber.StatusBadRequest, err.Error())
		default:
			return err
		}
	}
	return c.JSON(result)
}

func (h *IndexHandler) HandleUnindexed(c *fiber.Ctx) error {
	docs, err := h.indexer.UnindexedDocuments(c.Context())
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []types.Document{}
	}
	return c.JSON(fiber.Map{
		"count":     len(docs),
		"documents": docs,
	})
}

func (h *IndexHandler) HandleReindexAll(c *fiber.Ctx) error {
	results, err := h.indexer.ReindexAllUnindexed(c.Context())
	if err != nil {
		return err
	}

	indexed, failed := 0, 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		} else {
			indexed++
		}
	}
	return c.JSON(fiber.Map{
		"total":   len(results),
		"indexed": indexed,
		"failed":  failed,
		"results": results,
	})
}
