package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexindex/index"
	"lexindex/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndexer struct {
	result    *types.IndexingResult
	err       error
	unindexed []types.Document
	batch     []types.IndexingResult
}

func (f *fakeIndexer) IndexDocument(_ context.Context, docID uuid.UUID) (*types.IndexingResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeIndexer) UnindexedDocuments(_ context.Context) ([]types.Document, error) {
	return f.unindexed, f.err
}

func (f *fakeIndexer) ReindexAllUnindexed(_ context.Context) ([]types.IndexingResult, error) {
	return f.batch, f.err
}

func newTestApp(indexer Indexer) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	h := NewIndexHandler(indexer)
	app.Post("/api/v1/documents/:id/index", h.HandleIndexDocument)
	app.Get("/api/v1/documents/unindexed", h.HandleUnindexed)
	app.Post("/api/v1/documents/reindex", h.HandleReindexAll)
	return app
}

func TestHandleIndexDocument(t *testing.T) {
	docID := uuid.New()
	app := newTestApp(&fakeIndexer{result: &types.IndexingResult{
		DocumentID:     docID,
		ChunksIndexed:  4,
		TotalChunks:    5,
		EmbeddingModel: "text-embedding-3-small",
		TextLength:     9000,
	}})

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/documents/%s/index", docID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body types.IndexingResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, docID, body.DocumentID)
	assert.Equal(t, 4, body.ChunksIndexed)
	assert.Equal(t, 5, body.TotalChunks)
}

func TestHandleIndexDocumentInvalidID(t *testing.T) {
	app := newTestApp(&fakeIndexer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/not-a-uuid/index", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleIndexDocumentNotFound(t *testing.T) {
	app := newTestApp(&fakeIndexer{err: index.ErrDocumentNotFound})

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/documents/%s/index", uuid.New()), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleIndexDocumentEmptyText(t *testing.T) {
	app := newTestApp(&fakeIndexer{err: index.ErrEmptyDocument})

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/documents/%s/index", uuid.New()), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleUnindexedEmpty(t *testing.T) {
	app := newTestApp(&fakeIndexer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/unindexed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Count     int              `json:"count"`
		Documents []types.Document `json:"documents"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Zero(t, body.Count)
	assert.NotNil(t, body.Documents)
}

func TestHandleReindexAllSummarizesOutcomes(t *testing.T) {
	okID, badID := uuid.New(), uuid.New()
	app := newTestApp(&fakeIndexer{batch: []types.IndexingResult{
		{DocumentID: okID, ChunksIndexed: 3, TotalChunks: 3},
		{DocumentID: badID, Error: "embedding provider unavailable"},
	}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/reindex", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total   int                    `json:"total"`
		Indexed int                    `json:"indexed"`
		Failed  int                    `json:"failed"`
		Results []types.IndexingResult `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 1, body.Indexed)
	assert.Equal(t, 1, body.Failed)
	require.Len(t, body.Results, 2)
}
