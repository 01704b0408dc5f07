package types

import (
	"time"

	"github.com/google/uuid"
)

// Document is one ingested source file with its extracted text.
// Created once when an upload finishes; the indexing pipeline never
// mutates or deletes it.
type Document struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	TextPreview string    `json:"text_preview,omitempty"`
	FullText    string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Chunk is one indexed passage of a document. The full chunk set of a
// document is always the product of a single indexing run.
type Chunk struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Position   int
	Text       string
	Embedding  []float32
	CreatedAt  time.Time
}

// IndexingResult summarizes one indexing run. On total failure Error is
// set and ChunksIndexed is zero.
type IndexingResult struct {
	DocumentID     uuid.UUID `json:"document_id"`
	ChunksIndexed  int       `json:"chunks_indexed"`
	TotalChunks    int       `json:"total_chunks"`
	EmbeddingModel string    `json:"embedding_model,omitempty"`
	TextLength     int       `json:"text_length,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// IndexConfig carries the chunking and throttling knobs of the indexing
// pipeline.
type IndexConfig struct {
	MaxChunkChars int
	ChunkOverlap  int
	EmbedPause    time.Duration
}

// LoaderConfig configures the drop-folder ingest worker.
type LoaderConfig struct {
	MonitoringTime time.Duration
	SourceDir      string
	ArchiveDir     string
	BadDir         string
}
