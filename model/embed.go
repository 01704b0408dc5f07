package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput means chunk text sanitized down to nothing; such a chunk
// cannot be embedded and should simply be skipped.
var ErrEmptyInput = errors.New("text is empty after sanitization")

// Embedder turns text into a vector using the named model. Implementations
// may be remote, rate-limited and fallible.
type Embedder interface {
	Embed(ctx context.Context, text, model string) ([]float32, error)
}

// Generator wraps an Embedder with input sanitization and the size-tiered
// model policy. The document length, not the chunk length, drives model
// selection so all chunks of one document share a model.
type Generator struct {
	embedder Embedder
	catalog  Catalog
}

func NewGenerator(embedder Embedder, catalog Catalog) *Generator {
	return &Generator{
		embedder: embedder,
		catalog:  catalog,
	}
}

// ModelFor exposes the catalog policy for a document of the given length.
func (g *Generator) ModelFor(docLen int) string {
	return g.catalog.ModelFor(docLen)
}

// Generate embeds one chunk of a document whose full text is docLen
// characters long. Provider failures are wrapped with their cause, never
// swallowed. No retry happens here.
func (g *Generator) Generate(ctx context.Context, text string, docLen int) ([]float32, error) {
	clean := Sanitize(text)
	if clean == "" {
		return nil, ErrEmptyInput
	}

	embedding, err := g.embedder.Embed(ctx, clean, g.catalog.ModelFor(docLen))
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}
	return embedding, nil
}

// Sanitize strips byte sequences the embedding API rejects: invalid
// UTF-8, NUL bytes and surrounding whitespace.
func Sanitize(text string) string {
	clean := strings.ToValidUTF8(text, "")
	clean = strings.ReplaceAll(clean, "\x00", "")
	return strings.TrimSpace(clean)
}
