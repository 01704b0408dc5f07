package model

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
)

// FakeEmbedder produces deterministic unit vectors seeded by a hash of
// the model and input text. Identical input always yields the identical
// vector, which makes indexing runs reproducible in tests and when no
// embedding provider is configured.
type FakeEmbedder struct {
	catalog Catalog
}

func NewFakeEmbedder(catalog Catalog) *FakeEmbedder {
	return &FakeEmbedder{catalog: catalog}
}

func (f *FakeEmbedder) Embed(_ context.Context, text, model string) ([]float32, error) {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	rng := rand.New(rand.NewSource(seed))

	embedding := make([]float32, f.catalog.DimensionFor(model))
	for i := range embedding {
		embedding[i] = float32(rng.NormFloat64())
	}
	return normalize(embedding), nil
}

// normalize scales a vector to unit length, matching what real embedding
// providers return.
func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	for i, v := range vec {
		vec[i] = float32(float64(v) / norm)
	}
	return vec
}
