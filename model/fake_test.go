package model

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeEmbedderIsDeterministic(t *testing.T) {
	fake := NewFakeEmbedder(DefaultCatalog())

	a, err := fake.Embed(context.Background(), "la corte resuelve", DefaultSmallModel)
	require.NoError(t, err)
	b, err := fake.Embed(context.Background(), "la corte resuelve", DefaultSmallModel)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFakeEmbedderVariesByTextAndModel(t *testing.T) {
	fake := NewFakeEmbedder(DefaultCatalog())

	a, err := fake.Embed(context.Background(), "texto uno", DefaultSmallModel)
	require.NoError(t, err)
	b, err := fake.Embed(context.Background(), "texto dos", DefaultSmallModel)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestFakeEmbedderDimensions(t *testing.T) {
	fake := NewFakeEmbedder(DefaultCatalog())

	small, err := fake.Embed(context.Background(), "texto", DefaultSmallModel)
	require.NoError(t, err)
	large, err := fake.Embed(context.Background(), "texto", DefaultLargeModel)
	require.NoError(t, err)

	assert.Len(t, small, DefaultSmallDimension)
	assert.Len(t, large, DefaultLargeDimension)
}

func TestFakeEmbedderUnitNorm(t *testing.T) {
	fake := NewFakeEmbedder(DefaultCatalog())

	vec, err := fake.Embed(context.Background(), "texto", DefaultSmallModel)
	require.NoError(t, err)

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-4)
}
