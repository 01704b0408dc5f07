package model

// Default embedding model tiers. Retrieval quality matters most where
// content volume is highest, so large documents are worth the slower,
// higher-fidelity model while typical documents take the cheap one.
const (
	DefaultSmallModel     = "text-embedding-3-small"
	DefaultLargeModel     = "text-embedding-3-large"
	DefaultSmallDimension = 1536
	DefaultLargeDimension = 3072

	// DefaultLargeDocThreshold is the document character length above
	// which the large model is selected.
	DefaultLargeDocThreshold = 150_000
)

// Catalog names the two embedding model tiers and the document-size
// policy for choosing between them. It is plain configuration, built once
// in main and passed down.
type Catalog struct {
	SmallModel        string
	LargeModel        string
	SmallDimension    int
	LargeDimension    int
	LargeDocThreshold int
}

func DefaultCatalog() Catalog {
	return Catalog{
		SmallModel:        DefaultSmallModel,
		LargeModel:        DefaultLargeModel,
		SmallDimension:    DefaultSmallDimension,
		LargeDimension:    DefaultLargeDimension,
		LargeDocThreshold: DefaultLargeDocThreshold,
	}
}

// ModelFor maps a document's character length to a model tier. The length
// at the threshold still selects the small model.
func (c Catalog) ModelFor(textLen int) string {
	if textLen > c.LargeDocThreshold {
		return c.LargeModel
	}
	return c.SmallModel
}

// DimensionFor returns the vector width the given model produces.
func (c Catalog) DimensionFor(model string) int {
	if model == c.LargeModel {
		return c.LargeDimension
	}
	return c.SmallDimension
}
