package index

import "errors"

var (
	// ErrDocumentNotFound means the referenced document id does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrEmptyDocument means the document has no extracted text to index.
	ErrEmptyDocument = errors.New("document has no text to index")

	// ErrNoChunks means chunking produced zero spans for non-empty text,
	// which indicates a chunking-policy bug rather than bad input.
	ErrNoChunks = errors.New("no chunks produced from document text")
)
