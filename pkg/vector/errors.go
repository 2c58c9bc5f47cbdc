package vector

import "errors"

var (
	// ErrNotFound is returned when a document is not found in the vector store.
	ErrNotFound = errors.New("document not found")

	// ErrEmbedding is returned when embedding generation fails.
	ErrEmbedding = errors.New("embedding failed")

	// ErrDimensionMismatch is returned when a query embedding does not match
	// the stored dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
