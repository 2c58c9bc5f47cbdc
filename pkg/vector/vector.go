// Package vector provides interfaces and implementations for vector storage.
package vector

import "context"

// Document represents a stored passage with its embedding and metadata.
type Document struct {
	// ID is a unique identifier for the document.
	ID string

	// Text is the passage content.
	Text string

	// Source identifies where the passage came from (corpus entry ID).
	Source string

	// Embedding is the vector representation of the passage.
	Embedding []float32
}

// QueryResult represents a search result with similarity score.
type QueryResult struct {
	Document

	// Score is the cosine similarity to the query (higher = more similar).
	Score float32
}

// Driver handles storage and retrieval of vector embeddings.
type Driver interface {
	// Add stores documents with their embeddings. Implementers should
	// update documents that already exist under the same ID.
	Add(ctx context.Context, docs []Document) error

	// Query finds the topK most similar documents to the given embedding,
	// ordered by descending score.
	Query(ctx context.Context, embedding []float32, topK int) ([]QueryResult, error)

	// Count reports the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Close releases any resources held by the driver.
	Close() error
}
