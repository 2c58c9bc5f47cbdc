// Package memvec provides an in-process brute-force vector driver.
//
// The educational corpus is small and fixed, so a linear cosine scan beats
// carrying an external vector database. Ordering is stable: descending
// score, ties broken by insertion order.
package memvec

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/tickerwise/tickerwise/pkg/vector"
)

// Driver implements vector.Driver with an in-memory slice.
type Driver struct {
	mu   sync.RWMutex
	docs []vector.Document
	// index maps document ID to its position in docs.
	index map[string]int
}

// NewDriver creates an empty in-memory vector driver.
func NewDriver() *Driver {
	return &Driver{index: make(map[string]int)}
}

// Add stores documents with their embeddings, replacing documents that
// already exist under the same ID.
func (d *Driver) Add(_ context.Context, docs []vector.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("document %s has no embedding", doc.ID)
		}
		if pos, ok := d.index[doc.ID]; ok {
			d.docs[pos] = doc
			continue
		}
		d.index[doc.ID] = len(d.docs)
		d.docs = append(d.docs, doc)
	}

	return nil
}

// Query returns the topK most similar documents by cosine similarity.
func (d *Driver) Query(_ context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		return nil, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	results := make([]vector.QueryResult, 0, len(d.docs))
	for _, doc := range d.docs {
		if len(doc.Embedding) != len(embedding) {
			return nil, fmt.Errorf("%w: query has %d dimensions, document %s has %d",
				vector.ErrDimensionMismatch, len(embedding), doc.ID, len(doc.Embedding))
		}
		results = append(results, vector.QueryResult{
			Document: doc,
			Score:    cosine(embedding, doc.Embedding),
		})
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Count reports the number of stored documents.
func (d *Driver) Count(_ context.Context) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.docs), nil
}

// Close is a no-op for the in-memory driver.
func (d *Driver) Close() error {
	return nil
}

// cosine computes cosine similarity between two equal-length vectors.
func cosine(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// Ensure Driver implements vector.Driver
var _ vector.Driver = (*Driver)(nil)
