// Package semantic provides similarity search over the fixed educational
// corpus. The index is built once at startup and immutable afterwards.
package semantic

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tickerwise/tickerwise/pkg/corpus"
	"github.com/tickerwise/tickerwise/pkg/embeddings"
	"github.com/tickerwise/tickerwise/pkg/vector"
)

const (
	// DefaultMinScore is the minimum cosine similarity a match must clear.
	// Anything below reads as "no relevant context found".
	DefaultMinScore = 0.30

	// DefaultTopK is how many matches Search returns when k <= 0.
	DefaultTopK = 4
)

// Match is a single reference passage matched against a query.
type Match struct {
	Text   string  `json:"text"`
	Score  float32 `json:"score"`
	Source string  `json:"source"`
}

// Index performs semantic search over an embedded document corpus.
type Index struct {
	embedder embeddings.Embedder
	driver   vector.Driver
	minScore float32
	logger   *zap.Logger
}

// Config holds configuration for the semantic index.
type Config struct {
	// MinScore overrides DefaultMinScore when nonzero.
	MinScore float32
}

// NewIndex creates a semantic index over the given embedder and vector driver.
func NewIndex(cfg Config, embedder embeddings.Embedder, driver vector.Driver, logger *zap.Logger) *Index {
	minScore := cfg.MinScore
	if minScore == 0 {
		minScore = DefaultMinScore
	}

	return &Index{
		embedder: embedder,
		driver:   driver,
		minScore: minScore,
		logger:   logger,
	}
}

// Load embeds the corpus passages and stores them in the vector driver.
// A driver that already holds every passage (e.g., a persistent sqlite-vec
// database) is left untouched so startup costs no embedding calls.
func (i *Index) Load(ctx context.Context, passages []corpus.Passage) error {
	count, err := i.driver.Count(ctx)
	if err != nil {
		return fmt.Errorf("checking index: %w", err)
	}
	if count >= len(passages) {
		i.logger.Debug("semantic index already populated",
			zap.Int("documents", count),
		)
		return nil
	}

	docs := make([]vector.Document, 0, len(passages))
	for _, p := range passages {
		embedding, err := i.embedder.Embed(ctx, p.Text)
		if err != nil {
			return fmt.Errorf("embedding passage %s: %w", p.ID, err)
		}
		docs = append(docs, vector.Document{
			ID:        p.ID,
			Text:      p.Text,
			Source:    p.ID,
			Embedding: embedding,
		})
	}

	if err := i.driver.Add(ctx, docs); err != nil {
		return fmt.Errorf("storing corpus: %w", err)
	}

	i.logger.Info("semantic index loaded",
		zap.Int("documents", len(docs)),
	)
	return nil
}

// Search embeds the query and returns the top matches above the minimum
// similarity threshold, ordered by descending score. An empty result is not
// an error; it means no passage is relevant enough.
func (i *Index) Search(ctx context.Context, query string, k int) ([]Match, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	queryEmbedding, err := i.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := i.driver.Query(ctx, queryEmbedding, k)
	if err != nil {
		return nil, fmt.Errorf("querying vector store: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		if r.Score < i.minScore {
			continue
		}
		matches = append(matches, Match{
			Text:   r.Text,
			Score:  r.Score,
			Source: r.Source,
		})
	}

	i.logger.Debug("semantic search",
		zap.String("query", query),
		zap.Int("candidates", len(results)),
		zap.Int("matches", len(matches)),
	)

	return matches, nil
}
