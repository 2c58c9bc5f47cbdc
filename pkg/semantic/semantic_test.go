package semantic_test

import (
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/tickerwise/tickerwise/pkg/corpus"
	"github.com/tickerwise/tickerwise/pkg/semantic"
	"github.com/tickerwise/tickerwise/pkg/vector/memvec"
)

// keywordEmbedder maps known topic words onto fixed axes so similarity is
// deterministic: texts sharing a topic word land on the same axis, anything
// else lands on its own axis orthogonal to every topic.
type keywordEmbedder struct {
	calls int
	fail  bool
}

func (e *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if e.fail {
		return nil, errors.New("embedder down")
	}

	lowered := strings.ToLower(text)
	vec := make([]float32, 4)
	switch {
	case strings.Contains(lowered, "diversification"):
		vec[0] = 1
	case strings.Contains(lowered, "etf"):
		vec[1] = 1
	case strings.Contains(lowered, "volatility"):
		vec[2] = 1
	default:
		vec[3] = 1
	}
	return vec, nil
}

func (e *keywordEmbedder) Close() error { return nil }

var _ = Describe("Index", func() {
	var (
		embedder *keywordEmbedder
		index    *semantic.Index
		ctx      context.Context
	)

	passages := []corpus.Passage{
		{ID: "diversification", Text: "Diversification spreads investments across asset classes."},
		{ID: "etf", Text: "An ETF holds a basket of stocks in one trade."},
		{ID: "volatility", Text: "Volatility measures how widely prices swing."},
	}

	BeforeEach(func() {
		embedder = &keywordEmbedder{}
		index = semantic.NewIndex(semantic.Config{}, embedder, memvec.NewDriver(), zap.NewNop())
		ctx = context.Background()
	})

	Describe("Load", func() {
		It("embeds and stores every passage", func() {
			Expect(index.Load(ctx, passages)).To(Succeed())
			Expect(embedder.calls).To(Equal(len(passages)))
		})

		It("skips embedding when the driver is already populated", func() {
			Expect(index.Load(ctx, passages)).To(Succeed())
			embedder.calls = 0

			Expect(index.Load(ctx, passages)).To(Succeed())
			Expect(embedder.calls).To(BeZero())
		})

		It("propagates embedder failures", func() {
			embedder.fail = true
			Expect(index.Load(ctx, passages)).NotTo(Succeed())
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			Expect(index.Load(ctx, passages)).To(Succeed())
		})

		It("returns relevant matches ordered by score", func() {
			matches, err := index.Search(ctx, "why does diversification matter", 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).NotTo(BeEmpty())
			Expect(matches[0].Source).To(Equal("diversification"))
			Expect(matches[0].Score).To(BeNumerically(">", semantic.DefaultMinScore))
		})

		It("returns an empty slice, not an error, for unrelated queries", func() {
			matches, err := index.Search(ctx, "completely unrelated topic", 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(BeEmpty())
		})

		It("drops matches below the similarity threshold", func() {
			matches, err := index.Search(ctx, "tell me about etf funds", 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(HaveLen(1))
			Expect(matches[0].Source).To(Equal("etf"))
		})

		It("applies the default k when k is not positive", func() {
			matches, err := index.Search(ctx, "volatility", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(HaveLen(1))
			Expect(matches[0].Source).To(Equal("volatility"))
		})

		It("propagates embedder failures", func() {
			embedder.fail = true
			_, err := index.Search(ctx, "anything", 3)
			Expect(err).To(HaveOccurred())
		})
	})
})
