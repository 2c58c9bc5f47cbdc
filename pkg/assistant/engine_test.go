package assistant_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/tickerwise/tickerwise/pkg/assistant"
	"github.com/tickerwise/tickerwise/pkg/guardrail"
	"github.com/tickerwise/tickerwise/pkg/llm"
	"github.com/tickerwise/tickerwise/pkg/marketdata"
	"github.com/tickerwise/tickerwise/pkg/memory"
	"github.com/tickerwise/tickerwise/pkg/prompt"
	"github.com/tickerwise/tickerwise/pkg/semantic"
)

type fakeMarket struct {
	quoteCalls    int
	intradayCalls int
	quote         *marketdata.Quote
	bars          []marketdata.Bar
	err           error

	lastSymbol   string
	lastInterval string
}

func (m *fakeMarket) GetQuote(_ context.Context, symbol string) (*marketdata.Quote, error) {
	m.quoteCalls++
	m.lastSymbol = symbol
	if m.err != nil {
		return nil, m.err
	}
	return m.quote, nil
}

func (m *fakeMarket) GetIntraday(_ context.Context, symbol, interval string) ([]marketdata.Bar, error) {
	m.intradayCalls++
	m.lastSymbol = symbol
	m.lastInterval = interval
	if m.err != nil {
		return nil, m.err
	}
	return m.bars, nil
}

type fakeSearcher struct {
	calls   int
	matches []semantic.Match
	err     error
}

func (s *fakeSearcher) Search(_ context.Context, query string, k int) ([]semantic.Match, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.matches, nil
}

type fakeExplainer struct {
	calls       int
	reply       string
	err         error
	lastMatches []semantic.Match
	lastHistory []memory.Turn
}

func (x *fakeExplainer) Explain(_ context.Context, question string, matches []semantic.Match, history []memory.Turn) (string, error) {
	x.calls++
	x.lastMatches = matches
	x.lastHistory = history
	if x.err != nil {
		return "", x.err
	}
	return x.reply, nil
}

var _ = Describe("Engine", func() {
	var (
		market    *fakeMarket
		searcher  *fakeSearcher
		explainer *fakeExplainer
		engine    *assistant.Engine
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		market = &fakeMarket{
			quote: &marketdata.Quote{
				Symbol:        "AAPL",
				Price:         187.44,
				Change:        2.31,
				ChangePercent: 1.25,
				AsOf:          time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
			},
		}
		searcher = &fakeSearcher{}
		explainer = &fakeExplainer{reply: "Diversification spreads risk across holdings."}

		engine = assistant.New(
			guardrail.New(guardrail.DefaultKeywords()),
			marketdata.NewSymbolTable(marketdata.DefaultSymbols()),
			market,
			searcher,
			explainer,
			zap.NewNop(),
		)
	})

	Describe("guardrail rejection", func() {
		It("returns the fixed redirect without touching any backend", func() {
			reply := engine.Respond(ctx, "s1", "What's my favorite pet's horoscope?")

			Expect(reply).To(Equal(prompt.Redirect))
			Expect(market.quoteCalls).To(BeZero())
			Expect(searcher.calls).To(BeZero())
			Expect(explainer.calls).To(BeZero())
		})

		It("leaves conversation memory untouched", func() {
			engine.Respond(ctx, "s1", "Tell me about my cat")
			engine.Respond(ctx, "s1", "What is diversification?")

			Expect(explainer.lastHistory).To(BeEmpty())
		})
	})

	Describe("market data routing", func() {
		It("extracts the symbol and replies with the quote", func() {
			reply := engine.Respond(ctx, "s1", "Tell me about Apple stock price")

			Expect(market.lastSymbol).To(Equal("AAPL"))
			Expect(reply).To(ContainSubstring("AAPL"))
			Expect(reply).To(ContainSubstring("187.44"))
		})

		It("includes the company overview for tell-me-about questions", func() {
			reply := engine.Respond(ctx, "s1", "Tell me about Apple stock price")
			Expect(reply).To(ContainSubstring("Apple Inc."))
		})

		It("wins the tie-break against explanation when a ticker is present", func() {
			reply := engine.Respond(ctx, "s1", "What is AAPL's P/E ratio and why does diversification matter?")

			Expect(market.quoteCalls).To(Equal(1))
			Expect(searcher.calls).To(BeZero())
			Expect(explainer.calls).To(BeZero())
			Expect(reply).To(ContainSubstring("AAPL"))
		})

		It("routes intraday requests with the requested interval", func() {
			market.bars = []marketdata.Bar{{
				Time:   time.Date(2026, 8, 24, 16, 0, 0, 0, time.UTC),
				Open:   187.44,
				High:   187.60,
				Low:    187.30,
				Close:  187.52,
				Volume: 98000,
			}}

			reply := engine.Respond(ctx, "s1", "Show me 15min intraday data for TSLA")

			Expect(market.intradayCalls).To(Equal(1))
			Expect(market.lastInterval).To(Equal("15min"))
			Expect(reply).To(ContainSubstring("TSLA"))
			Expect(reply).To(ContainSubstring("187.52"))
		})

		It("defaults intraday requests to 5min", func() {
			market.bars = []marketdata.Bar{{Close: 187.52}}

			engine.Respond(ctx, "s1", "Show me intraday data for TSLA")
			Expect(market.lastInterval).To(Equal("5min"))
		})

		It("replies with the unknown-ticker message for unresolvable price requests", func() {
			reply := engine.Respond(ctx, "s1", "What is the price of acme rockets?")

			Expect(market.quoteCalls).To(BeZero())
			Expect(reply).To(ContainSubstring("don't recognize that ticker"))
		})

		It("maps ErrUnknownSymbol from the provider to the unknown-ticker message", func() {
			market.err = fmt.Errorf("lookup: %w", marketdata.ErrUnknownSymbol)

			reply := engine.Respond(ctx, "s1", "price of FORD") // resolves to F
			Expect(reply).To(ContainSubstring("don't recognize that ticker"))
		})

		It("recovers provider failures into the data-unavailable message", func() {
			market.err = fmt.Errorf("call: %w", marketdata.ErrProvider)

			reply := engine.Respond(ctx, "s1", "AAPL quote please")
			Expect(reply).To(ContainSubstring("unavailable"))
		})

		It("recovers network failures into the data-unavailable message", func() {
			market.err = fmt.Errorf("call: %w", marketdata.ErrNetwork)

			reply := engine.Respond(ctx, "s1", "AAPL quote please")
			Expect(reply).To(ContainSubstring("unavailable"))
		})
	})

	Describe("explanation routing", func() {
		It("passes semantic matches to the explainer as context", func() {
			searcher.matches = []semantic.Match{
				{Text: "Diversification spreads investments.", Score: 0.8, Source: "diversification"},
			}

			reply := engine.Respond(ctx, "s1", "What is diversification?")

			Expect(searcher.calls).To(Equal(1))
			Expect(explainer.calls).To(Equal(1))
			Expect(explainer.lastMatches).To(HaveLen(1))
			Expect(reply).To(Equal(explainer.reply))
		})

		It("falls back to general explanation when no matches clear the threshold", func() {
			searcher.matches = nil

			engine.Respond(ctx, "s1", "What is a wash sale?")
			Expect(explainer.calls).To(Equal(1))
			Expect(explainer.lastMatches).To(BeEmpty())
		})

		It("falls back to general explanation when the index is unavailable", func() {
			searcher.err = fmt.Errorf("index not loaded")

			engine.Respond(ctx, "s1", "What is a wash sale?")
			Expect(explainer.calls).To(Equal(1))
			Expect(explainer.lastMatches).To(BeEmpty())
		})

		It("recovers completion failures into a generic apology", func() {
			explainer.err = fmt.Errorf("call: %w", llm.ErrUpstream)

			reply := engine.Respond(ctx, "s1", "What is a wash sale?")
			Expect(reply).To(ContainSubstring("try again"))
			Expect(reply).NotTo(ContainSubstring("upstream"))
		})
	})

	Describe("conversation memory", func() {
		It("injects prior turns into later explanations", func() {
			engine.Respond(ctx, "s1", "What is diversification?")
			engine.Respond(ctx, "s1", "Can you give an example?")

			Expect(explainer.lastHistory).To(HaveLen(2))
			Expect(explainer.lastHistory[0].Role).To(Equal(memory.RoleUser))
			Expect(explainer.lastHistory[0].Text).To(Equal("What is diversification?"))
			Expect(explainer.lastHistory[1].Role).To(Equal(memory.RoleAssistant))
		})

		It("isolates sessions from each other", func() {
			engine.Respond(ctx, "s1", "What is diversification?")
			engine.Respond(ctx, "s2", "What is volatility?")

			Expect(explainer.lastHistory).To(BeEmpty())
		})

		It("forgets a cleared session", func() {
			engine.Respond(ctx, "s1", "What is diversification?")
			engine.ClearSession("s1")
			engine.Respond(ctx, "s1", "What is volatility?")

			Expect(explainer.lastHistory).To(BeEmpty())
		})
	})
})
