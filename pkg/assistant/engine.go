// Package assistant routes each user turn to live market data, semantic
// search plus explanation, or general explanation, behind a guardrail
// filter and per-session conversation memory.
//
// Every backend failure is converted to a polite reply at this boundary.
// Nothing here crashes a session; only configuration errors at startup are
// fatal, and those happen before an Engine exists.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tickerwise/tickerwise/pkg/guardrail"
	"github.com/tickerwise/tickerwise/pkg/marketdata"
	"github.com/tickerwise/tickerwise/pkg/memory"
	"github.com/tickerwise/tickerwise/pkg/prompt"
	"github.com/tickerwise/tickerwise/pkg/semantic"
)

// Fixed user-facing replies for recovered backend failures. Raw provider
// error text never reaches the user.
const (
	unknownTickerReply = "I don't recognize that ticker. Try a symbol like AAPL or MSFT, or a company name like Apple or Microsoft."
	dataUnavailable    = "Live market data is unavailable right now. Please try again in a few minutes."
	explainUnavailable = "I'm sorry, I'm having trouble answering that right now. Please try again in a moment."
)

// MarketData is the live quote source consulted on the market-data path.
type MarketData interface {
	GetQuote(ctx context.Context, symbol string) (*marketdata.Quote, error)
	GetIntraday(ctx context.Context, symbol, interval string) ([]marketdata.Bar, error)
}

// Searcher finds reference passages relevant to a question.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]semantic.Match, error)
}

// Engine is the per-turn router. Shared collaborators (market client,
// search index, symbol table) are read-mostly; conversation memory is
// isolated per session by the Store.
type Engine struct {
	guard     *guardrail.Classifier
	symbols   *marketdata.SymbolTable
	market    MarketData
	index     Searcher
	explainer Explainer
	sessions  *memory.Store
	logger    *zap.Logger
}

// New wires an engine from explicitly constructed collaborators. There are
// no ambient singletons; tests pass fakes.
func New(guard *guardrail.Classifier, symbols *marketdata.SymbolTable, market MarketData, index Searcher, explainer Explainer, logger *zap.Logger) *Engine {
	return &Engine{
		guard:     guard,
		symbols:   symbols,
		market:    market,
		index:     index,
		explainer: explainer,
		sessions:  memory.NewStore(),
		logger:    logger,
	}
}

// Respond handles one user turn for a session and returns the reply text.
// Rejected messages get the fixed redirect and leave memory untouched;
// everything else appends both the user turn and the reply.
func (e *Engine) Respond(ctx context.Context, sessionID, message string) string {
	if verdict := e.guard.Classify(message); !verdict.Allowed {
		e.logger.Debug("guardrail rejected message",
			zap.String("session", sessionID),
			zap.String("category", verdict.Category),
			zap.Stringer("intent", IntentRejected),
		)
		return prompt.Redirect
	}

	log := e.sessions.Session(sessionID)
	decision := e.route(message)

	e.logger.Debug("routed message",
		zap.String("session", sessionID),
		zap.Stringer("intent", decision.Intent),
		zap.String("symbol", decision.Symbol),
	)

	var reply string
	switch decision.Intent {
	case IntentMarketData:
		reply = e.marketReply(ctx, message, decision)
	default:
		reply = e.explainReply(ctx, message, log.Recent())
	}

	now := time.Now()
	log.Append(memory.Turn{Role: memory.RoleUser, Text: message, Timestamp: now})
	log.Append(memory.Turn{Role: memory.RoleAssistant, Text: reply, Timestamp: now})

	return reply
}

// ClearSession drops a session's conversation memory.
func (e *Engine) ClearSession(sessionID string) {
	e.sessions.Drop(sessionID)
}

var aboutPattern = regexp.MustCompile(`(?i)\btell me about\b|\bcompany info\b`)

func (e *Engine) marketReply(ctx context.Context, message string, decision RouteDecision) string {
	if decision.Symbol == "" {
		return unknownTickerReply
	}

	if decision.Interval != "" {
		bars, err := e.market.GetIntraday(ctx, decision.Symbol, decision.Interval)
		if err != nil {
			return e.marketFailure(decision.Symbol, err)
		}
		if len(bars) == 0 {
			return dataUnavailable
		}
		return formatIntraday(decision.Symbol, decision.Interval, bars[0])
	}

	quote, err := e.market.GetQuote(ctx, decision.Symbol)
	if err != nil {
		return e.marketFailure(decision.Symbol, err)
	}

	reply := formatQuote(quote)
	if aboutPattern.MatchString(message) {
		reply = marketdata.CompanyOverview(decision.Symbol) + "\n" + reply
	}
	return reply
}

// marketFailure maps a market-data error to its user-facing reply.
func (e *Engine) marketFailure(symbol string, err error) string {
	if errors.Is(err, marketdata.ErrUnknownSymbol) {
		return unknownTickerReply
	}

	// ErrProvider, ErrNetwork, and anything unexpected all read the same
	// to the user: the data is not available right now.
	e.logger.Warn("market data lookup failed",
		zap.String("symbol", symbol),
		zap.Error(err),
	)
	return dataUnavailable
}

// explainReply tries the semantic path first and falls back to a general
// explanation when the index has nothing relevant or is unavailable.
func (e *Engine) explainReply(ctx context.Context, message string, history []memory.Turn) string {
	matches, err := e.index.Search(ctx, message, semantic.DefaultTopK)
	if err != nil {
		e.logger.Warn("semantic search unavailable, falling back to general explanation",
			zap.Error(err),
		)
		matches = nil
	}

	reply, err := e.explainer.Explain(ctx, message, matches, history)
	if err != nil {
		e.logger.Warn("explanation failed", zap.Error(err))
		return explainUnavailable
	}
	return reply
}

func formatQuote(q *marketdata.Quote) string {
	direction := "up"
	if q.Change < 0 {
		direction = "down"
	}

	reply := fmt.Sprintf("%s is trading at $%.2f, %s %.2f (%.2f%%) on the day.",
		q.Symbol, q.Price, direction, math.Abs(q.Change), math.Abs(q.ChangePercent))
	if !q.AsOf.IsZero() {
		reply += " Latest trading day: " + q.AsOf.Format("2006-01-02") + "."
	}
	return reply
}

func formatIntraday(symbol, interval string, latest marketdata.Bar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s intraday (%s)", symbol, interval)
	if !latest.Time.IsZero() {
		fmt.Fprintf(&b, " as of %s", latest.Time.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, ": open $%.2f, high $%.2f, low $%.2f, close $%.2f, volume %d.",
		latest.Open, latest.High, latest.Low, latest.Close, latest.Volume)
	return b.String()
}
