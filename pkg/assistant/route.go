package assistant

import "regexp"

// Intent is the closed set of ways a user turn can be handled.
type Intent int

const (
	// IntentMarketData routes to the live quote/intraday client.
	IntentMarketData Intent = iota
	// IntentSemanticExplain routes through corpus search into the explainer.
	IntentSemanticExplain
	// IntentGeneralExplain calls the explainer with no retrieved context.
	IntentGeneralExplain
	// IntentRejected means the guardrail refused the message.
	IntentRejected
)

func (i Intent) String() string {
	switch i {
	case IntentMarketData:
		return "market_data"
	case IntentSemanticExplain:
		return "semantic_explain"
	case IntentGeneralExplain:
		return "general_explain"
	case IntentRejected:
		return "rejected"
	}
	return "unknown"
}

// RouteDecision is the transient per-turn routing outcome. Symbol is empty
// on the market-data path when the message asked for a price but no ticker
// could be resolved.
type RouteDecision struct {
	Intent   Intent
	Symbol   string
	Interval string
}

var (
	// pricePattern catches explicit price requests for something we may not
	// know, e.g. "price of acme". A bare mention of the word "stock" is not
	// enough; that would swallow questions like "what is a stock split".
	pricePattern = regexp.MustCompile(`(?i)\b(?:price|quote)s?\s+(?:of|for)\s+\S+`)

	// intervalPattern extracts an explicit intraday interval.
	intervalPattern = regexp.MustCompile(`\b(1min|5min|15min|30min|60min)\b`)

	// intradayPattern marks intraday requests without an explicit interval.
	intradayPattern = regexp.MustCompile(`(?i)\bintraday\b`)
)

// route decides how to handle an already guardrail-approved message.
// A resolvable ticker always wins over explanation, so mixed messages like
// "what is AAPL's P/E ratio and why does diversification matter" take the
// market-data path.
func (e *Engine) route(message string) RouteDecision {
	symbol, ok := e.symbols.Resolve(message)
	if ok {
		return RouteDecision{
			Intent:   IntentMarketData,
			Symbol:   symbol,
			Interval: intradayInterval(message),
		}
	}

	if pricePattern.MatchString(message) {
		// Price-ish message, unresolvable ticker.
		return RouteDecision{Intent: IntentMarketData}
	}

	return RouteDecision{Intent: IntentSemanticExplain}
}

// intradayInterval returns the requested intraday interval, or empty when
// the message wants a plain quote.
func intradayInterval(message string) string {
	if m := intervalPattern.FindString(message); m != "" {
		return m
	}
	if intradayPattern.MatchString(message) {
		return "5min"
	}
	return ""
}
