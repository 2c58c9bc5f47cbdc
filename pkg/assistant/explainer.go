package assistant

import (
	"context"
	"fmt"

	"github.com/tickerwise/tickerwise/pkg/llm"
	"github.com/tickerwise/tickerwise/pkg/memory"
	"github.com/tickerwise/tickerwise/pkg/prompt"
	"github.com/tickerwise/tickerwise/pkg/semantic"
)

const (
	explainMaxTokens   = 500
	explainTemperature = 0.7
)

// Explainer turns a question plus optional retrieved context and history
// into a natural-language answer.
type Explainer interface {
	Explain(ctx context.Context, question string, matches []semantic.Match, history []memory.Turn) (string, error)
}

// LLMExplainer answers questions with a single chat completion call. The
// response text is returned verbatim; no post-parsing.
type LLMExplainer struct {
	completer llm.Completer
	model     string
}

// NewLLMExplainer wraps a completer. model may be empty to use the
// completer's default.
func NewLLMExplainer(completer llm.Completer, model string) *LLMExplainer {
	return &LLMExplainer{completer: completer, model: model}
}

// Explain sends one completion request built from the finance-educator
// system prompt, the retrieved passages, and recent history. Failures come
// back wrapped in llm.ErrUpstream.
func (x *LLMExplainer) Explain(ctx context.Context, question string, matches []semantic.Match, history []memory.Turn) (string, error) {
	reply, err := x.completer.Complete(ctx, llm.CompletionRequest{
		Model:       x.model,
		Messages:    prompt.Build(prompt.System, question, matches, history),
		MaxTokens:   explainMaxTokens,
		Temperature: explainTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("explaining %q: %w", question, err)
	}
	return reply, nil
}
