// Package prompt holds the system prompts that shape the assistant's
// behavior and the builder that layers retrieved context and conversation
// history under them.
package prompt

import (
	"fmt"
	"strings"

	"github.com/tickerwise/tickerwise/pkg/llm"
	"github.com/tickerwise/tickerwise/pkg/memory"
	"github.com/tickerwise/tickerwise/pkg/semantic"
)

// System is the main system prompt for the assistant.
const System = `You are a stock market information assistant that educates users about investing, personal finance, and market fundamentals.

Guidelines:
- Always disclose: "This is educational content, not financial advice. Consult a licensed financial advisor before making investment decisions."
- Never provide personalized investment recommendations.
- Never predict specific stock prices or market movements with certainty.
- Stay focused on finance and investing; gently redirect off-topic questions back to financial topics.
- Explain concepts in clear, simple language without excessive jargon, and use real-company examples where helpful.
- Be honest about limitations and uncertainty.`

// Terminology is a variant prompt for definitional questions. It keeps
// answers short and dictionary-like.
const Terminology = `You are a financial dictionary expert. When users ask about financial terms:
- Provide a clear, beginner-friendly definition.
- Use one real-world example.
- Explain why the concept matters.
- Keep the explanation under 100 words.
Always note that this is educational content, not financial advice.`

// Redirect is the fixed reply for guardrail-rejected messages.
const Redirect = "I appreciate your question, but that's outside my area of expertise. I'm here to help with finance and investing topics. Is there anything about the stock market or investment strategy I can help explain?"

// Disclaimer is the short preamble attached to educational replies.
const Disclaimer = "This is educational content, not financial advice."

// Build assembles the completion messages for a question: system prompt
// first, then any retrieved reference passages, then recent conversation
// turns, then the question itself.
func Build(system string, question string, matches []semantic.Match, history []memory.Turn) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)

	if len(matches) > 0 {
		var b strings.Builder
		b.WriteString(system)
		b.WriteString("\n\nReference passages (paraphrase, do not quote verbatim):\n")
		for _, m := range matches {
			fmt.Fprintf(&b, "- %s\n", m.Text)
		}
		messages = append(messages, llm.NewMessage(llm.RoleSystem, b.String()))
	} else {
		messages = append(messages, llm.NewMessage(llm.RoleSystem, system))
	}

	for _, turn := range history {
		role := llm.RoleUser
		if turn.Role == memory.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.NewMessage(role, turn.Text))
	}

	messages = append(messages, llm.NewMessage(llm.RoleUser, question))
	return messages
}
