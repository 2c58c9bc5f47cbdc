package prompt_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tickerwise/tickerwise/pkg/llm"
	"github.com/tickerwise/tickerwise/pkg/memory"
	"github.com/tickerwise/tickerwise/pkg/prompt"
	"github.com/tickerwise/tickerwise/pkg/semantic"
)

var _ = Describe("Build", func() {
	history := []memory.Turn{
		{Role: memory.RoleUser, Text: "What is an ETF?"},
		{Role: memory.RoleAssistant, Text: "An ETF is a basket of stocks."},
	}

	It("puts the system prompt first and the question last", func() {
		messages := prompt.Build(prompt.System, "What is volatility?", nil, history)

		Expect(messages).To(HaveLen(4))
		Expect(messages[0].Role).To(Equal(llm.RoleSystem))
		Expect(messages[0].Content).To(Equal(prompt.System))
		Expect(messages[len(messages)-1].Role).To(Equal(llm.RoleUser))
		Expect(messages[len(messages)-1].Content).To(Equal("What is volatility?"))
	})

	It("keeps history in conversation order with mapped roles", func() {
		messages := prompt.Build(prompt.System, "And index funds?", nil, history)

		Expect(messages[1].Role).To(Equal(llm.RoleUser))
		Expect(messages[1].Content).To(Equal("What is an ETF?"))
		Expect(messages[2].Role).To(Equal(llm.RoleAssistant))
	})

	It("folds retrieved passages into the system message", func() {
		matches := []semantic.Match{
			{Text: "Volatility measures how widely prices swing.", Score: 0.8, Source: "volatility"},
		}

		messages := prompt.Build(prompt.System, "What is volatility?", matches, nil)

		Expect(messages).To(HaveLen(2))
		Expect(messages[0].Content).To(ContainSubstring(prompt.System))
		Expect(messages[0].Content).To(ContainSubstring("Volatility measures"))
	})

	It("builds a bare system+question pair with no context or history", func() {
		messages := prompt.Build(prompt.Terminology, "Define P/E ratio", nil, nil)

		Expect(messages).To(HaveLen(2))
		Expect(messages[0].Content).To(Equal(prompt.Terminology))
	})
})
