package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tickerwise/tickerwise/pkg/llm"
	"github.com/tickerwise/tickerwise/pkg/llm/openai"
)

var _ = Describe("Client", func() {
	Describe("NewClient", func() {
		It("requires an API key", func() {
			_, err := openai.NewClient(openai.Config{})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("API key is required"))
		})

		It("implements llm.Completer", func() {
			var _ llm.Completer = (*openai.Client)(nil)
		})
	})

	Describe("Complete", func() {
		var (
			server   *httptest.Server
			received map[string]any
			status   int
			reply    string
		)

		BeforeEach(func() {
			received = nil
			status = http.StatusOK
			reply = "Diversification spreads risk across assets."

			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/v1/chat/completions"))
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer sk-test"))

				Expect(json.NewDecoder(r.Body).Decode(&received)).To(Succeed())

				if status != http.StatusOK {
					http.Error(w, "rate limited", status)
					return
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"id":    "chatcmpl-1",
					"model": "gpt-4o-mini",
					"choices": []map[string]any{
						{
							"index":         0,
							"message":       map[string]string{"role": "assistant", "content": reply},
							"finish_reason": "stop",
						},
					},
				})
			}))
		})

		AfterEach(func() {
			server.Close()
		})

		newClient := func() *openai.Client {
			client, err := openai.NewClient(openai.Config{
				APIKey:  "sk-test",
				BaseURL: server.URL,
			})
			Expect(err).NotTo(HaveOccurred())
			return client
		}

		It("returns the completion text verbatim", func() {
			client := newClient()
			text, err := client.Complete(context.Background(), llm.CompletionRequest{
				Messages: []llm.Message{
					llm.NewMessage(llm.RoleSystem, "You are a financial educator."),
					llm.NewMessage(llm.RoleUser, "What is diversification?"),
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal(reply))
		})

		It("sends the configured default model and messages", func() {
			client := newClient()
			_, err := client.Complete(context.Background(), llm.CompletionRequest{
				Messages: []llm.Message{llm.NewMessage(llm.RoleUser, "hi")},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(received["model"]).To(Equal(openai.DefaultModel))
			Expect(received["messages"]).To(HaveLen(1))
		})

		It("passes generation parameters through", func() {
			client := newClient()
			_, err := client.Complete(context.Background(), llm.CompletionRequest{
				Messages:    []llm.Message{llm.NewMessage(llm.RoleUser, "hi")},
				MaxTokens:   150,
				Temperature: 0.7,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(received["max_tokens"]).To(BeNumerically("==", 150))
			Expect(received["temperature"]).To(BeNumerically("~", 0.7, 0.001))
		})

		It("wraps non-200 responses in ErrUpstream", func() {
			status = http.StatusTooManyRequests
			client := newClient()

			_, err := client.Complete(context.Background(), llm.CompletionRequest{
				Messages: []llm.Message{llm.NewMessage(llm.RoleUser, "hi")},
			})
			Expect(err).To(MatchError(llm.ErrUpstream))
		})

		It("wraps transport failures in ErrUpstream", func() {
			client := newClient()
			server.Close()

			_, err := client.Complete(context.Background(), llm.CompletionRequest{
				Messages: []llm.Message{llm.NewMessage(llm.RoleUser, "hi")},
			})
			Expect(err).To(MatchError(llm.ErrUpstream))
		})
	})
})
