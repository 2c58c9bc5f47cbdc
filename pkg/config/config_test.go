package config_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tickerwise/tickerwise/pkg/config"
)

var _ = Describe("Load", func() {
	var saved map[string]string

	envVars := []string{
		"OPENAI_API_KEY", "ALPHAVANTAGE_API_KEY",
		"OPENAI_BASE_URL", "ALPHAVANTAGE_BASE_URL",
		"CHAT_MODEL", "EMBEDDING_MODEL", "VECTOR_DB_PATH",
		"LISTEN_ADDR", "DEBUG", "LOG_LEVEL",
	}

	BeforeEach(func() {
		saved = make(map[string]string)
		for _, key := range envVars {
			saved[key] = os.Getenv(key)
			os.Unsetenv(key)
		}
	})

	AfterEach(func() {
		for key, val := range saved {
			if val == "" {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, val)
			}
		}
	})

	Context("when all required variables are set", func() {
		BeforeEach(func() {
			os.Setenv("OPENAI_API_KEY", "sk-test")
			os.Setenv("ALPHAVANTAGE_API_KEY", "av-test")
		})

		It("loads the keys", func() {
			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.OpenAIAPIKey).To(Equal("sk-test"))
			Expect(cfg.AlphavantageAPIKey).To(Equal("av-test"))
		})

		It("applies defaults for optional settings", func() {
			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.AlphavantageBaseURL).To(Equal("https://www.alphavantage.co/query"))
			Expect(cfg.ChatModel).To(Equal("gpt-4o-mini"))
			Expect(cfg.EmbeddingModel).To(Equal("text-embedding-3-small"))
			Expect(cfg.ListenAddr).To(Equal(":8080"))
			Expect(cfg.LogLevel).To(Equal("info"))
			Expect(cfg.Debug).To(BeFalse())
		})

		It("honors optional overrides", func() {
			os.Setenv("DEBUG", "true")
			os.Setenv("LOG_LEVEL", "warn")
			os.Setenv("ALPHAVANTAGE_BASE_URL", "http://localhost:9999/query")

			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Debug).To(BeTrue())
			Expect(cfg.LogLevel).To(Equal("warn"))
			Expect(cfg.AlphavantageBaseURL).To(Equal("http://localhost:9999/query"))
		})
	})

	Context("when required variables are missing", func() {
		It("fails and names every missing variable", func() {
			_, err := config.Load()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("OPENAI_API_KEY"))
			Expect(err.Error()).To(ContainSubstring("ALPHAVANTAGE_API_KEY"))
		})

		It("fails when only one key is present", func() {
			os.Setenv("OPENAI_API_KEY", "sk-test")

			_, err := config.Load()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("ALPHAVANTAGE_API_KEY"))
			Expect(err.Error()).NotTo(ContainSubstring("OPENAI_API_KEY,"))
		})
	})
})
