// Package bootstrap wires the assistant's collaborators from configuration.
// Both the chat REPL and the HTTP server build the same engine this way.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tickerwise/tickerwise/pkg/assistant"
	"github.com/tickerwise/tickerwise/pkg/cache"
	"github.com/tickerwise/tickerwise/pkg/config"
	"github.com/tickerwise/tickerwise/pkg/corpus"
	oaiembed "github.com/tickerwise/tickerwise/pkg/embeddings/openai"
	"github.com/tickerwise/tickerwise/pkg/guardrail"
	"github.com/tickerwise/tickerwise/pkg/llm"
	oaillm "github.com/tickerwise/tickerwise/pkg/llm/openai"
	"github.com/tickerwise/tickerwise/pkg/logger"
	"github.com/tickerwise/tickerwise/pkg/marketdata"
	"github.com/tickerwise/tickerwise/pkg/semantic"
	"github.com/tickerwise/tickerwise/pkg/vector"
	"github.com/tickerwise/tickerwise/pkg/vector/memvec"
	"github.com/tickerwise/tickerwise/pkg/vector/sqlitevec"
)

// embeddingDims matches text-embedding-3-small; the sqlite-vec table is
// declared with a fixed dimension.
const embeddingDims = 1536

// App holds the wired assistant and the collaborators commands interact
// with directly.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Engine *assistant.Engine
	Market *marketdata.Client
	Index  *semantic.Index

	completer llm.Completer
	embedder  *oaiembed.Embedder
	driver    vector.Driver
}

// New loads configuration, constructs every collaborator, and populates
// the semantic index. Configuration errors are fatal; a failing index load
// is not, since the engine falls back to general explanation.
func New(ctx context.Context, debug bool) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(debug || cfg.Debug, cfg.LogLevel)

	symbols, err := loadSymbols(cfg)
	if err != nil {
		return nil, err
	}

	keywords, err := loadKeywords(cfg)
	if err != nil {
		return nil, err
	}

	market, err := marketdata.NewClient(marketdata.Config{
		APIKey:  cfg.AlphavantageAPIKey,
		BaseURL: cfg.AlphavantageBaseURL,
	}, cache.New(), log)
	if err != nil {
		return nil, fmt.Errorf("creating market data client: %w", err)
	}

	completer, err := oaillm.NewClient(oaillm.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.ChatModel,
	})
	if err != nil {
		return nil, fmt.Errorf("creating completion client: %w", err)
	}

	embedder, err := oaiembed.NewEmbedder(oaiembed.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.EmbeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	driver, err := newVectorDriver(cfg, log)
	if err != nil {
		return nil, err
	}

	index := semantic.NewIndex(semantic.Config{}, embedder, driver, log)
	if err := index.Load(ctx, corpus.Passages()); err != nil {
		// The engine treats an unavailable index as "no relevant context".
		log.Warn("semantic index load failed, explanations run without retrieved context",
			zap.Error(err),
		)
	}

	engine := assistant.New(
		guardrail.New(keywords),
		marketdata.NewSymbolTable(symbols),
		market,
		index,
		assistant.NewLLMExplainer(completer, cfg.ChatModel),
		log,
	)

	return &App{
		Config:    cfg,
		Logger:    log,
		Engine:    engine,
		Market:    market,
		Index:     index,
		completer: completer,
		embedder:  embedder,
		driver:    driver,
	}, nil
}

// Close releases the app's network clients and storage.
func (a *App) Close() error {
	var firstErr error
	for _, c := range []interface{ Close() error }{a.completer, a.embedder, a.driver} {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	_ = a.Logger.Sync()
	return firstErr
}

func loadSymbols(cfg *config.Config) (map[string]string, error) {
	if cfg.SymbolsFile == "" {
		return marketdata.DefaultSymbols(), nil
	}
	return marketdata.LoadSymbols(cfg.SymbolsFile)
}

func loadKeywords(cfg *config.Config) (map[string][]string, error) {
	if cfg.KeywordsFile == "" {
		return guardrail.DefaultKeywords(), nil
	}
	return guardrail.LoadKeywords(cfg.KeywordsFile)
}

func newVectorDriver(cfg *config.Config, log *zap.Logger) (vector.Driver, error) {
	if cfg.VectorDBPath == "" {
		log.Debug("using in-process vector index")
		return memvec.NewDriver(), nil
	}

	driver, err := sqlitevec.NewDriver(sqlitevec.Config{
		DBPath:     cfg.VectorDBPath,
		Dimensions: embeddingDims,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("opening vector database: %w", err)
	}
	log.Info("using sqlite-vec vector index", zap.String("path", cfg.VectorDBPath))
	return driver, nil
}
