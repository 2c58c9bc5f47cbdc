package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tickerwise/tickerwise/pkg/assistant"
)

// Responder handles one chat turn for a session.
type Responder interface {
	Respond(ctx context.Context, sessionID, message string) string
}

// Server is the HTTP API server for the assistant.
type Server struct {
	config Config
	engine Responder
	market assistant.MarketData
	index  assistant.Searcher
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates the API server. The engine, market client, and search
// index are injected so they are shared with the interactive chat command.
func NewServer(config Config, engine Responder, market assistant.MarketData, index assistant.Searcher, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		engine: engine,
		market: market,
		index:  index,
		logger: logger,
		app:    app,
	}

	app.Use(s.logRequests)

	app.Get("/ping", s.handlePing)
	app.Post("/v1/chat", s.handleChat)
	app.Get("/v1/quote/:symbol", s.handleQuote)
	app.Get("/v1/search", s.handleSearch)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	err := c.Next()
	s.logger.Debug("handled request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
	)
	return err
}
