package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tickerwise/tickerwise/pkg/marketdata"
)

// ErrorResponse is the JSON error envelope for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	// SessionID ties the turn to a conversation. Empty means "start a new
	// conversation"; the response carries the generated ID.
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the reply for one chat turn.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleChat handles one conversation turn.
func (s *Server) handleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "message is required"})
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply := s.engine.Respond(c.Context(), sessionID, req.Message)

	return c.JSON(ChatResponse{
		SessionID: sessionID,
		Reply:     reply,
	})
}

// handleQuote returns the live quote for a symbol, bypassing the router.
func (s *Server) handleQuote(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	if symbol == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "symbol parameter required"})
	}

	quote, err := s.market.GetQuote(c.Context(), symbol)
	if err != nil {
		if errors.Is(err, marketdata.ErrUnknownSymbol) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "unknown symbol"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "market data unavailable"})
	}

	return c.JSON(quote)
}

// handleSearch handles GET /v1/search requests.
// Query parameters:
//   - query (required): the search query text
//   - top_k (optional, default 4): number of results to return
func (s *Server) handleSearch(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "query parameter is required"})
	}

	topK := 0
	if topKStr := c.Query("top_k"); topKStr != "" {
		parsed, err := strconv.Atoi(topKStr)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "top_k must be a positive integer"})
		}
		topK = parsed
	}

	matches, err := s.index.Search(c.Context(), query, topK)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "search failed"})
	}

	return c.JSON(map[string]any{
		"query":   query,
		"count":   len(matches),
		"matches": matches,
	})
}
