// Package api provides the HTTP surface for the assistant: a chat endpoint
// plus direct quote and corpus-search endpoints.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string
}
