// Package tickerwisecmder
package tickerwisecmder

import (
	"github.com/spf13/cobra"

	chatcmder "github.com/tickerwise/tickerwise/cmd/tickerwise/chat"
	servecmder "github.com/tickerwise/tickerwise/cmd/tickerwise/serve"
	versioncmder "github.com/tickerwise/tickerwise/cmd/version"
)

const tickerwiseLongDesc string = `Tickerwise is a conversational assistant for stock market education.

Ask about live prices, investing concepts, or market terminology:
  tickerwise chat      Start an interactive chat session
  tickerwise serve     Run the HTTP API server

Requires OPENAI_API_KEY and ALPHAVANTAGE_API_KEY in the environment.`

const tickerwiseShortDesc string = "Tickerwise - Stock Market Education Assistant"

func NewTickerwiseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickerwise",
		Short: tickerwiseShortDesc,
		Long:  tickerwiseLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
