// Package chatcmder provides the interactive terminal chat session.
package chatcmder

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tickerwise/tickerwise/pkg/bootstrap"
	"github.com/tickerwise/tickerwise/pkg/cliui"
)

const chatLongDesc string = `Start an interactive chat session with the assistant.

Ask about live stock prices ("What's AAPL trading at?"), investing
concepts ("Why does diversification matter?"), or market terminology.
Off-topic questions are politely redirected.

Commands inside the session:
  /clear   Reset the conversation memory
  /help    Show available commands
  /exit    Quit (Ctrl+D also works)

Examples:
  tickerwise chat
  tickerwise chat --debug`

const chatShortDesc string = "Interactive stock market education chat"

const helpText = `  /clear   Reset the conversation memory
  /help    Show this help
  /exit    Quit`

type chatCommander struct {
	debug bool
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	return cmd
}

func (c *chatCommander) run() error {
	ctx := context.Background()

	fmt.Println()
	var app *bootstrap.App
	err := cliui.Step(os.Stdout, "starting tickerwise", func() error {
		var err error
		app, err = bootstrap.New(ctx, c.debug)
		return err
	})
	if err != nil {
		return err
	}
	defer app.Close()

	sessionID := uuid.NewString()

	fmt.Printf("\n  %s %s\n", cliui.KeyStyle.Render("Model:"), app.Config.ChatModel)
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type your question and press Enter. /help for commands, /exit to quit."))

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(cliui.UserPrompt)
		if !scanner.Scan() {
			// EOF or error
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/exit" {
			break
		}
		if input == "/clear" {
			app.Engine.ClearSession(sessionID)
			fmt.Printf("  %s conversation cleared\n\n", cliui.SuccessMark)
			continue
		}
		if input == "/help" {
			fmt.Printf("%s\n\n", helpText)
			continue
		}

		reply := app.Engine.Respond(ctx, sessionID, input)

		rendered, err := cliui.RenderMarkdown(reply)
		if err != nil {
			rendered = reply + "\n"
		}
		fmt.Print(cliui.AssistantPrompt)
		fmt.Println()
		fmt.Print(rendered)
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println()
	return nil
}
