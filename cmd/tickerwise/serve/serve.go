// Package servecmder provides the serve command for running the HTTP API.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tickerwise/tickerwise/api"
	"github.com/tickerwise/tickerwise/pkg/bootstrap"
)

type ServeCommander struct {
	listen string
	debug  bool
}

const serveLongDesc string = `Run the tickerwise HTTP API server.

Endpoints:
  GET  /ping                 Health check
  POST /v1/chat              One conversation turn
  GET  /v1/quote/:symbol     Live quote for a ticker
  GET  /v1/search            Corpus search (query, top_k)`

const serveShortDesc string = "Run the HTTP API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address to listen on (default: LISTEN_ADDR or :8080)")

	return cmd
}

func (c *ServeCommander) run() error {
	app, err := bootstrap.New(context.Background(), c.debug)
	if err != nil {
		return err
	}
	defer app.Close()

	listen := c.listen
	if listen == "" {
		listen = app.Config.ListenAddr
	}

	server := api.NewServer(api.Config{
		ListenAddr: listen,
	}, app.Engine, app.Market, app.Index, app.Logger)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		app.Logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}
