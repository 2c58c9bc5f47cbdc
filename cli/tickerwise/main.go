package main

import (
	"os"

	tickerwisecmder "github.com/tickerwise/tickerwise/cmd/tickerwise"
)

func main() {
	cmd := tickerwisecmder.NewTickerwiseCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
