package main

import (
	"os"

	"github.com/offkai-bot/offkai/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
