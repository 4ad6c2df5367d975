package main

import (
	"os"

	"github.com/minatolabs/minato/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
