package main

import (
	"os"

	"github.com/docview/docview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
