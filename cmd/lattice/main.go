package main

import (
	"os"

	"github.com/latticehq/lattice/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
