// Package cli implements the lattice CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/latticehq/lattice/internal/config"
	"github.com/latticehq/lattice/internal/store"
)

var (
	projectDir string
	formatFlag string
	verbose    bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Institutional knowledge for data projects",
	Long:  "Captures why your models and columns were built the way they were, and serves that context back to AI assistants and humans.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&projectDir, "path", "p", ".", "Project directory")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or markdown")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func openStore() (*store.SQLiteStore, error) {
	return store.Open(config.DBPath(projectDir))
}

func newLogger() *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	return zap.NewNop()
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
