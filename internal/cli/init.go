package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/latticehq/lattice/internal/config"
	"github.com/latticehq/lattice/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Set up lattice in a project",
		Long:  "Create .lattice/config.yml and an empty database in the project directory.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runInit,
	}

	RootCmd.AddCommand(cmd)
}

func runInit(cmd *cobra.Command, args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	} else {
		abs, err := filepath.Abs(projectDir)
		if err == nil {
			name = filepath.Base(abs)
		}
	}

	cfg := config.Default(name)
	if err := cfg.Save(projectDir); err != nil {
		exitErr("write config", err)
	}

	s, err := store.New(config.DBPath(projectDir))
	if err != nil {
		exitErr("create database", err)
	}
	defer s.Close()

	fmt.Printf("Initialized lattice for %q in %s\n", name, config.Dir(projectDir))
}
