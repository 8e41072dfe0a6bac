package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latticehq/lattice/internal/config"
	"github.com/latticehq/lattice/internal/format"
	"github.com/latticehq/lattice/internal/retrieval"
)

func init() {
	cmd := &cobra.Command{
		Use:   "context [task]",
		Short: "Retrieve tiered context for a task",
		Long:  "Extract entity candidates from the task, query decisions, corrections, and conventions, and print the ranked result.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runContext,
	}

	cmd.Flags().Int("max-tokens", 0, "Advisory token budget (default: sum of configured tier budgets)")

	RootCmd.AddCommand(cmd)
}

func runContext(cmd *cobra.Command, args []string) {
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")
	task := strings.Join(args, " ")

	if maxTokens <= 0 {
		// Config is optional here: a missing file just means defaults.
		if cfg, err := config.Load(projectDir); err == nil {
			maxTokens = cfg.Retrieval.TokenBudgets.Total()
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	r := retrieval.New(s, newLogger())
	resp, err := r.GetContext(cmd.Context(), task, maxTokens)
	if err != nil {
		exitErr("context", err)
	}

	if formatFlag == "markdown" || formatFlag == "md" {
		fmt.Print(format.Markdown(resp, task))
		return
	}

	out, err := format.JSON(resp)
	if err != nil {
		exitErr("encode", err)
	}
	fmt.Println(out)
}
