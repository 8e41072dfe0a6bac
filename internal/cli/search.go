package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search decisions by keyword",
		Long:  "Full-text search over decision entities, rationales, context, and tags.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	decisions, err := s.SearchDecisions(cmd.Context(), query, limit)
	if err != nil {
		exitErr("search", err)
	}

	if len(decisions) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(decisions, "", "  ")
	fmt.Println(string(b))
}
