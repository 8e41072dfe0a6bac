package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:       "list [decisions|conventions|corrections|entities]",
		Short:     "List stored records",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"decisions", "conventions", "corrections", "entities"},
		Run:       runList,
	}

	cmd.Flags().IntP("limit", "l", 100, "Max results (decisions only)")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	kind := "decisions"
	if len(args) > 0 {
		kind = args[0]
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var records any
	switch kind {
	case "decisions":
		records, err = s.ListDecisions(cmd.Context(), limit)
	case "conventions":
		records, err = s.Conventions(cmd.Context(), "")
	case "corrections":
		records, err = s.Corrections(cmd.Context(), "")
	case "entities":
		records, err = s.ListEntities(cmd.Context())
	default:
		exitErr("list", fmt.Errorf("unknown record kind %q", kind))
	}
	if err != nil {
		exitErr("list", err)
	}

	b, _ := json.MarshalIndent(records, "", "  ")
	fmt.Println(string(b))
}
