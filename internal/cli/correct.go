package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/latticehq/lattice/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "correct [text]",
		Short: "Record a correction",
		Long:  "Store user-asserted knowledge that overrides or supplements extracted context.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runCorrect,
	}

	cmd.Flags().StringP("entity", "e", "", "Entity the correction applies to")
	cmd.Flags().String("type", "", "Entity type (model, column, table, ...)")
	cmd.Flags().String("scope", "entity", "Scope: global, entity, or pattern")
	cmd.Flags().String("priority", "medium", "Priority: high, medium, or low")
	cmd.Flags().String("by", "", "Author (default: current user)")
	cmd.Flags().String("context", "", "When the correction applies")

	RootCmd.AddCommand(cmd)
}

func runCorrect(cmd *cobra.Command, args []string) {
	entity, _ := cmd.Flags().GetString("entity")
	entityType, _ := cmd.Flags().GetString("type")
	scope, _ := cmd.Flags().GetString("scope")
	priority, _ := cmd.Flags().GetString("priority")
	author, _ := cmd.Flags().GetString("by")
	correctionCtx, _ := cmd.Flags().GetString("context")
	text := strings.Join(args, " ")

	if author == "" {
		if u, err := user.Current(); err == nil {
			author = u.Username
		}
	}

	correctionScope := model.CorrectionScope(scope)
	if correctionScope != model.ScopeGlobal && correctionScope != model.ScopeEntity && correctionScope != model.ScopePattern {
		exitErr("correct", fmt.Errorf("invalid scope %q (valid: global, entity, pattern)", scope))
	}
	if correctionScope == model.ScopeEntity && entity == "" {
		fmt.Fprintln(os.Stderr, "error: correct: --entity is required for entity-scoped corrections")
		os.Exit(1)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stored, err := s.AddCorrection(cmd.Context(), model.Correction{
		Entity:     entity,
		EntityType: model.EntityType(entityType),
		Correction: text,
		Context:    correctionCtx,
		AddedBy:    author,
		AddedAt:    time.Now().UTC(),
		Scope:      correctionScope,
		Priority:   model.CorrectionPriority(priority),
	})
	if err != nil {
		exitErr("correct", err)
	}

	b, _ := json.Marshal(stored)
	fmt.Println(string(b))
}
