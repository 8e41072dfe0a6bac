// Package format renders context responses for humans and machines.
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/latticehq/lattice/internal/model"
)

// NoContextFound is the narrative fallback when nothing matched. Callers rely
// on a non-empty body to tell "nothing matched" apart from silent failure.
const NoContextFound = "No context found."

const maxConventionExamples = 3

// Markdown renders a context response as a headed markdown document.
func Markdown(resp *model.ContextResponse, task string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Context for: %s\n\n", task)

	if resp.Empty() {
		b.WriteString(NoContextFound)
		b.WriteString("\n")
		return b.String()
	}

	if len(resp.Corrections) > 0 {
		b.WriteString("## Important Notes\n\n")
		for _, c := range resp.Corrections {
			fmt.Fprintf(&b, "- **%s**: %s\n", noteLabel(c), c.Correction)
		}
		b.WriteString("\n")
	}

	if len(resp.ImmediateDecisions) > 0 {
		b.WriteString("## Relevant Decisions\n\n")
		for _, d := range resp.ImmediateDecisions {
			fmt.Fprintf(&b, "### %s (%s)\n\n%s\n\n", d.Entity, d.ChangeType, d.Why)
		}
	}

	if len(resp.Conventions) > 0 {
		b.WriteString("## Conventions\n\n")
		for _, c := range resp.Conventions {
			examples := c.Examples
			if len(examples) > maxConventionExamples {
				examples = examples[:maxConventionExamples]
			}
			fmt.Fprintf(&b, "- **%s**: %s\n", c.Pattern, strings.Join(examples, ", "))
		}
		b.WriteString("\n")
	}

	if len(resp.RelatedDecisions) > 0 {
		b.WriteString("## Related Context\n\n")
		for _, d := range resp.RelatedDecisions {
			fmt.Fprintf(&b, "- **%s**: %s\n", d.Entity, d.Why)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// JSON renders a context response as an indented JSON document with every
// field preserved.
func JSON(resp *model.ContextResponse) (string, error) {
	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// noteLabel prefers the entity name; global corrections get a fixed label.
func noteLabel(c model.Correction) string {
	if c.Scope == model.ScopeGlobal || c.Entity == "" {
		return "global"
	}
	return c.Entity
}
