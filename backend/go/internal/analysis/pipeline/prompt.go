package pipeline

import (
	"VaultMind/backend/go/internal/analysis/schema"
	"fmt"
	"strings"
)

// resolveTemplate substitutes {name} placeholders in a template with the
// given variable values. Placeholders without a value are left untouched so
// missing variables are visible in the rendered prompt.
func resolveTemplate(template string, variables map[string]string) string {
	if len(variables) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(variables))
	for name, value := range variables {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// formatFragments renders retrieved fragments as a numbered context block for
// inclusion in a prompt.
func formatFragments(fragments []*schema.Fragment) string {
	if len(fragments) == 0 {
		return "(no relevant context found)"
	}
	var sb strings.Builder
	for i, f := range fragments {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, f.Text)
	}
	return strings.TrimRight(sb.String(), "\n")
}
