package agent

import (
	"fmt"
	"strings"
)

// systemPrompt concatenates the configured persona prefix with tool-usage
// instructions enumerating every registered tool.
func (a *Agent) systemPrompt() string {
	tools := a.tools()
	if len(tools) == 0 {
		return a.cfg.personaPrompt
	}

	var sb strings.Builder
	if a.cfg.personaPrompt != "" {
		sb.WriteString(a.cfg.personaPrompt)
		sb.WriteString("\n\n")
	}

	sb.WriteString("You have access to the following tools:\n")
	for _, t := range tools {
		fmt.Fprintf(&sb, "- %s: %s\n", t.Name, t.Description)
	}
	sb.WriteString("\nCall a tool when it answers the user's question better than you can from memory. ")
	sb.WriteString("After a tool returns, use its result to answer. ")
	sb.WriteString("If a tool reports an error, explain it to the user or retry with corrected arguments.")
	return sb.String()
}
