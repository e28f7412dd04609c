// Package persona loads the static personality profile used to build the
// system prompt prefix.
package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type Style struct {
	Tone        string   `json:"tone"`
	Formality   string   `json:"formality"`
	DomainFocus []string `json:"domain_focus"`
}

type Personality struct {
	Name  string   `json:"name"`
	Role  string   `json:"role"`
	Style Style    `json:"style"`
	Rules []string `json:"rules"`
}

// Load reads the personality document. A missing or malformed document is a
// startup failure; the agent does not run without a persona.
func Load(path string) (*Personality, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read personality %s: %w", path, err)
	}
	var p Personality
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse personality %s: %w", path, err)
	}
	return &p, nil
}

// SystemPrompt renders the persona as the behavioral prefix prepended to
// every model request.
func (p *Personality) SystemPrompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, %s. \n\n", p.Name, p.Role)
	sb.WriteString("Style: \n")
	fmt.Fprintf(&sb, "- Tone: %s \n", p.Style.Tone)
	fmt.Fprintf(&sb, "- Formality: %s \n", p.Style.Formality)
	fmt.Fprintf(&sb, "- Domain Focus: %s \n\n", strings.Join(p.Style.DomainFocus, ", "))
	sb.WriteString("Rules: \n")
	for i, rule := range p.Rules {
		sb.WriteString("- " + rule)
		if i < len(p.Rules)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
