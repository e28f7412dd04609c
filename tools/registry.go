// Package tools implements the tool dispatcher: a registry of named,
// schema-described capabilities executed on behalf of the agent loop.
// Failures are encoded in the output string, never raised, so the
// conversation can always continue.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/yehia67/onchain-agent-template/agent"
)

// Handler executes one tool call. The returned string is handed to the
// model verbatim, whether it is a result or an error description.
type Handler func(ctx context.Context, input json.RawMessage) string

type entry struct {
	decl    agent.Tool
	handler Handler
	schema  *gojsonschema.Schema
}

// Registry maps tool names to declarations and handlers. Declarations are
// immutable after registration.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a tool, rejecting duplicate names. The input schema is
// compiled once here and enforced on every Execute.
func (r *Registry) Register(decl agent.Tool, handler Handler) error {
	if decl.Name == "" {
		return fmt.Errorf("tool name is empty")
	}
	if handler == nil {
		return fmt.Errorf("tool %s has no handler", decl.Name)
	}

	var schema *gojsonschema.Schema
	if len(decl.InputSchema) > 0 {
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(decl.InputSchema))
		if err != nil {
			return fmt.Errorf("tool %s schema: %w", decl.Name, err)
		}
		schema = compiled
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[decl.Name]; exists {
		return fmt.Errorf("tool %s already registered", decl.Name)
	}
	r.entries[decl.Name] = entry{decl: decl, handler: handler, schema: schema}
	r.order = append(r.order, decl.Name)
	return nil
}

// List returns all declarations in registration order.
func (r *Registry) List() []agent.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	decls := make([]agent.Tool, 0, len(r.order))
	for _, name := range r.order {
		decls = append(decls, r.entries[name].decl)
	}
	return decls
}

// Execute runs a tool by name against a JSON argument bag. An unknown name
// or invalid input yields a descriptive error string so the model can
// retry or explain the failure to the user.
func (r *Registry) Execute(ctx context.Context, name string, input json.RawMessage) string {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return errJSON("unknown tool: " + name)
	}

	if len(input) == 0 {
		input = json.RawMessage("{}")
	}
	if e.schema != nil {
		result, err := e.schema.Validate(gojsonschema.NewBytesLoader(input))
		if err != nil {
			return errJSON(fmt.Sprintf("invalid input for %s: %v", name, err))
		}
		if !result.Valid() {
			details := make([]string, 0, len(result.Errors()))
			for _, desc := range result.Errors() {
				details = append(details, desc.String())
			}
			return errJSON(fmt.Sprintf("invalid input for %s: %s", name, strings.Join(details, "; ")))
		}
	}

	return e.handler(ctx, input)
}

func errJSON(msg string) string {
	out, _ := json.Marshal(map[string]string{"error": msg})
	return string(out)
}
