package agent

import (
	"context"
	"encoding/json"
)

// Tool declares a callable capability the model may request.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage // JSON Schema (type=object)
}

// ToolCall is a structured invocation request emitted by the model.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// Message is one turn of the conversation in flat form. The provider
// adapter converts it to the wire-level content blocks.
type Message struct {
	Role       string // "user" | "assistant" | "tool"
	Content    string
	ToolCalls  []ToolCall // filled if Role="assistant" and the model called tools
	ToolCallID string     // filled if Role="tool"; matches a prior ToolCall.ID
}

// Response is the classified model reply.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// LLMClient is the model API boundary.
type LLMClient interface {
	Complete(ctx context.Context, system string, messages []Message, tools []Tool) (*Response, error)
}

// Dispatcher is the tool boundary consumed by the agent loop.
// Execute returns a result or error text; it never fails hard, so the loop
// can always hand the model something to work with.
type Dispatcher interface {
	List() []Tool
	Execute(ctx context.Context, name string, input json.RawMessage) string
}
