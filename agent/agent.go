// Package agent implements the conversational loop: it relays user text to
// the model, executes requested tools, feeds results back and repeats until
// a final textual answer is produced.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yehia67/onchain-agent-template/eth"
)

// placeholderReply stands in for an all-whitespace model answer, which is
// not user-presentable.
const placeholderReply = "processing..."

// SendToolName is the tool the fast path routes direct transfer commands to.
const SendToolName = "send_transaction"

// Agent owns the message history. History mutation is append-only and only
// happens here.
type Agent struct {
	cfg     options
	history []Message
}

// New creates an Agent with the given options.
func New(opts ...Option) *Agent {
	cfg := defaultOptions()
	for _, o := range opts {
		o(&cfg)
	}
	return &Agent{cfg: cfg}
}

// Chat processes one user turn to completion and returns the final answer.
//
// Unambiguous transfer commands skip the model entirely: a mis-transcribed
// address or amount must never reach the chain, so the raw text goes
// straight to the send tool and its result is the answer.
//
// Otherwise the loop calls the model, executes at most one tool per
// iteration, appends the call and its result to the history and re-enters,
// bounded by the configured max tool depth.
func (a *Agent) Chat(ctx context.Context, text string) (string, error) {
	if a.cfg.dispatcher != nil && eth.IsSendCommand(text) {
		return a.fastPathSend(ctx, text)
	}

	a.history = append(a.history, Message{Role: "user", Content: text})

	for depth := 0; depth < a.cfg.maxToolDepth; depth++ {
		resp, err := a.cfg.llm.Complete(ctx, a.systemPrompt(), a.history, a.tools())
		if err != nil {
			return "", fmt.Errorf("model call failed: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			reply := resp.Content
			if strings.TrimSpace(reply) == "" {
				reply = placeholderReply
			}
			a.history = append(a.history, Message{Role: "assistant", Content: reply})
			return reply, nil
		}

		// First requested tool wins; the result round-trips through the
		// history as exactly two messages.
		call := resp.ToolCalls[0]
		a.cfg.obs.OnToolCall(call)
		result := a.cfg.dispatcher.Execute(ctx, call.Name, call.Input)
		a.cfg.obs.OnToolResult(call.Name, result)

		a.history = append(a.history,
			Message{Role: "assistant", ToolCalls: []ToolCall{call}},
			Message{Role: "tool", ToolCallID: call.ID, Content: result},
		)
	}

	return "", fmt.Errorf("tool loop exceeded %d calls without a final answer", a.cfg.maxToolDepth)
}

func (a *Agent) fastPathSend(ctx context.Context, text string) (string, error) {
	input, err := json.Marshal(map[string]string{"command": text})
	if err != nil {
		return "", fmt.Errorf("encode send command: %w", err)
	}
	a.cfg.obs.OnToolCall(ToolCall{Name: SendToolName, Input: input})
	result := a.cfg.dispatcher.Execute(ctx, SendToolName, input)
	a.cfg.obs.OnToolResult(SendToolName, result)

	a.history = append(a.history,
		Message{Role: "user", Content: text},
		Message{Role: "assistant", Content: result},
	)
	return result, nil
}

func (a *Agent) tools() []Tool {
	if a.cfg.dispatcher == nil {
		return nil
	}
	return a.cfg.dispatcher.List()
}

// History returns a copy of the conversation so far.
func (a *Agent) History() []Message {
	out := make([]Message, len(a.history))
	copy(out, a.history)
	return out
}
