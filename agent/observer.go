package agent

import (
	"fmt"
	"io"
	"os"
)

// Observer receives notifications as the loop executes tools.
type Observer interface {
	OnToolCall(call ToolCall)
	OnToolResult(name, result string)
}

// noopObserver is used when no observer is configured.
type noopObserver struct{}

func (noopObserver) OnToolCall(_ ToolCall)           {}
func (noopObserver) OnToolResult(_ string, _ string) {}

// ConsoleObserver prints tool activity to the given writer.
//
// Example output:
//
//	→ get_balance  {"address":"0x1111…"}
//	← get_balance  1.5 ETH
type ConsoleObserver struct {
	w io.Writer
}

// NewConsoleObserver creates an observer that prints tool activity to w.
// Defaults to os.Stdout if no writer is provided.
func NewConsoleObserver(w ...io.Writer) *ConsoleObserver {
	out := io.Writer(os.Stdout)
	if len(w) > 0 {
		out = w[0]
	}
	return &ConsoleObserver{w: out}
}

func (o *ConsoleObserver) OnToolCall(call ToolCall) {
	fmt.Fprintf(o.w, "→ %-16s %s\n", call.Name, truncate(string(call.Input), 60))
}

func (o *ConsoleObserver) OnToolResult(name, result string) {
	fmt.Fprintf(o.w, "← %-16s %s\n", name, truncate(result, 60))
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
