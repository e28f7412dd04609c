package agent_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yehia67/onchain-agent-template/agent"
)

type mockResponse struct {
	content   string
	toolCalls []agent.ToolCall
	err       error
}

func textResponse(content string) mockResponse {
	return mockResponse{content: content}
}

// mockLLM replays a scripted sequence of responses and records every request.
type mockLLM struct {
	responses []mockResponse
	callCount int
	systems   []string
	toolLists [][]agent.Tool
	histories [][]agent.Message
}

func newMockLLM(responses ...mockResponse) *mockLLM {
	return &mockLLM{responses: responses}
}

func (m *mockLLM) Complete(_ context.Context, system string, messages []agent.Message, tools []agent.Tool) (*agent.Response, error) {
	i := m.callCount
	m.callCount++
	m.systems = append(m.systems, system)
	m.toolLists = append(m.toolLists, tools)
	history := make([]agent.Message, len(messages))
	copy(history, messages)
	m.histories = append(m.histories, history)

	if i >= len(m.responses) {
		return &agent.Response{}, nil
	}
	r := m.responses[i]
	if r.err != nil {
		return nil, r.err
	}
	return &agent.Response{Content: r.content, ToolCalls: r.toolCalls}, nil
}

// mockDispatcher returns a fixed output and records executions.
type mockDispatcher struct {
	tools  []agent.Tool
	output string
	names  []string
	inputs []string
}

func (m *mockDispatcher) List() []agent.Tool {
	return m.tools
}

func (m *mockDispatcher) Execute(_ context.Context, name string, input json.RawMessage) string {
	m.names = append(m.names, name)
	m.inputs = append(m.inputs, string(input))
	return m.output
}

func weatherCall(id string) agent.ToolCall {
	return agent.ToolCall{ID: id, Name: "get_weather", Input: json.RawMessage(`{"city":"cairo"}`)}
}

func TestChat_TextOnlyReply(t *testing.T) {
	llm := newMockLLM(textResponse("Hello there!"))
	a := agent.New(agent.WithLLM(llm))

	reply, err := a.Chat(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "Hello there!" {
		t.Errorf("reply = %q", reply)
	}
	if got := len(a.History()); got != 2 {
		t.Errorf("history length = %d, want 2 (user + assistant)", got)
	}
}

func TestChat_WhitespaceReplyBecomesPlaceholder(t *testing.T) {
	llm := newMockLLM(textResponse("  \n\t "))
	a := agent.New(agent.WithLLM(llm))

	reply, err := a.Chat(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if strings.TrimSpace(reply) == "" {
		t.Errorf("reply %q is not user-presentable", reply)
	}
}

func TestChat_ToolRoundTripAppendsExactlyTwoMessages(t *testing.T) {
	dispatcher := &mockDispatcher{
		tools:  []agent.Tool{{Name: "get_weather", Description: "weather"}},
		output: "30°C, sunny",
	}
	llm := newMockLLM(
		mockResponse{toolCalls: []agent.ToolCall{weatherCall("call_1")}},
		textResponse("It is sunny in Cairo."),
	)
	a := agent.New(agent.WithLLM(llm), agent.WithDispatcher(dispatcher))

	reply, err := a.Chat(context.Background(), "weather in cairo?")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "It is sunny in Cairo." {
		t.Errorf("reply = %q", reply)
	}
	if len(dispatcher.names) != 1 || dispatcher.names[0] != "get_weather" {
		t.Fatalf("dispatcher executions = %v, want exactly one get_weather", dispatcher.names)
	}

	history := a.History()
	// user, assistant tool call, tool result, final assistant
	if len(history) != 4 {
		t.Fatalf("history length = %d, want 4", len(history))
	}
	callMsg, resultMsg := history[1], history[2]
	if len(callMsg.ToolCalls) != 1 || callMsg.ToolCalls[0].ID != "call_1" {
		t.Errorf("assistant message does not carry the tool call: %+v", callMsg)
	}
	if resultMsg.ToolCallID != "call_1" {
		t.Errorf("tool result answers %q, want call_1", resultMsg.ToolCallID)
	}
	if resultMsg.Content != "30°C, sunny" {
		t.Errorf("tool result content = %q", resultMsg.Content)
	}

	// The recursion re-entered with the extended history and no duplicate
	// user turn: second request sees exactly 3 messages.
	if got := len(llm.histories[1]); got != 3 {
		t.Errorf("second request history length = %d, want 3", got)
	}
}

func TestChat_FirstToolCallWins(t *testing.T) {
	dispatcher := &mockDispatcher{output: "ok"}
	llm := newMockLLM(
		mockResponse{toolCalls: []agent.ToolCall{weatherCall("call_1"), {ID: "call_2", Name: "get_time"}}},
		textResponse("done"),
	)
	a := agent.New(agent.WithLLM(llm), agent.WithDispatcher(dispatcher))

	if _, err := a.Chat(context.Background(), "hi"); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if len(dispatcher.names) != 1 || dispatcher.names[0] != "get_weather" {
		t.Errorf("executed %v, want only the first call", dispatcher.names)
	}
}

func TestChat_ToolLoopExceeded(t *testing.T) {
	dispatcher := &mockDispatcher{output: "again"}
	responses := make([]mockResponse, 8)
	for i := range responses {
		responses[i] = mockResponse{toolCalls: []agent.ToolCall{weatherCall("c")}}
	}
	llm := newMockLLM(responses...)
	a := agent.New(agent.WithLLM(llm), agent.WithDispatcher(dispatcher), agent.WithMaxToolDepth(3))

	_, err := a.Chat(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected tool loop error")
	}
	if !strings.Contains(err.Error(), "tool loop exceeded") {
		t.Errorf("error = %v", err)
	}
	if len(dispatcher.names) != 3 {
		t.Errorf("executed %d tools, want 3", len(dispatcher.names))
	}
}

func TestChat_ModelErrorIsTerminal(t *testing.T) {
	llm := newMockLLM(mockResponse{err: errors.New("api_error: overloaded")})
	a := agent.New(agent.WithLLM(llm))

	_, err := a.Chat(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected the provider error to surface")
	}
	if !strings.Contains(err.Error(), "overloaded") {
		t.Errorf("provider message not passed through: %v", err)
	}
}

func TestChat_SendFastPathBypassesModel(t *testing.T) {
	dispatcher := &mockDispatcher{output: "Transaction rejected: no private key available"}
	llm := newMockLLM(textResponse("should never be used"))
	a := agent.New(agent.WithLLM(llm), agent.WithDispatcher(dispatcher))

	command := "send 0.1 ETH from 0x1111111111111111111111111111111111111111 to 0x2222222222222222222222222222222222222222"
	reply, err := a.Chat(context.Background(), command)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if llm.callCount != 0 {
		t.Errorf("model was called %d times, want 0", llm.callCount)
	}
	if len(dispatcher.names) != 1 || dispatcher.names[0] != agent.SendToolName {
		t.Fatalf("dispatcher executions = %v, want one %s", dispatcher.names, agent.SendToolName)
	}
	if !strings.Contains(dispatcher.inputs[0], command) {
		t.Errorf("raw command not forwarded: %q", dispatcher.inputs[0])
	}
	if reply != dispatcher.output {
		t.Errorf("reply = %q, want the tool result", reply)
	}
	if got := len(a.History()); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}
}

func TestChat_SystemPromptListsTools(t *testing.T) {
	dispatcher := &mockDispatcher{
		tools: []agent.Tool{
			{Name: "get_weather", Description: "Get the current weather"},
			{Name: "get_time", Description: "Get the current time"},
		},
		output: "ok",
	}
	llm := newMockLLM(textResponse("hello"))
	a := agent.New(
		agent.WithLLM(llm),
		agent.WithDispatcher(dispatcher),
		agent.WithPersonaPrompt("You are Agent Friend."),
	)

	if _, err := a.Chat(context.Background(), "hi"); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	system := llm.systems[0]
	for _, want := range []string{"You are Agent Friend.", "get_weather", "get_time"} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q:\n%s", want, system)
		}
	}
	if len(llm.toolLists[0]) != 2 {
		t.Errorf("tool declarations = %d, want 2", len(llm.toolLists[0]))
	}
}

func TestChat_NoToolsMeansNoDeclarations(t *testing.T) {
	llm := newMockLLM(textResponse("hello"))
	a := agent.New(agent.WithLLM(llm), agent.WithPersonaPrompt("persona"))

	if _, err := a.Chat(context.Background(), "hi"); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if len(llm.toolLists[0]) != 0 {
		t.Errorf("tool declarations attached without a registry: %v", llm.toolLists[0])
	}
	if llm.systems[0] != "persona" {
		t.Errorf("system = %q, want the bare persona prefix", llm.systems[0])
	}
}
