package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yehia67/onchain-agent-template/agent"
	"github.com/yehia67/onchain-agent-template/server"
	"github.com/yehia67/onchain-agent-template/store"
)

// scriptedLLM always answers with the same text.
type scriptedLLM struct {
	reply string
}

func (s scriptedLLM) Complete(_ context.Context, _ string, _ []agent.Message, _ []agent.Tool) (*agent.Response, error) {
	return &agent.Response{Content: s.reply}, nil
}

func newTestServer(reply string) *httptest.Server {
	a := agent.New(agent.WithLLM(scriptedLLM{reply: reply}))
	return httptest.NewServer(server.New(a, store.Noop{}).Router())
}

func TestChatEndpoint(t *testing.T) {
	ts := newTestServer("Hello from the agent")
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/chat", "application/json",
		strings.NewReader(`{"message":"hi"}`))
	if err != nil {
		t.Fatalf("POST /chat failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body server.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Reply != "Hello from the agent" {
		t.Errorf("reply = %q", body.Reply)
	}
	if body.ConversationID == "" {
		t.Error("conversation id is empty")
	}
}

func TestChatEndpoint_EmptyMessage(t *testing.T) {
	ts := newTestServer("unused")
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/chat", "application/json",
		strings.NewReader(`{"message":"  "}`))
	if err != nil {
		t.Fatalf("POST /chat failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestChatEndpoint_BadBody(t *testing.T) {
	ts := newTestServer("unused")
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/chat", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatalf("POST /chat failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer("unused")
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
