package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yehia67/onchain-agent-template/agent"
)

var timeTool = agent.Tool{
	Name:        "get_time",
	Description: "Get the current time in a specific timezone or local time",
	InputSchema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"timezone": {"type": "string", "description": "IANA timezone name, e.g. Europe/London, optional"}
		}
	}`),
}

const timeLayout = "2006-01-02 15:04:05"

func timeHandler(_ context.Context, input json.RawMessage) string {
	var in struct {
		Timezone string `json:"timezone"`
	}
	if err := json.Unmarshal(input, &in); err != nil {
		return errJSON("invalid input: " + err.Error())
	}

	if in.Timezone == "" {
		return fmt.Sprintf("Current local time: %s", time.Now().Format(timeLayout))
	}
	loc, err := time.LoadLocation(in.Timezone)
	if err != nil {
		return fmt.Sprintf("Current time (local, unknown timezone %s): %s", in.Timezone, time.Now().Format(timeLayout))
	}
	return fmt.Sprintf("Current time in %s: %s", in.Timezone, time.Now().In(loc).Format(timeLayout))
}
