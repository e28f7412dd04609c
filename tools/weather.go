package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yehia67/onchain-agent-template/agent"
)

var weatherTool = agent.Tool{
	Name:        "get_weather",
	Description: "Get the current weather for a given city",
	InputSchema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"city": {"type": "string", "description": "City name, e.g. cairo or london"}
		}
	}`),
}

// mock readings; a real deployment would call a weather API here.
var weatherByCity = map[string]string{
	"cairo":    "30°C, sunny",
	"london":   "15°C, cloudy with occasional rain",
	"new york": "22°C, partly cloudy",
	"tokyo":    "25°C, clear skies",
}

func weatherHandler(_ context.Context, input json.RawMessage) string {
	var in struct {
		City string `json:"city"`
	}
	if err := json.Unmarshal(input, &in); err != nil {
		return errJSON("invalid input: " + err.Error())
	}
	city := in.City
	if city == "" {
		city = "unknown"
	}
	if reading, ok := weatherByCity[strings.ToLower(city)]; ok {
		return reading
	}
	return fmt.Sprintf("Weather data for %s is not available. This is a mock implementation.", city)
}
