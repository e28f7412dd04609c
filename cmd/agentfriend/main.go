// Agent Friend - conversational agent with on-chain Ethereum tools.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yehia67/onchain-agent-template/agent"
	"github.com/yehia67/onchain-agent-template/agent/adapters"
	"github.com/yehia67/onchain-agent-template/config"
	"github.com/yehia67/onchain-agent-template/eth"
	"github.com/yehia67/onchain-agent-template/persona"
	"github.com/yehia67/onchain-agent-template/server"
	"github.com/yehia67/onchain-agent-template/store"
	"github.com/yehia67/onchain-agent-template/tools"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	profile, err := persona.Load(cfg.PersonalityPath)
	if err != nil {
		slog.Error("Failed to load personality", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var saver store.Saver = store.Noop{}
	if cfg.DatabaseURL == "" {
		slog.Info("DATABASE_URL not set, transcript persistence disabled")
	} else if pg, err := store.Connect(ctx, cfg.DatabaseURL); err != nil {
		slog.Warn("Failed to connect to Postgres, transcript persistence disabled", "error", err)
	} else {
		defer pg.Close()
		saver = pg
		slog.Info("Successfully connected to database", "conversation_id", pg.ConversationID())
	}

	wallet := eth.NewWallet()
	client, err := eth.Dial(cfg.EthRPCURL, wallet)
	if err != nil {
		slog.Error("Failed to connect to Ethereum RPC", "url", cfg.EthRPCURL, "error", err)
		os.Exit(1)
	}

	registry := tools.NewRegistry()
	if err := tools.RegisterBuiltins(registry, client, wallet); err != nil {
		slog.Error("Failed to register tools", "error", err)
		os.Exit(1)
	}

	var llmOpts []adapters.AnthropicOption
	if cfg.AnthropicModel != "" {
		llmOpts = append(llmOpts, adapters.WithModel(cfg.AnthropicModel))
	}
	llmOpts = append(llmOpts, adapters.WithMaxTokens(cfg.AnthropicMaxTokens))

	ag := agent.New(
		agent.WithLLM(adapters.NewAnthropic(cfg.AnthropicAPIKey, llmOpts...)),
		agent.WithDispatcher(registry),
		agent.WithPersonaPrompt(profile.SystemPrompt()),
		agent.WithObserver(agent.NewConsoleObserver()),
	)

	if cfg.ListenAddr != "" {
		srv := server.New(ag, saver)
		slog.Info("Listening", "addr", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
			slog.Error("Server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	runREPL(ctx, ag, saver)
}

func runREPL(ctx context.Context, ag *agent.Agent, saver store.Saver) {
	fmt.Println("Welcome to Agent Friend! Type 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			fmt.Println("Goodbye!")
			return
		}

		if err := saver.Save(ctx, "user", input); err != nil {
			slog.Warn("Failed to persist user message", "error", err)
		}

		reply, err := ag.Chat(ctx, input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		if err := saver.Save(ctx, "assistant", reply); err != nil {
			slog.Warn("Failed to persist assistant message", "error", err)
		}

		fmt.Printf("Agent: %s\n", reply)
	}

	if err := scanner.Err(); err != nil {
		slog.Error("Input closed", "error", err)
	}
}
