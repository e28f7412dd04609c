// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration, read once at startup.
type Config struct {
	AnthropicAPIKey    string
	AnthropicModel     string // empty = adapter default
	AnthropicMaxTokens int64
	EthRPCURL          string
	DatabaseURL        string // empty = persistence disabled
	PersonalityPath    string
	ListenAddr         string // empty = interactive REPL mode
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", ""),
		AnthropicMaxTokens: int64(getEnvInt("ANTHROPIC_MAX_TOKENS", 1024)),
		EthRPCURL:          getEnv("ETH_RPC_URL", "https://ethereum-sepolia-rpc.publicnode.com"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		PersonalityPath:    getEnv("PERSONALITY_PATH", "personality.json"),
		ListenAddr:         getEnv("LISTEN_ADDR", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}
	if c.AnthropicMaxTokens <= 0 {
		return fmt.Errorf("ANTHROPIC_MAX_TOKENS must be > 0")
	}
	if c.EthRPCURL == "" {
		return fmt.Errorf("ETH_RPC_URL cannot be empty")
	}
	if c.PersonalityPath == "" {
		return fmt.Errorf("PERSONALITY_PATH cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
