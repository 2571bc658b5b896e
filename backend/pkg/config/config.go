package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port  string
	Env   string
	Debug bool

	// Groq (OpenAI-compatible completion API)
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string
	MaxTokens   int

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Conversation
	HistoryWindow int // turns embedded into the prompt

	// Catalog
	SearchBaseURL string // empty means the built-in mock catalog
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		Debug:         getEnvBool("DEBUG", false),
		GroqAPIKey:    getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:   getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:     getEnv("GROQ_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
		MaxTokens:     getEnvInt("MAX_TOKENS", 1000),
		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "password"),
		HistoryWindow: getEnvInt("HISTORY_WINDOW", 6),
		SearchBaseURL: getEnv("SEARCH_BASE_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.GroqModel == "" {
		return fmt.Errorf("GROQ_MODEL is required")
	}
	if c.Neo4jURI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}
	if c.Neo4jUser == "" {
		return fmt.Errorf("NEO4J_USER is required")
	}
	if c.Neo4jPassword == "" {
		return fmt.Errorf("NEO4J_PASSWORD is required")
	}
	if c.HistoryWindow < 0 {
		return fmt.Errorf("HISTORY_WINDOW must not be negative")
	}
	// SEARCH_BASE_URL is optional; the catalog falls back to mock data
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseBool(value); err == nil {
			return result
		}
	}
	return defaultValue
}
