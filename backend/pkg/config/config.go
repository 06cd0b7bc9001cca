package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port                string
	Env                 string
	AllowedClientOrigin string

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// AI chatbot provider (Groq exposes an OpenAI-compatible API)
	GroqBaseURL string
	GroqAPIKey  string
	ModelID     string

	// Crawl4AI web scraping service
	Crawl4AIBaseURL string
	Crawl4AILLMKey  string

	// Auth
	JWTSecret string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("ENV", "development"),
		AllowedClientOrigin: getEnv("ALLOWED_CLIENT_ORIGIN", "*"),
		Neo4jURI:            getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:           getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:       getEnv("NEO4J_PASSWORD", "password"),
		GroqBaseURL:         getEnv("GROQ_BASE_URL", "https://api.groq.com/openai"),
		GroqAPIKey:          getEnv("GROQ_API_KEY", ""),
		ModelID:             getEnv("MODEL_ID", "llama3-70b-8192"),
		Crawl4AIBaseURL:     getEnv("CRAWL4AI_BASE_URL", "http://localhost:11235"),
		Crawl4AILLMKey:      getEnv("CRAWL4AI_GEMINI_KEY", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Neo4jURI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}
	if c.Neo4jUser == "" {
		return fmt.Errorf("NEO4J_USER is required")
	}
	if c.Neo4jPassword == "" {
		return fmt.Errorf("NEO4J_PASSWORD is required")
	}
	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.ModelID == "" {
		return fmt.Errorf("MODEL_ID is required")
	}
	if c.Crawl4AIBaseURL == "" {
		return fmt.Errorf("CRAWL4AI_BASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	// The crawl LLM key is only needed when the crawl service runs content filtering
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
