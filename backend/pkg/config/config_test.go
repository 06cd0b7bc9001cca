package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		Port:            "8080",
		Env:             "development",
		Neo4jURI:        "bolt://localhost:7687",
		Neo4jUser:       "neo4j",
		Neo4jPassword:   "password",
		GroqAPIKey:      "key",
		ModelID:         "llama3-70b-8192",
		Crawl4AIBaseURL: "http://localhost:11235",
		JWTSecret:       "secret",
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Valid config rejected: %v", err)
	}

	mutations := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing neo4j uri", func(c *Config) { c.Neo4jURI = "" }},
		{"missing neo4j user", func(c *Config) { c.Neo4jUser = "" }},
		{"missing neo4j password", func(c *Config) { c.Neo4jPassword = "" }},
		{"missing api key", func(c *Config) { c.GroqAPIKey = "" }},
		{"missing model id", func(c *Config) { c.ModelID = "" }},
		{"missing crawl url", func(c *Config) { c.Crawl4AIBaseURL = "" }},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }},
	}
	for _, tc := range mutations {
		cfg := validConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}

	// Crawl LLM key is optional
	cfg := validConfig()
	cfg.Crawl4AILLMKey = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Crawl LLM key must be optional: %v", err)
	}
}

func TestEnvHelpers(t *testing.T) {
	cfg := validConfig()
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("development env misreported")
	}
	cfg.Env = "production"
	if cfg.IsDevelopment() || !cfg.IsProduction() {
		t.Error("production env misreported")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CONFIG_TEST_KEY", "set")
	if got := getEnv("CONFIG_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("Expected env value, got %q", got)
	}
	if got := getEnv("CONFIG_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %q", got)
	}
}
