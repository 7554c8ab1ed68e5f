package config

import (
	"strings"
	"testing"
)

func validProduction() *Config {
	return &Config{
		Environment:          EnvProduction,
		StoreBackend:         StorePostgres,
		LogLevel:             "info",
		RandomSource:         "crypto",
		HistoryLimit:         50,
		SessionAuthKey:       strings.Repeat("a", 32),
		SessionEncryptionKey: strings.Repeat("b", 32),
	}
}

func TestValidateForProduction_NonProductionIsNoop(t *testing.T) {
	cfg := &Config{Environment: EnvDevelopment, LogLevel: "debug", RandomSource: "seeded", StoreBackend: StoreMemory}
	if err := ValidateForProduction(cfg); err != nil {
		t.Fatalf("expected nil for development, got %v", err)
	}
}

func TestValidateForProduction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"short auth key", func(c *Config) { c.SessionAuthKey = "short" }, "SESSION_AUTH_KEY"},
		{"short encryption key", func(c *Config) { c.SessionEncryptionKey = "short" }, "SESSION_ENCRYPTION_KEY"},
		{"debug logging", func(c *Config) { c.LogLevel = "debug" }, "LOG_LEVEL"},
		{"seeded source", func(c *Config) { c.RandomSource = "seeded" }, "RANDOM_SOURCE"},
		{"memory store", func(c *Config) { c.StoreBackend = StoreMemory }, "STORE_BACKEND"},
		{"redis store without url", func(c *Config) { c.StoreBackend = StoreRedis }, "REDIS_URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validProduction()
			tt.mutate(cfg)
			err := ValidateForProduction(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(&Config{StoreBackend: StoreSQLite, HistoryLimit: 10}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := Validate(&Config{StoreBackend: StoreRedis, HistoryLimit: 10}); err == nil {
		t.Fatal("expected error for redis backend without REDIS_URL")
	}
	if err := Validate(&Config{StoreBackend: StoreSQLite}); err == nil {
		t.Fatal("expected error for zero HISTORY_LIMIT")
	}
}
