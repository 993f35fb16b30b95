package configs

import (
	"testing"
	"time"
)

// clearEnv blanks every variable LoadConfig reads so ambient environment
// never leaks into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ENVIRONMENT", "CHAT_SERVER_PORT", "ADMIN_PORT", "ALLOWED_ORIGINS",
		"IDLE_TIMEOUT_SECONDS", "OUTBOX_SIZE", "CONNECT_RATE", "CONNECT_BURST",
	} {
		t.Setenv(name, "")
	}
}

// TestLoadConfigDefaults verifies every default applied with an empty
// environment.
func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "development")
	}
	if cfg.Port != 4000 {
		t.Errorf("Port = %d, want 4000", cfg.Port)
	}
	if cfg.AdminPort != 0 {
		t.Errorf("AdminPort = %d, want 0 (disabled)", cfg.AdminPort)
	}
	if cfg.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, want 5m", cfg.IdleTimeout)
	}
	if cfg.OutboxSize != 256 {
		t.Errorf("OutboxSize = %d, want 256", cfg.OutboxSize)
	}
	if cfg.ConnectRate != 1.0 || cfg.ConnectBurst != 8 {
		t.Errorf("connect limit = (%v, %d), want (1.0, 8)", cfg.ConnectRate, cfg.ConnectBurst)
	}
}

// TestLoadConfigOverrides verifies environment variables take effect,
// including origin list parsing.
func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CHAT_SERVER_PORT", "5000")
	t.Setenv("ADMIN_PORT", "9100")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("IDLE_TIMEOUT_SECONDS", "60")
	t.Setenv("OUTBOX_SIZE", "16")
	t.Setenv("CONNECT_RATE", "0.5")
	t.Setenv("CONNECT_BURST", "3")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Environment != "production" || cfg.Port != 5000 || cfg.AdminPort != 9100 {
		t.Errorf("ports = (%q, %d, %d), want (production, 5000, 9100)", cfg.Environment, cfg.Port, cfg.AdminPort)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v, want two trimmed origins", cfg.AllowedOrigins)
	}
	if cfg.IdleTimeout != time.Minute {
		t.Errorf("IdleTimeout = %v, want 1m", cfg.IdleTimeout)
	}
	if cfg.OutboxSize != 16 || cfg.ConnectRate != 0.5 || cfg.ConnectBurst != 3 {
		t.Errorf("got (%d, %v, %d), want (16, 0.5, 3)", cfg.OutboxSize, cfg.ConnectRate, cfg.ConnectBurst)
	}
}

// TestLoadConfigRejectsBadValues covers the validation failures.
func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "CHAT_SERVER_PORT", "nope"},
		{"privileged port", "CHAT_SERVER_PORT", "80"},
		{"port out of range", "CHAT_SERVER_PORT", "70000"},
		{"admin port equals chat port", "ADMIN_PORT", "4000"},
		{"negative idle timeout", "IDLE_TIMEOUT_SECONDS", "-1"},
		{"zero outbox", "OUTBOX_SIZE", "0"},
		{"zero connect rate", "CONNECT_RATE", "0"},
		{"zero burst", "CONNECT_BURST", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := LoadConfig(); err == nil {
				t.Fatalf("LoadConfig() accepted %s=%s", tt.key, tt.value)
			}
		})
	}
}
