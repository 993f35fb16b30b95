/*
Package configs is responsible for loading and parsing the application's configuration settings.

All parameters come from environment variables with sensible defaults: the
running environment, chat and ops listener ports, allowed origins for the ops
listener, idle timeout, outbox capacity, and the per-IP connect rate limit.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig contains all configuration parameters required for the server to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// AdminPort is the ops HTTP listener port. Zero disables the listener,
	// keeping the chat port the only externally visible surface.
	AdminPort int

	// AllowedOrigins restricts browser access to the ops listener.
	AllowedOrigins []string

	// Session Settings
	// IdleTimeout disconnects sessions with no inbound line for this long.
	// Zero disables idle disconnection.
	IdleTimeout time.Duration

	// OutboxSize is the per-session outbound queue capacity. A session whose
	// outbox overflows is disconnected.
	OutboxSize int

	// Connection Policy Settings
	ConnectRate  float64
	ConnectBurst int
}

// LoadConfig reads and parses the application configuration from environment
// variables, applying defaults and validating each value.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	port, err := intEnv("CHAT_SERVER_PORT", 4000)
	if err != nil {
		return nil, err
	}
	if port < 1024 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (%d-%d) to avoid privileged ports", port, 1024, 65535)
	}
	cfg.Port = port

	adminPort, err := intEnv("ADMIN_PORT", 0)
	if err != nil {
		return nil, err
	}
	if adminPort != 0 && (adminPort < 1024 || adminPort > 65535 || adminPort == cfg.Port) {
		return nil, fmt.Errorf("ADMIN_PORT %d must be unprivileged and distinct from the chat port", adminPort)
	}
	cfg.AdminPort = adminPort

	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	// --- Session Settings ---
	idleSeconds, err := intEnv("IDLE_TIMEOUT_SECONDS", 300)
	if err != nil {
		return nil, err
	}
	if idleSeconds < 0 {
		return nil, fmt.Errorf("IDLE_TIMEOUT_SECONDS must not be negative, got %d", idleSeconds)
	}
	cfg.IdleTimeout = time.Duration(idleSeconds) * time.Second

	outbox, err := intEnv("OUTBOX_SIZE", 256)
	if err != nil {
		return nil, err
	}
	if outbox < 1 {
		return nil, fmt.Errorf("OUTBOX_SIZE must be at least 1, got %d", outbox)
	}
	cfg.OutboxSize = outbox

	// --- Connection Policy Settings ---
	rateStr := os.Getenv("CONNECT_RATE")
	if rateStr == "" {
		rateStr = "1.0"
	}
	connectRate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CONNECT_RATE environment variable: %w", err)
	}
	if connectRate <= 0 {
		return nil, fmt.Errorf("CONNECT_RATE must be positive, got %v", connectRate)
	}
	cfg.ConnectRate = connectRate

	burst, err := intEnv("CONNECT_BURST", 8)
	if err != nil {
		return nil, err
	}
	if burst < 1 {
		return nil, fmt.Errorf("CONNECT_BURST must be at least 1, got %d", burst)
	}
	cfg.ConnectBurst = burst

	return cfg, nil
}

// intEnv parses an integer environment variable, returning def when unset.
func intEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}

	return val, nil
}
