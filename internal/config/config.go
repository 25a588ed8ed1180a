package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the agent configuration. It is loaded once from the
// environment and read-only afterwards.
type Config struct {
	ListenAddr    string        // address the HTTP API binds to
	ChatWebhook   string        // chat webhook URL for notifications (empty disables them)
	BridgeURL     string        // csh param bridge base URL, or "local" for socketcan counters
	PSUNode       int           // node id of the power supply
	CANNode       int           // node id whose CAN interfaces are checked
	Interfaces    []string      // interface names to check on the CAN node
	CheckInterval time.Duration // how often the background runner re-runs procedures
	TokenSecret   string        // JWT signing secret (empty: generated and persisted)
}

func Load() *Config {
	return &Config{
		ListenAddr:    envOr("PROCD_LISTEN", "localhost:8080"),
		ChatWebhook:   os.Getenv("PROCD_CHAT_WEBHOOK"),
		BridgeURL:     envOr("PROCD_BRIDGE_URL", "http://localhost:8010"),
		PSUNode:       envInt("PROCD_PSU_NODE", 4),
		CANNode:       envInt("PROCD_CAN_NODE", 1),
		Interfaces:    envList("PROCD_INTERFACES", []string{"CAN0", "CAN1"}),
		CheckInterval: envDuration("PROCD_CHECK_INTERVAL", 10*time.Minute),
		TokenSecret:   os.Getenv("PROCD_TOKEN_SECRET"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
