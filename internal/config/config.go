package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the production report API endpoint.
const DefaultBaseURL = "https://ppcustomreport-crg4b5g5gccfgmhn.canadacentral-01.azurewebsites.net"

// Config holds the runtime configuration for payreport.
type Config struct {
	BaseURL  string // report API base URL, trailing slashes stripped
	Token    string // bearer token; empty means unauthenticated requests
	StateDir string // directory for the handoff store and session index
	LogLevel string // "debug", "info", "warn", "error"
}

// Load reads configuration from the environment, with an optional .env file
// in the working directory taking the lowest precedence.
func Load() Config {
	// Missing .env is the normal case; real env vars always win.
	_ = godotenv.Load()

	return Config{
		BaseURL:  envStr("PAYREPORT_BASE_URL", DefaultBaseURL),
		Token:    envStr("PAYREPORT_TOKEN", ""),
		StateDir: envStr("PAYREPORT_STATE_DIR", defaultStateDir()),
		LogLevel: envStr("PAYREPORT_LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// defaultStateDir returns ~/.payreport, falling back to the working
// directory when the home directory cannot be resolved.
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".payreport"
	}
	return filepath.Join(home, ".payreport")
}
