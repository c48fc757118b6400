package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/amreid/nextup/internal/llm"
)

const defaultAddr = ":8080"

// Config is the full server configuration, read from environment variables.
type Config struct {
	DBPath         string
	Addr           string
	JWTSecret      string
	AllowedOrigins []string
	LLM            llm.Config
}

// Load reads configuration from the environment. The database path defaults
// to ~/.nextup/nextup.db when NEXTUP_DB is unset.
func Load() (Config, error) {
	cfg := Config{
		DBPath:         os.Getenv("NEXTUP_DB"),
		Addr:           os.Getenv("NEXTUP_ADDR"),
		JWTSecret:      os.Getenv("NEXTUP_JWT_SECRET"),
		AllowedOrigins: splitOrigins(os.Getenv("NEXTUP_CORS_ORIGINS")),
		LLM:            llm.LoadConfig(),
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, errors.New("NEXTUP_DB is unset and no home directory is available")
		}
		cfg.DBPath = filepath.Join(home, ".nextup", "nextup.db")
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}
	return cfg, nil
}

// ValidateForServe checks the settings the serve command cannot run without.
func (c Config) ValidateForServe() error {
	if c.JWTSecret == "" {
		return errors.New("NEXTUP_JWT_SECRET must be set")
	}
	return nil
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
