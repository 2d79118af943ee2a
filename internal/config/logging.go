package config

import (
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "SITEGEN_LOG_LEVEL"

// ParseLogLevel maps a level name to slog. Unknown names fall back to info.
func ParseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResolveLogLevel applies precedence: verbose flag > SITEGEN_LOG_LEVEL > fallback.
func ResolveLogLevel(verbose bool, fallback string) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		return ParseLogLevel(v)
	}
	return ParseLogLevel(fallback)
}
