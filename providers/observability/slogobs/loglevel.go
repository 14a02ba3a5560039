package slogobs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace sits below debug and is only enabled explicitly.
const LevelTrace = slog.LevelDebug - 4

// GetLogLevelFromEnv returns the level configured via LPP_LOG_LEVEL, falling
// back to LOG_LEVEL. Default: INFO.
func GetLogLevelFromEnv() slog.Level {
	level := os.Getenv("LPP_LOG_LEVEL")
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	return ParseLogLevel(level)
}

// ParseLogLevel parses TRACE, DEBUG, INFO, WARN/WARNING or ERROR in any case.
// Empty input yields INFO; unknown values yield INFO and a warning on stderr.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "", "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "Warning: unknown log level '%s', using INFO\n", level)
		return slog.LevelInfo
	}
}
