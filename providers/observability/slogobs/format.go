package slogobs

import (
	"os"
	"strings"
)

// Format represents the output format for logs.
type Format string

const (
	// FormatCompact is one line per record with JSON-encoded attributes.
	FormatCompact Format = "compact"

	// FormatPretty puts every attribute on its own indented line.
	FormatPretty Format = "pretty"

	// FormatJSON is one JSON object per record.
	FormatJSON Format = "json"
)

// ParseFormat maps a name to a Format. Unknown names yield FormatCompact.
func ParseFormat(s string) Format {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return FormatCompact
	}
}

// GetFormatFromEnv reads LPP_LOG_FORMAT, then LOG_FORMAT.
func GetFormatFromEnv() Format {
	if format := os.Getenv("LPP_LOG_FORMAT"); format != "" {
		return ParseFormat(format)
	}
	return ParseFormat(os.Getenv("LOG_FORMAT"))
}

func (f Format) String() string {
	return string(f)
}
