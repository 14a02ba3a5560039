package utils

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// DefaultMaxStringLength is the default maximum length for truncated strings
const DefaultMaxStringLength = 500

// JSONToString returns the compact JSON form of object, or indented output
// when indent is true. Marshal failures produce a JSON error object instead
// of an error so the result is always safe to print.
func JSONToString(object any, indent ...bool) string {
	var encoded []byte
	var err error
	if len(indent) > 0 && indent[0] {
		encoded, err = json.MarshalIndent(object, "", "  ")
	} else {
		encoded, err = json.Marshal(object)
	}
	if err != nil {
		return `{"error": "failed to marshal to JSON: ` + err.Error() + `"}`
	}
	return string(encoded)
}

// TruncateString shortens s to at most maxLen bytes, never splitting a UTF-8
// sequence, and appends the original length. A zero or negative maxLen means
// DefaultMaxStringLength.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if len(s) <= maxLen {
		return s
	}

	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:cut], len(s))
}
