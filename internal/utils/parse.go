package utils

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// NormalizeJSON turns an arbitrary response body into a valid JSON value
// without rewriting its content.
//
// Valid JSON is returned unchanged (surrounding whitespace trimmed).
// Anything else, including plain-text error pages and malformed objects, is
// returned as a JSON string holding the trimmed text. An empty body yields
// JSON null.
//
// The second return value reports whether the body was valid JSON as
// received.
func NormalizeJSON(body []byte) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("null"), false
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed), true
	}

	quoted, _ := json.Marshal(string(trimmed))
	return json.RawMessage(quoted), false
}

// RepairJSON runs jsonrepair over text that starts like an object or array
// and returns the repaired value when it parses to the same kind of value.
// The input is never modified; callers keep the original text.
func RepairJSON(text string) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	opener := trimmed[0]
	if opener != '{' && opener != '[' {
		return nil, false
	}

	repaired, err := jsonrepair.JSONRepair(trimmed)
	if err != nil {
		return nil, false
	}
	repairedBytes := bytes.TrimSpace([]byte(repaired))
	if len(repairedBytes) == 0 || repairedBytes[0] != opener || !json.Valid(repairedBytes) {
		return nil, false
	}
	return json.RawMessage(repairedBytes), true
}
