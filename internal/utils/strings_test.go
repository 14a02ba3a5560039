package utils

import (
	"strings"
	"testing"
)

func TestJSONToString(t *testing.T) {
	input := map[string]string{"erros": "", "evaluated": "42"}

	compact := JSONToString(input)
	if compact != `{"erros":"","evaluated":"42"}` {
		t.Errorf("unexpected compact output: %q", compact)
	}

	indented := JSONToString(input, true)
	if !strings.Contains(indented, "\n  \"erros\"") {
		t.Errorf("expected two-space indentation, got: %q", indented)
	}
}

func TestJSONToString_MarshalError(t *testing.T) {
	result := JSONToString(make(chan int))
	if !strings.HasPrefix(result, `{"error":`) {
		t.Errorf("expected error JSON, got: %q", result)
	}
}

func TestTruncateString(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		maxLen        int
		wantTruncated bool
	}{
		{"shorter than maxLen", "hello", 10, false},
		{"exactly maxLen", "hello", 5, false},
		{"longer than maxLen", "hello world", 5, true},
		{"zero maxLen short input", "hello", 0, false},
		{"zero maxLen uses default", strings.Repeat("a", DefaultMaxStringLength+1), 0, true},
		{"negative maxLen uses default", strings.Repeat("b", DefaultMaxStringLength+1), -1, true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := TruncateString(testCase.input, testCase.maxLen)
			hasSuffix := strings.Contains(got, "... (truncated, total:")
			if hasSuffix != testCase.wantTruncated {
				t.Errorf("TruncateString(%q, %d) = %q, truncated=%v want %v",
					testCase.input, testCase.maxLen, got, hasSuffix, testCase.wantTruncated)
			}
		})
	}
}

func TestTruncateString_RuneBoundary(t *testing.T) {
	// "ñ" is two bytes; cutting at 2 would split it.
	got := TruncateString("añb", 2)
	if !strings.HasPrefix(got, "a...") {
		t.Errorf("expected cut before the multi-byte rune, got %q", got)
	}
	if !strings.Contains(got, "total: 4 chars") {
		t.Errorf("expected original byte length, got %q", got)
	}
}
