package utils

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestNormalizeJSON_ValidPassesThrough(t *testing.T) {
	raw, valid := NormalizeJSON([]byte("  {\"message\":\"syntax error\"}\n"))
	if !valid {
		t.Error("expected valid=true")
	}
	if string(raw) != `{"message":"syntax error"}` {
		t.Errorf("unexpected output %s", raw)
	}
}

func TestNormalizeJSON_ValidScalar(t *testing.T) {
	raw, valid := NormalizeJSON([]byte(`"boom"`))
	if !valid || string(raw) != `"boom"` {
		t.Errorf("expected string passthrough, got %s valid=%v", raw, valid)
	}
}

func TestNormalizeJSON_PlainTextBecomesString(t *testing.T) {
	raw, valid := NormalizeJSON([]byte("source field is required\n"))
	if valid {
		t.Error("expected valid=false for plain text")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		t.Fatalf("expected a JSON string, got %s: %v", raw, err)
	}
	if text != "source field is required" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestNormalizeJSON_MalformedObjectKeptVerbatim(t *testing.T) {
	input := `{message: 'syntax error'}`
	raw, valid := NormalizeJSON([]byte(input))
	if valid {
		t.Error("expected valid=false for malformed input")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		t.Fatalf("expected a JSON string, got %s: %v", raw, err)
	}
	if text != input {
		t.Errorf("expected the raw text %q, got %q", input, text)
	}
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"object", `{message: 'syntax error'}`, `{"message":"syntax error"}`, true},
		{"array", `[1, 2,]`, `[1,2]`, true},
		{"plain text", "source field is required", "", false},
		{"empty", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RepairJSON(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (got %s)", ok, tt.wantOK, got)
			}
			if !ok {
				return
			}
			var gotValue, wantValue any
			if err := json.Unmarshal(got, &gotValue); err != nil {
				t.Fatalf("repaired output is not JSON: %s", got)
			}
			_ = json.Unmarshal([]byte(tt.want), &wantValue)
			if fmt.Sprint(gotValue) != fmt.Sprint(wantValue) {
				t.Errorf("RepairJSON(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeJSON_Empty(t *testing.T) {
	raw, valid := NormalizeJSON(nil)
	if valid || string(raw) != "null" {
		t.Errorf("expected null, got %s valid=%v", raw, valid)
	}
}
