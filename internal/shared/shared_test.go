package shared

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}

	if a == b {
		t.Errorf("expected unique ids, got %s twice", a)
	}
}

func TestGenerateToken(t *testing.T) {
	token := GenerateToken()

	if !strings.HasPrefix(token, "mock_token_") {
		t.Errorf("expected mock_token_ prefix, got %s", token)
	}

	if token == GenerateToken() {
		t.Error("expected unique tokens")
	}
}

func TestMarshalJSON(t *testing.T) {
	payload := map[string]string{"title": "Heat"}

	t.Run("Compact", func(t *testing.T) {
		data, err := MarshalJSON(payload, false)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}

		if string(data) != `{"title":"Heat"}` {
			t.Errorf("unexpected compact output: %s", data)
		}
	})

	t.Run("Indented", func(t *testing.T) {
		data, err := MarshalJSON(payload, true)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}

		if !strings.Contains(string(data), "\n  ") {
			t.Errorf("expected indented output, got %s", data)
		}

		var decoded map[string]string
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("indented output should round-trip: %v", err)
		}
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("expected log output to contain message, got %s", out)
	}

	if NewLogger(nil) == nil {
		t.Error("nil writer should fall back to stderr, not nil logger")
	}
}
