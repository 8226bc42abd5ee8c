package hotkey

import "testing"

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func TestKeyName(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{raw: "F8", expected: "f8"},
		{raw: "KEY_F8", expected: "f8"},
		{raw: " key_a ", expected: "a"},
		{raw: "KEY_LEFTCTRL", expected: "ctrl"},
		{raw: "space", expected: "space"},
	}
	for _, tc := range tests {
		if got := KeyName(tc.raw); got != tc.expected {
			t.Fatalf("KeyName(%q)=%q, want %q", tc.raw, got, tc.expected)
		}
	}
}

func TestNewToggleListenerValidatesKey(t *testing.T) {
	if _, err := NewToggleListener("", func() {}, noopLogger{}); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if _, err := NewToggleListener("KEY_NOPE", func() {}, noopLogger{}); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if _, err := NewToggleListener("F8", nil, noopLogger{}); err == nil {
		t.Fatalf("expected error for nil callback")
	}
	if _, err := NewToggleListener("F8", func() {}, noopLogger{}); err != nil {
		t.Fatalf("NewToggleListener(F8) error = %v", err)
	}
}
