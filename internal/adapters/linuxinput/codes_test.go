//go:build linux

package linuxinput

import (
	"testing"

	evdev "github.com/holoplot/go-evdev"
)

func TestParseAndFormatCodes(t *testing.T) {
	tests := []struct {
		raw      string
		expected uint16
	}{
		{raw: "KEY_F8", expected: CodeKEYF8},
		{raw: "f8", expected: CodeKEYF8},
		{raw: " F8 ", expected: CodeKEYF8},
		{raw: "BTN_EXTRA", expected: CodeBTNExtra},
		{raw: "btn_left", expected: CodeBTNLeft},
		{raw: "0x42", expected: 0x42},
	}

	for _, tc := range tests {
		got, err := ParseCode(tc.raw)
		if err != nil {
			t.Fatalf("ParseCode(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.expected {
			t.Fatalf("ParseCode(%q)=%d, want %d", tc.raw, got, tc.expected)
		}
	}

	if name := FormatCodeName(CodeKEYF8); name != "KEY_F8" {
		t.Fatalf("FormatCodeName(CodeKEYF8)=%q, want KEY_F8", name)
	}
}

func TestParseCodeRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "NOT_A_KEY", "70000"} {
		if _, err := ParseCode(raw); err == nil {
			t.Fatalf("ParseCode(%q) expected error", raw)
		}
	}
}

func TestIsPressIgnoresRepeatAndRelease(t *testing.T) {
	press := evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_F8, Value: 1}
	if !isPress(press, CodeKEYF8) {
		t.Fatalf("expected key down to count as press")
	}

	for _, ev := range []evdev.InputEvent{
		{Type: evdev.EV_KEY, Code: evdev.KEY_F8, Value: 0},
		{Type: evdev.EV_KEY, Code: evdev.KEY_F8, Value: 2},
		{Type: evdev.EV_KEY, Code: evdev.KEY_F9, Value: 1},
		{Type: evdev.EV_REL, Code: evdev.KEY_F8, Value: 1},
	} {
		if isPress(ev, CodeKEYF8) {
			t.Fatalf("isPress(%+v) = true, want false", ev)
		}
	}
}
