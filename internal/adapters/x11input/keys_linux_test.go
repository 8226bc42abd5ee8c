//go:build linux

package x11input

import (
	"testing"

	"autotap/internal/adapters/linuxinput"

	"github.com/BurntSushi/xgb/xproto"
)

func mustCode(t *testing.T, name string) uint16 {
	t.Helper()
	code, err := linuxinput.ParseCode(name)
	if err != nil {
		t.Fatalf("ParseCode(%q): %v", name, err)
	}
	return code
}

func TestLinuxCodeToKeysym(t *testing.T) {
	tests := []struct {
		name   string
		keysym string
	}{
		{name: "KEY_F8", keysym: "F8"},
		{name: "KEY_A", keysym: "a"},
		{name: "KEY_7", keysym: "7"},
		{name: "KEY_ESC", keysym: "Escape"},
		{name: "KEY_DOT", keysym: "period"},
		{name: "KEY_KP5", keysym: "KP_5"},
		{name: "KEY_KPENTER", keysym: "KP_Enter"},
	}
	for _, tc := range tests {
		got, ok := linuxCodeToKeysym(mustCode(t, tc.name))
		if !ok || got != tc.keysym {
			t.Fatalf("linuxCodeToKeysym(%s)=%q,%v want %q", tc.name, got, ok, tc.keysym)
		}
	}

	if _, ok := linuxCodeToKeysym(mustCode(t, "BTN_LEFT")); ok {
		t.Fatalf("mouse buttons must not resolve to keysyms")
	}
}

func TestKeysymRoundTrip(t *testing.T) {
	for _, name := range []string{"KEY_F12", "KEY_Q", "KEY_0", "KEY_SPACE", "KEY_LEFTCTRL", "KEY_KP3", "KEY_KPMINUS"} {
		code := mustCode(t, name)
		keysym, ok := linuxCodeToKeysym(code)
		if !ok {
			t.Fatalf("linuxCodeToKeysym(%s) failed", name)
		}
		back, ok := keysymToLinuxCode(keysym)
		if !ok || back != code {
			t.Fatalf("keysymToLinuxCode(%q)=%d,%v want %d", keysym, back, ok, code)
		}
	}

	if _, ok := keysymToLinuxCode("XF86AudioPlay"); ok {
		t.Fatalf("unknown keysym should not resolve")
	}
}

func TestButtonMapping(t *testing.T) {
	button, ok := codeToXButton(mustCode(t, "BTN_SIDE"))
	if !ok || button != 8 {
		t.Fatalf("codeToXButton(BTN_SIDE)=%d,%v want 8", button, ok)
	}
	code, ok := xButtonToCode(xproto.ButtonIndex3)
	if !ok || code != mustCode(t, "BTN_RIGHT") {
		t.Fatalf("xButtonToCode(3)=%d,%v", code, ok)
	}
	if _, ok := xButtonToCode(4); ok {
		t.Fatalf("scroll button should not map")
	}
}
