//go:build linux

package main

import "testing"

func TestResolveLinuxBackend(t *testing.T) {
	tests := []struct {
		name        string
		configured  string
		sessionType string
		wayland     string
		display     string
		want        string
	}{
		{name: "explicit x11", configured: "x11", want: "x11"},
		{name: "evdev is wayland", configured: "evdev", display: ":0", want: "wayland"},
		{name: "session type wins", configured: "auto", sessionType: "x11", wayland: "wayland-0", want: "x11"},
		{name: "wayland display", configured: "auto", wayland: "wayland-0", display: ":0", want: "wayland"},
		{name: "x11 display", configured: "", display: ":0", want: "x11"},
		{name: "nothing set", configured: "auto", want: "wayland"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("XDG_SESSION_TYPE", tc.sessionType)
			t.Setenv("WAYLAND_DISPLAY", tc.wayland)
			t.Setenv("DISPLAY", tc.display)
			if got := resolveLinuxBackend(tc.configured); got != tc.want {
				t.Fatalf("resolveLinuxBackend(%q)=%q, want %q", tc.configured, got, tc.want)
			}
		})
	}
}
