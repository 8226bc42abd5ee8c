package wininput

import "testing"

func TestParseKey(t *testing.T) {
	tests := []struct {
		raw      string
		expected uint32
	}{
		{raw: "F8", expected: vkF8},
		{raw: "key_f8", expected: vkF8},
		{raw: "F24", expected: vkF1 + 23},
		{raw: "A", expected: vkA},
		{raw: "KEY_Z", expected: vkA + 25},
		{raw: "KEY_7", expected: vk0 + 7},
		{raw: "KP3", expected: vkNUMPAD0 + 3},
		{raw: "KEY_LEFT", expected: 0x25},
		{raw: "BTN_LEFT", expected: vkLBUTTON},
		{raw: "btn_side", expected: vkXBUTTON1},
		{raw: "BTN_FORWARD", expected: vkXBUTTON2},
		{raw: "0x77", expected: vkF8},
	}

	for _, tc := range tests {
		got, err := ParseKey(tc.raw)
		if err != nil {
			t.Fatalf("ParseKey(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.expected {
			t.Fatalf("ParseKey(%q)=0x%X, want 0x%X", tc.raw, got, tc.expected)
		}
	}
}

func TestParseKeyRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "BTN_NOPE", "KEY_NOPE", "-1", "0x1FF"} {
		if _, err := ParseKey(raw); err == nil {
			t.Fatalf("ParseKey(%q) expected error", raw)
		}
	}
}

func TestKeyName(t *testing.T) {
	if name := KeyName(vkF8); name != "KEY_F8" {
		t.Fatalf("KeyName(vkF8)=%q, want KEY_F8", name)
	}
	if name := KeyName(vkXBUTTON2); name != "BTN_EXTRA" {
		t.Fatalf("KeyName(vkXBUTTON2)=%q, want BTN_EXTRA", name)
	}
	if name := KeyName(0xE9); name != "0xE9" {
		t.Fatalf("KeyName(0xE9)=%q, want 0xE9", name)
	}
}

func TestNormalizeHookVK(t *testing.T) {
	if vk := normalizeHookVK(vkCONTROL, llkhfExtended); vk != vkRCONTROL {
		t.Fatalf("extended control=0x%X, want right control", vk)
	}
	if vk := normalizeHookVK(vkMENU, 0); vk != vkLMENU {
		t.Fatalf("plain alt=0x%X, want left alt", vk)
	}
	if vk := normalizeHookVK(vkF8, 0); vk != vkF8 {
		t.Fatalf("F8 should pass through")
	}
	if !isMouseVK(vkXBUTTON1) || isMouseVK(vkF8) {
		t.Fatalf("isMouseVK misclassified")
	}
}
