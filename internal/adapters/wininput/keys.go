// Package wininput taps with SendInput and listens for the toggle hotkey
// through low-level keyboard and mouse hooks.
package wininput

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	vkLBUTTON  uint32 = 0x01
	vkRBUTTON  uint32 = 0x02
	vkMBUTTON  uint32 = 0x04
	vkXBUTTON1 uint32 = 0x05
	vkXBUTTON2 uint32 = 0x06

	vkRETURN   uint32 = 0x0D
	vkSHIFT    uint32 = 0x10
	vkCONTROL  uint32 = 0x11
	vkMENU     uint32 = 0x12
	vk0        uint32 = 0x30
	vkA        uint32 = 0x41
	vkNUMPAD0  uint32 = 0x60
	vkF1       uint32 = 0x70
	vkF8       uint32 = 0x77
	vkLSHIFT   uint32 = 0xA0
	vkLCONTROL uint32 = 0xA2
	vkRCONTROL uint32 = 0xA3
	vkLMENU    uint32 = 0xA4
	vkRMENU    uint32 = 0xA5
)

const llkhfExtended = 0x01

// namedKeys maps evdev-style names (without KEY_ or BTN_) to virtual-key
// codes. Letters, digits, F1-F24 and KP0-KP9 are derived in init.
var namedKeys = map[string]uint32{
	"ESC":        0x1B,
	"BACKSPACE":  0x08,
	"TAB":        0x09,
	"ENTER":      vkRETURN,
	"SPACE":      0x20,
	"PAUSE":      0x13,
	"CAPSLOCK":   0x14,
	"PAGEUP":     0x21,
	"PAGEDOWN":   0x22,
	"END":        0x23,
	"HOME":       0x24,
	"LEFT":       0x25,
	"UP":         0x26,
	"RIGHT":      0x27,
	"DOWN":       0x28,
	"SYSRQ":      0x2C,
	"INSERT":     0x2D,
	"DELETE":     0x2E,
	"LEFTMETA":   0x5B,
	"RIGHTMETA":  0x5C,
	"MENU":       0x5D,
	"KPASTERISK": 0x6A,
	"KPPLUS":     0x6B,
	"KPMINUS":    0x6D,
	"KPDOT":      0x6E,
	"KPSLASH":    0x6F,
	"NUMLOCK":    0x90,
	"SCROLLLOCK": 0x91,
	"LEFTSHIFT":  vkLSHIFT,
	"RIGHTSHIFT": 0xA1,
	"LEFTCTRL":   vkLCONTROL,
	"RIGHTCTRL":  vkRCONTROL,
	"LEFTALT":    vkLMENU,
	"RIGHTALT":   vkRMENU,
	"MUTE":       0xAD,
	"VOLUMEDOWN": 0xAE,
	"VOLUMEUP":   0xAF,
	"SEMICOLON":  0xBA,
	"EQUAL":      0xBB,
	"COMMA":      0xBC,
	"MINUS":      0xBD,
	"DOT":        0xBE,
	"SLASH":      0xBF,
	"GRAVE":      0xC0,
	"LEFTBRACE":  0xDB,
	"BACKSLASH":  0xDC,
	"RIGHTBRACE": 0xDD,
	"APOSTROPHE": 0xDE,
}

// buttonKeys are names only valid with the BTN_ prefix. BTN_LEFT and
// BTN_RIGHT would otherwise collide with the arrow keys.
var buttonKeys = map[string]uint32{
	"LEFT":    vkLBUTTON,
	"RIGHT":   vkRBUTTON,
	"MIDDLE":  vkMBUTTON,
	"SIDE":    vkXBUTTON1,
	"BACK":    vkXBUTTON1,
	"EXTRA":   vkXBUTTON2,
	"FORWARD": vkXBUTTON2,
}

var (
	vkNames    map[uint32]string
	captureVKs []uint32
)

func init() {
	for i := uint32(0); i < 26; i++ {
		namedKeys[string(rune('A'+i))] = vkA + i
	}
	for i := uint32(0); i < 10; i++ {
		digit := strconv.Itoa(int(i))
		namedKeys[digit] = vk0 + i
		namedKeys["KP"+digit] = vkNUMPAD0 + i
	}
	for i := uint32(0); i < 24; i++ {
		namedKeys["F"+strconv.Itoa(int(i)+1)] = vkF1 + i
	}

	vkNames = make(map[uint32]string, len(namedKeys)+len(buttonKeys))
	names := make([]string, 0, len(namedKeys))
	for name := range namedKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		vk := namedKeys[name]
		if _, exists := vkNames[vk]; !exists {
			vkNames[vk] = "KEY_" + name
		}
	}
	for _, name := range []string{"LEFT", "RIGHT", "MIDDLE", "SIDE", "EXTRA"} {
		vkNames[buttonKeys[name]] = "BTN_" + name
	}

	captureVKs = make([]uint32, 0, len(vkNames))
	for vk := range vkNames {
		captureVKs = append(captureVKs, vk)
	}
	sort.Slice(captureVKs, func(i, j int) bool { return captureVKs[i] < captureVKs[j] })
}

// ParseKey resolves F8, KEY_F8, BTN_SIDE or a numeric virtual-key code.
func ParseKey(value string) (uint32, error) {
	raw := strings.ToUpper(strings.TrimSpace(value))
	if raw == "" {
		return 0, fmt.Errorf("key is empty")
	}
	if token, ok := strings.CutPrefix(raw, "BTN_"); ok {
		if vk, ok := buttonKeys[token]; ok {
			return vk, nil
		}
		return 0, fmt.Errorf("unknown mouse button %q", value)
	}
	if vk, ok := namedKeys[strings.TrimPrefix(raw, "KEY_")]; ok {
		return vk, nil
	}

	parsed, err := strconv.ParseInt(raw, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown key %q: use names like F8, KEY_F8, BTN_SIDE or a virtual-key code", value)
	}
	if parsed <= 0 || parsed > 0xFE {
		return 0, fmt.Errorf("virtual-key code out of range: %d", parsed)
	}
	return uint32(parsed), nil
}

func KeyName(vk uint32) string {
	if name, ok := vkNames[vk]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", vk)
}

// normalizeHookVK folds the generic modifier codes a low-level hook may
// report into their left/right variants.
func normalizeHookVK(vk, flags uint32) uint32 {
	extended := flags&llkhfExtended != 0
	switch vk {
	case vkSHIFT:
		return vkLSHIFT
	case vkCONTROL:
		if extended {
			return vkRCONTROL
		}
		return vkLCONTROL
	case vkMENU:
		if extended {
			return vkRMENU
		}
		return vkLMENU
	}
	return vk
}

func isMouseVK(vk uint32) bool {
	switch vk {
	case vkLBUTTON, vkRBUTTON, vkMBUTTON, vkXBUTTON1, vkXBUTTON2:
		return true
	}
	return false
}
