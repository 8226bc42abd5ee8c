//go:build linux

package x11input

import (
	"strings"

	"autotap/internal/adapters/linuxinput"

	"github.com/BurntSushi/xgb/xproto"
)

// namedKeysyms maps evdev key names (without KEY_) to X keysym names for
// everything that is not a letter, digit or function key.
var namedKeysyms = map[string]string{
	"ESC":        "Escape",
	"ENTER":      "Return",
	"TAB":        "Tab",
	"SPACE":      "space",
	"BACKSPACE":  "BackSpace",
	"LEFTSHIFT":  "Shift_L",
	"RIGHTSHIFT": "Shift_R",
	"LEFTCTRL":   "Control_L",
	"RIGHTCTRL":  "Control_R",
	"LEFTALT":    "Alt_L",
	"RIGHTALT":   "Alt_R",
	"LEFTMETA":   "Super_L",
	"RIGHTMETA":  "Super_R",
	"CAPSLOCK":   "Caps_Lock",
	"NUMLOCK":    "Num_Lock",
	"SCROLLLOCK": "Scroll_Lock",
	"PAGEUP":     "Page_Up",
	"PAGEDOWN":   "Page_Down",
	"INSERT":     "Insert",
	"DELETE":     "Delete",
	"HOME":       "Home",
	"END":        "End",
	"UP":         "Up",
	"DOWN":       "Down",
	"LEFT":       "Left",
	"RIGHT":      "Right",
	"MENU":       "Menu",
	"PAUSE":      "Pause",
	"MINUS":      "minus",
	"EQUAL":      "equal",
	"LEFTBRACE":  "bracketleft",
	"RIGHTBRACE": "bracketright",
	"SEMICOLON":  "semicolon",
	"APOSTROPHE": "apostrophe",
	"GRAVE":      "grave",
	"BACKSLASH":  "backslash",
	"COMMA":      "comma",
	"DOT":        "period",
	"SLASH":      "slash",
	"KPPLUS":     "KP_Add",
	"KPMINUS":    "KP_Subtract",
	"KPASTERISK": "KP_Multiply",
	"KPSLASH":    "KP_Divide",
	"KPDOT":      "KP_Decimal",
	"KPENTER":    "KP_Enter",
}

var keysymToEvdev = func() map[string]string {
	m := make(map[string]string, len(namedKeysyms))
	for evdevName, keysym := range namedKeysyms {
		m[strings.ToLower(keysym)] = evdevName
	}
	return m
}()

var xButtons = []struct {
	names  []string
	button xproto.Button
}{
	{names: []string{"BTN_LEFT", "BTN_MOUSE"}, button: xproto.ButtonIndex1},
	{names: []string{"BTN_MIDDLE"}, button: xproto.ButtonIndex2},
	{names: []string{"BTN_RIGHT"}, button: xproto.ButtonIndex3},
	{names: []string{"BTN_SIDE", "BTN_BACK"}, button: 8},
	{names: []string{"BTN_EXTRA", "BTN_FORWARD"}, button: 9},
}

func codeToXButton(code uint16) (xproto.Button, bool) {
	name := linuxinput.FormatCodeName(code)
	for _, entry := range xButtons {
		for _, candidate := range entry.names {
			if candidate == name {
				return entry.button, true
			}
		}
	}
	return 0, false
}

func xButtonToCode(button xproto.Button) (uint16, bool) {
	for _, entry := range xButtons {
		if entry.button == button {
			return parseLinuxCode(entry.names[0])
		}
	}
	return 0, false
}

// linuxCodeToKeysym returns the keysym name keybind.StrToKeycodes expects.
func linuxCodeToKeysym(code uint16) (string, bool) {
	name := linuxinput.FormatCodeName(code)
	token, ok := strings.CutPrefix(name, "KEY_")
	if !ok {
		return "", false
	}
	if keysym, ok := namedKeysyms[token]; ok {
		return keysym, true
	}

	switch {
	case len(token) == 1 && token[0] >= 'A' && token[0] <= 'Z':
		return strings.ToLower(token), true
	case len(token) == 1 && isDigits(token):
		return token, true
	case isFunctionKey(token):
		return token, true
	case strings.HasPrefix(token, "KP") && len(token) == 3 && isDigits(token[2:]):
		return "KP_" + token[2:], true
	}
	return "", false
}

// keysymToLinuxCode maps a keybind.LookupString result back to an evdev code.
func keysymToLinuxCode(value string) (uint16, bool) {
	raw := strings.ToLower(strings.TrimSpace(value))
	if raw == "" {
		return 0, false
	}

	var token string
	switch {
	case len(raw) == 1 && ((raw[0] >= 'a' && raw[0] <= 'z') || isDigits(raw)):
		token = strings.ToUpper(raw)
	case isFunctionKey(strings.ToUpper(raw)):
		token = strings.ToUpper(raw)
	case strings.HasPrefix(raw, "kp_") && len(raw) == 4 && isDigits(raw[3:]):
		token = "KP" + raw[3:]
	default:
		token = keysymToEvdev[raw]
	}
	if token == "" {
		return 0, false
	}
	return parseLinuxCode("KEY_" + token)
}

func parseLinuxCode(name string) (uint16, bool) {
	code, err := linuxinput.ParseCode(name)
	if err != nil {
		return 0, false
	}
	return code, true
}

func isFunctionKey(token string) bool {
	return len(token) > 1 && token[0] == 'F' && isDigits(token[1:])
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
