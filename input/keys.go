package input

import (
	"fmt"
	"strings"
)

// Key is a virtual key code; values follow the common desktop virtual-key table
type Key uint16

const (
	KeyBackspace  Key = 0x08
	KeyTab        Key = 0x09
	KeyEnter      Key = 0x0D
	KeyShift      Key = 0x10
	KeyControl    Key = 0x11
	KeyPause      Key = 0x13
	KeyCapital    Key = 0x14
	KeyEscape     Key = 0x1B
	KeyConvert    Key = 0x1C
	KeyNonconvert Key = 0x1D
	KeyAccept     Key = 0x1E
	KeyModechange Key = 0x1F
	KeySpace      Key = 0x20
	KeyPrior      Key = 0x21
	KeyNext       Key = 0x22
	KeyEnd        Key = 0x23
	KeyHome       Key = 0x24
	KeyLeft       Key = 0x25
	KeyUp         Key = 0x26
	KeyRight      Key = 0x27
	KeyDown       Key = 0x28
	KeySelect     Key = 0x29
	KeyPrint      Key = 0x2A
	KeyExecute    Key = 0x2B
	KeySnapshot   Key = 0x2C
	KeyInsert     Key = 0x2D
	KeyDelete     Key = 0x2E
	KeyHelp       Key = 0x2F

	// Digits and letters use their ASCII upper-case codes
	Key0 Key = 0x30
	Key1 Key = 0x31
	Key2 Key = 0x32
	Key3 Key = 0x33
	Key4 Key = 0x34
	Key5 Key = 0x35
	Key6 Key = 0x36
	Key7 Key = 0x37
	Key8 Key = 0x38
	Key9 Key = 0x39

	KeyA Key = 0x41
	KeyB Key = 0x42
	KeyC Key = 0x43
	KeyD Key = 0x44
	KeyE Key = 0x45
	KeyF Key = 0x46
	KeyG Key = 0x47
	KeyH Key = 0x48
	KeyI Key = 0x49
	KeyJ Key = 0x4A
	KeyK Key = 0x4B
	KeyL Key = 0x4C
	KeyM Key = 0x4D
	KeyN Key = 0x4E
	KeyO Key = 0x4F
	KeyP Key = 0x50
	KeyQ Key = 0x51
	KeyR Key = 0x52
	KeyS Key = 0x53
	KeyT Key = 0x54
	KeyU Key = 0x55
	KeyV Key = 0x56
	KeyW Key = 0x57
	KeyX Key = 0x58
	KeyY Key = 0x59
	KeyZ Key = 0x5A

	KeyLWin  Key = 0x5B
	KeyRWin  Key = 0x5C
	KeyApps  Key = 0x5D
	KeySleep Key = 0x5F

	KeyNumpad0   Key = 0x60
	KeyNumpad9   Key = 0x69
	KeyMultiply  Key = 0x6A
	KeyAdd       Key = 0x6B
	KeySeparator Key = 0x6C
	KeySubtract  Key = 0x6D
	KeyDecimal   Key = 0x6E
	KeyDivide    Key = 0x6F

	KeyF1  Key = 0x70
	KeyF12 Key = 0x7B
	KeyF24 Key = 0x87

	KeyNumlock     Key = 0x90
	KeyScroll      Key = 0x91
	KeyNumpadEqual Key = 0x92

	KeyLShift   Key = 0xA0
	KeyRShift   Key = 0xA1
	KeyLControl Key = 0xA2
	KeyRControl Key = 0xA3
	KeyLMenu    Key = 0xA4
	KeyRMenu    Key = 0xA5

	KeySemicolon Key = 0xBA
	KeyPlus      Key = 0xBB
	KeyComma     Key = 0xBC
	KeyMinus     Key = 0xBD
	KeyPeriod    Key = 0xBE
	KeySlash     Key = 0xBF
	KeyGrave     Key = 0xC0

	// KeyMax is one past the highest tracked key
	KeyMax Key = 0x100
)

// Button identifies a mouse button
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonWheelUp
	ButtonWheelDown

	ButtonMax
)

var keyToName = map[Key]string{
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyShift:     "shift",
	KeyControl:   "control",
	KeyPause:     "pause",
	KeyCapital:   "capital",
	KeyEscape:    "escape",
	KeySpace:     "space",
	KeyPrior:     "page_up",
	KeyNext:      "page_down",
	KeyEnd:       "end",
	KeyHome:      "home",
	KeyLeft:      "left",
	KeyUp:        "up",
	KeyRight:     "right",
	KeyDown:      "down",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
	KeyHelp:      "help",

	KeyMultiply:  "multiply",
	KeyAdd:       "add",
	KeySubtract:  "subtract",
	KeyDecimal:   "decimal",
	KeyDivide:    "divide",
	KeyNumlock:   "numlock",
	KeyScroll:    "scroll",
	KeySemicolon: "semicolon",
	KeyPlus:      "plus",
	KeyComma:     "comma",
	KeyMinus:     "minus",
	KeyPeriod:    "period",
	KeySlash:     "slash",
	KeyGrave:     "grave",
}

var nameToKey = func() map[string]Key {
	m := make(map[string]Key, len(keyToName)+64)
	for k, name := range keyToName {
		m[name] = k
	}
	for k := Key0; k <= Key9; k++ {
		m[string(rune(k))] = k
	}
	for k := KeyA; k <= KeyZ; k++ {
		m[strings.ToLower(string(rune(k)))] = k
	}
	for k := KeyNumpad0; k <= KeyNumpad9; k++ {
		m[fmt.Sprintf("numpad%d", k-KeyNumpad0)] = k
	}
	for k := KeyF1; k <= KeyF24; k++ {
		m[fmt.Sprintf("f%d", k-KeyF1+1)] = k
	}
	return m
}()

func (k Key) String() string {
	switch {
	case k >= Key0 && k <= Key9, k >= KeyA && k <= KeyZ:
		return strings.ToLower(string(rune(k)))
	case k >= KeyNumpad0 && k <= KeyNumpad9:
		return fmt.Sprintf("numpad%d", k-KeyNumpad0)
	case k >= KeyF1 && k <= KeyF24:
		return fmt.Sprintf("f%d", k-KeyF1+1)
	}
	if name, ok := keyToName[k]; ok {
		return name
	}
	return fmt.Sprintf("key_%#02x", uint16(k))
}

// ParseKey resolves a config name such as "escape", "q" or "f5"
func ParseKey(name string) (Key, bool) {
	k, ok := nameToKey[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// KeyFromRune maps a printable ASCII rune to its virtual key
func KeyFromRune(r rune) (Key, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A'), true
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0'), true
	}
	switch r {
	case ' ':
		return KeySpace, true
	case ';':
		return KeySemicolon, true
	case '=', '+':
		return KeyPlus, true
	case ',':
		return KeyComma, true
	case '-':
		return KeyMinus, true
	case '.':
		return KeyPeriod, true
	case '/':
		return KeySlash, true
	case '`':
		return KeyGrave, true
	case '*':
		return KeyMultiply, true
	}
	return 0, false
}

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonWheelUp:
		return "wheel_up"
	case ButtonWheelDown:
		return "wheel_down"
	default:
		return fmt.Sprintf("button_%d", uint8(b))
	}
}
