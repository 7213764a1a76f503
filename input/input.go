// Package input translates platform-agnostic key, paste, and mouse
// events into the byte sequences a terminal's child process expects,
// honoring the terminal's current cursor-key and bracketed-paste modes.
// It has no dependency on any particular windowing toolkit; a GUI
// collaborator is expected to map its own key codes onto NamedKey before
// calling into this package.
package input

import "fmt"

// Modifiers reports which modifier keys were held during a key or mouse
// event.
type Modifiers struct {
	Shift bool
	Alt   bool
	Ctrl  bool
}

// csiModifierParam computes the CSI modifier parameter xterm uses in
// sequences like ESC[1;5A: 1 + shift(1) + alt(2) + ctrl(4).
func (m Modifiers) csiModifierParam() int {
	n := 1
	if m.Shift {
		n += 1
	}
	if m.Alt {
		n += 2
	}
	if m.Ctrl {
		n += 4
	}
	return n
}

func (m Modifiers) any() bool { return m.Shift || m.Alt || m.Ctrl }

// NamedKey identifies a non-printable key with a conventional escape
// sequence encoding.
type NamedKey int

const (
	KeyUp NamedKey = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyEscape
	KeyTab
	KeyEnter
	KeyBackspace
)

// EncodeKey returns the byte sequence for a named key, honoring
// application-cursor-keys mode for the arrow keys (and Home/End, which
// xterm also routes through SS3 in application mode).
func EncodeKey(key NamedKey, mods Modifiers, appCursorKeys bool) []byte {
	switch key {
	case KeyUp, KeyDown, KeyRight, KeyLeft:
		final := arrowFinal(key)
		if mods.any() {
			return []byte(fmt.Sprintf("\x1b[%d;%d%c", 1, mods.csiModifierParam(), final))
		}
		if appCursorKeys {
			return []byte{0x1b, 'O', byte(final)}
		}
		return []byte{0x1b, '[', byte(final)}
	case KeyHome:
		return encodeNumberedOrLetter('H', mods, appCursorKeys)
	case KeyEnd:
		return encodeNumberedOrLetter('F', mods, appCursorKeys)
	case KeyInsert:
		return encodeTilde(2, mods)
	case KeyDelete:
		return encodeTilde(3, mods)
	case KeyPageUp:
		return encodeTilde(5, mods)
	case KeyPageDown:
		return encodeTilde(6, mods)
	case KeyF1:
		return []byte{0x1b, 'O', 'P'}
	case KeyF2:
		return []byte{0x1b, 'O', 'Q'}
	case KeyF3:
		return []byte{0x1b, 'O', 'R'}
	case KeyF4:
		return []byte{0x1b, 'O', 'S'}
	case KeyF5:
		return encodeTilde(15, Modifiers{})
	case KeyF6:
		return encodeTilde(17, Modifiers{})
	case KeyF7:
		return encodeTilde(18, Modifiers{})
	case KeyF8:
		return encodeTilde(19, Modifiers{})
	case KeyF9:
		return encodeTilde(20, Modifiers{})
	case KeyF10:
		return encodeTilde(21, Modifiers{})
	case KeyF11:
		return encodeTilde(23, Modifiers{})
	case KeyF12:
		return encodeTilde(24, Modifiers{})
	case KeyEscape:
		return []byte{0x1b}
	case KeyTab:
		if mods.Shift {
			return []byte{0x1b, '[', 'Z'}
		}
		return []byte{'\t'}
	case KeyEnter:
		return []byte{'\r'}
	case KeyBackspace:
		return []byte{0x7f}
	}
	return nil
}

func arrowFinal(key NamedKey) byte {
	switch key {
	case KeyUp:
		return 'A'
	case KeyDown:
		return 'B'
	case KeyRight:
		return 'C'
	case KeyLeft:
		return 'D'
	}
	return 0
}

func encodeNumberedOrLetter(final byte, mods Modifiers, appCursorKeys bool) []byte {
	if mods.any() {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mods.csiModifierParam(), final))
	}
	if appCursorKeys {
		return []byte{0x1b, 'O', final}
	}
	return []byte{0x1b, '[', final}
}

func encodeTilde(code int, mods Modifiers) []byte {
	if mods.any() {
		return []byte(fmt.Sprintf("\x1b[%d;%d~", code, mods.csiModifierParam()))
	}
	return []byte(fmt.Sprintf("\x1b[%d~", code))
}

// EncodeChar returns the byte sequence for a printable or control
// character, applying Ctrl and Alt modifiers. Ctrl+letter maps to the
// corresponding C0 control byte; Ctrl+[ is Escape; Alt prefixes the
// unmodified encoding with Escape (the classic "meta" convention).
func EncodeChar(r rune, mods Modifiers) []byte {
	if mods.Ctrl {
		switch {
		case r == '[':
			return []byte{0x1b}
		case r >= 'a' && r <= 'z':
			return []byte{byte(r-'a') + 1}
		case r >= 'A' && r <= 'Z':
			return []byte{byte(r-'A') + 1}
		}
	}
	if r == '\r' || r == '\n' {
		return []byte{'\r'}
	}
	encoded := []byte(string(r))
	if mods.Alt {
		return append([]byte{0x1b}, encoded...)
	}
	return encoded
}

// EncodePaste wraps data in the bracketed-paste markers when bracketed
// paste mode is active; otherwise it returns data unchanged. The full
// buffer is always pasted — there is no C-string terminator to trim.
func EncodePaste(data []byte, bracketedPasteActive bool) []byte {
	if !bracketedPasteActive {
		return data
	}
	out := make([]byte, 0, len(data)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, data...)
	out = append(out, "\x1b[201~"...)
	return out
}

// Mouse button codes used with EncodeMouseEvent.
const (
	MouseButtonLeft    = 0
	MouseButtonMiddle  = 1
	MouseButtonRight   = 2
	MouseButtonRelease = 3
	MouseWheelUp       = 64
	MouseWheelDown     = 65
)

// EncodeMouseEvent returns the escape sequence reporting a mouse event
// at 1-based coordinates (x, y). sgr selects SGR (1006) extended
// coordinate encoding; otherwise the legacy X10/normal encoding is used,
// which only reports presses (plus button-3 releases) and clamps
// coordinates above 223 to avoid producing control bytes.
func EncodeMouseEvent(button, x, y int, pressed, sgr bool) []byte {
	return EncodeMouseEventMode(button, x, y, pressed, mouseEncodingFor(sgr, false))
}

// MouseEncoding selects the wire format used to report mouse events.
type MouseEncoding int

const (
	MouseEncodingX10 MouseEncoding = iota
	MouseEncodingSGR
	MouseEncodingURXVT
)

func mouseEncodingFor(sgr, urxvt bool) MouseEncoding {
	switch {
	case sgr:
		return MouseEncodingSGR
	case urxvt:
		return MouseEncodingURXVT
	default:
		return MouseEncodingX10
	}
}

// EncodeMouseEventMode is EncodeMouseEvent generalized over the three
// xterm mouse wire encodings: X10/normal, SGR (1006), and urxvt (1015).
// Like SGR, urxvt reports releases and carries coordinates as plain
// decimal text, so it isn't limited to the 223-column ceiling of the
// X10 encoding, but unlike SGR it can't distinguish which button was
// released.
func EncodeMouseEventMode(button, x, y int, pressed bool, mode MouseEncoding) []byte {
	switch mode {
	case MouseEncodingSGR:
		suffix := byte('M')
		if !pressed {
			suffix = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", button, x, y, suffix))
	case MouseEncodingURXVT:
		cb := button + 32
		if !pressed {
			cb = MouseButtonRelease + 32
		}
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", cb, x, y))
	}

	if !pressed && button != MouseButtonRelease {
		return nil
	}
	cb := button + 32
	cx := x + 32
	cy := y + 32
	if cx > 255 {
		cx = 255
	}
	if cy > 255 {
		cy = 255
	}
	return []byte{0x1b, '[', 'M', byte(cb), byte(cx), byte(cy)}
}
