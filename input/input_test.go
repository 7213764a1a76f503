package input

import "testing"

func TestArrowBaseline(t *testing.T) {
	got := EncodeKey(KeyUp, Modifiers{}, false)
	if string(got) != "\x1b[A" {
		t.Errorf("EncodeKey(Up) = %q, want ESC[A", got)
	}
}

func TestArrowAppCursorMode(t *testing.T) {
	got := EncodeKey(KeyUp, Modifiers{}, true)
	if string(got) != "\x1bOA" {
		t.Errorf("EncodeKey(Up, appCursorKeys) = %q, want ESC OA", got)
	}
}

func TestArrowWithShiftCtrlModifier(t *testing.T) {
	// S6: shift+ctrl+Up -> ESC[1;6A (M = 1 + shift(1) + ctrl(4))
	got := EncodeKey(KeyUp, Modifiers{Shift: true, Ctrl: true}, false)
	want := "\x1b[1;6A"
	if string(got) != want {
		t.Errorf("EncodeKey(Up, shift+ctrl) = %q, want %q", got, want)
	}
}

func TestCtrlLetterProducesControlByte(t *testing.T) {
	got := EncodeChar('a', Modifiers{Ctrl: true})
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("EncodeChar(a, ctrl) = %v, want [0x01]", got)
	}
}

func TestCtrlBracketProducesEscape(t *testing.T) {
	got := EncodeChar('[', Modifiers{Ctrl: true})
	if len(got) != 1 || got[0] != 0x1b {
		t.Errorf("EncodeChar([, ctrl) = %v, want [0x1b]", got)
	}
}

func TestAltLetterPrefixesEscape(t *testing.T) {
	got := EncodeChar('x', Modifiers{Alt: true})
	if string(got) != "\x1bx" {
		t.Errorf("EncodeChar(x, alt) = %q, want ESCx", got)
	}
}

func TestAltMultibyteRuneNotTruncated(t *testing.T) {
	got := EncodeChar('é', Modifiers{Alt: true})
	want := append([]byte{0x1b}, []byte("é")...)
	if string(got) != string(want) {
		t.Errorf("EncodeChar(é, alt) = %v, want %v", got, want)
	}
}

func TestPasteWrapsWhenBracketedPasteActive(t *testing.T) {
	got := EncodePaste([]byte("hello"), true)
	want := "\x1b[200~hello\x1b[201~"
	if string(got) != want {
		t.Errorf("EncodePaste(bracketed) = %q, want %q", got, want)
	}
}

func TestPastePassesThroughWhenBracketedPasteOff(t *testing.T) {
	got := EncodePaste([]byte("hello"), false)
	if string(got) != "hello" {
		t.Errorf("EncodePaste(plain) = %q, want hello", got)
	}
}

func TestMouseSGREncoding(t *testing.T) {
	got := EncodeMouseEvent(MouseButtonLeft, 10, 20, true, true)
	want := "\x1b[<0;10;20M"
	if string(got) != want {
		t.Errorf("EncodeMouseEvent(SGR press) = %q, want %q", got, want)
	}
	got = EncodeMouseEvent(MouseButtonLeft, 10, 20, false, true)
	want = "\x1b[<0;10;20m"
	if string(got) != want {
		t.Errorf("EncodeMouseEvent(SGR release) = %q, want %q", got, want)
	}
}

func TestMouseWheelButtons(t *testing.T) {
	got := EncodeMouseEvent(MouseWheelUp, 1, 1, true, false)
	want := []byte{0x1b, '[', 'M', byte(64 + 32), byte(1 + 32), byte(1 + 32)}
	if string(got) != string(want) {
		t.Errorf("EncodeMouseEvent(wheel up, X10) = %v, want %v", got, want)
	}
}

func TestMouseURXVTEncoding(t *testing.T) {
	got := EncodeMouseEventMode(MouseButtonLeft, 10, 20, true, MouseEncodingURXVT)
	want := "\x1b[32;10;20M"
	if string(got) != want {
		t.Errorf("EncodeMouseEventMode(urxvt press) = %q, want %q", got, want)
	}
	got = EncodeMouseEventMode(MouseButtonLeft, 10, 20, false, MouseEncodingURXVT)
	want = "\x1b[35;10;20M"
	if string(got) != want {
		t.Errorf("EncodeMouseEventMode(urxvt release) = %q, want %q", got, want)
	}
}

func TestNamedKeysBaselineSequences(t *testing.T) {
	cases := []struct {
		key  NamedKey
		want string
	}{
		{KeyHome, "\x1b[H"},
		{KeyEnd, "\x1b[F"},
		{KeyInsert, "\x1b[2~"},
		{KeyDelete, "\x1b[3~"},
		{KeyPageUp, "\x1b[5~"},
		{KeyPageDown, "\x1b[6~"},
		{KeyF1, "\x1bOP"},
		{KeyF5, "\x1b[15~"},
		{KeyEscape, "\x1b"},
		{KeyTab, "\t"},
	}
	for _, c := range cases {
		got := EncodeKey(c.key, Modifiers{}, false)
		if string(got) != c.want {
			t.Errorf("EncodeKey(%v) = %q, want %q", c.key, got, c.want)
		}
	}
}

func TestShiftTab(t *testing.T) {
	got := EncodeKey(KeyTab, Modifiers{Shift: true}, false)
	if string(got) != "\x1b[Z" {
		t.Errorf("EncodeKey(Tab, shift) = %q, want ESC[Z", got)
	}
}
