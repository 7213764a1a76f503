package vtparser

import "fmt"

// setMode handles ANSI (non-private) SM/RM; xterm terminals implement
// very few of these, so only the ones with observable effect are wired.
func (t *Terminal) setMode(params []csiParam, enable bool) {
	for _, p := range params {
		switch p.value {
		case 4:
			// Insert/replace mode: not distinguished by this implementation.
		case 20:
			// Line feed/new line mode: not distinguished.
		}
	}
}

// setPrivateMode handles DECSET/DECRST (CSI ? Pm h/l).
func (t *Terminal) setPrivateMode(params []csiParam, enable bool) {
	for _, p := range params {
		switch p.value {
		case 1:
			t.appCursorKeys = enable
		case 3:
			// 80/132 column switch: column count is owned by the session,
			// not negotiated here.
		case 6:
			t.originMode = enable
			t.cursorCol, t.cursorRow = 0, 0
			if enable {
				t.cursorRow = t.scrollTop - 1
			}
		case 7:
			// Autowrap: writeChar always wraps, so this is structurally on.
		case 12:
			// Cursor blink: cosmetic, not modeled.
		case 25:
			t.cursorVisible = enable
			t.emitProps()
		case 1000:
			t.setMouseMode(enable, 1000)
		case 1002:
			t.setMouseMode(enable, 1002)
		case 1003:
			t.setMouseMode(enable, 1003)
		case 1006:
			t.mouseSGR = enable
		case 1015:
			t.mouseURXVT = enable
		case 1049:
			if enable {
				t.saveCursor()
				t.enterAlternateScreen()
			} else {
				t.exitAlternateScreen()
				t.restoreCursor()
			}
		case 47, 1047:
			if enable {
				t.enterAlternateScreen()
			} else {
				t.exitAlternateScreen()
			}
		case 1048:
			if enable {
				t.saveCursor()
			} else {
				t.restoreCursor()
			}
		case 2004:
			t.bracketedPaste = enable
		}
	}
}

func (t *Terminal) setMouseMode(enable bool, mode int) {
	if enable {
		t.mouseMode = mode
	} else if t.mouseMode == mode {
		t.mouseMode = 0
	}
	t.emitProps()
}

// reportDeviceStatus answers CSI Pn n (DSR): 5 is a status report, 6 is
// a cursor position report.
func (t *Terminal) reportDeviceStatus(code int) {
	if t.OnOutput == nil {
		return
	}
	switch code {
	case 5:
		t.OnOutput([]byte("\x1b[0n"))
	case 6:
		t.OnOutput([]byte(fmt.Sprintf("\x1b[%d;%dR", t.cursorRow+1, t.cursorCol+1)))
	}
}

// reportDeviceAttributes answers CSI c / CSI > c (DA/DA2) with a VT220
// identification carrying the extensions this parser actually supports.
func (t *Terminal) reportDeviceAttributes() {
	if t.OnOutput == nil {
		return
	}
	t.OnOutput([]byte("\x1b[?62;22c"))
}
