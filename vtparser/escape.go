package vtparser

import "github.com/rizonesoft/Console3/grid"

var cellE = grid.Cell{Char: 'E', Width: 1, Fg: grid.DefaultFg(), Bg: grid.DefaultBg()}

// processEscape handles a byte immediately after ESC: either a simple
// two-character escape sequence, or entry into a multi-byte sequence
// (CSI, OSC, DCS, charset designation, DEC commands).
func (t *Terminal) processEscape(b byte) {
	switch b {
	case '[':
		t.state = stateCSI
		t.csiParams = ""
	case ']':
		t.state = stateOSC
		t.oscParams = ""
	case 'P':
		t.state = stateDCS
		t.dcsParams = ""
	case '(':
		t.charsetPending = charsetTargetG0
		t.state = stateCharset
	case ')':
		t.charsetPending = charsetTargetG1
		t.state = stateCharset
	case '#':
		t.state = stateHash
	case '7':
		t.saveCursor()
		t.state = stateGround
	case '8':
		t.restoreCursor()
		t.state = stateGround
	case 'c':
		t.Reset()
		t.state = stateGround
	case 'D':
		t.advanceLine()
		t.state = stateGround
	case 'M':
		t.reverseIndex()
		t.state = stateGround
	case 'E':
		t.cursorCol = 0
		t.advanceLine()
		t.state = stateGround
	case '=', '>':
		// DECKPAM / DECKPNM keypad mode: no distinct keypad emulation.
		t.state = stateGround
	default:
		t.state = stateGround
	}
}

// processHash handles the byte following ESC #: DECALN (screen alignment
// test, fills the screen with 'E') is the only one with a visible
// effect worth modeling; DECDHL/DECSWL (double-height/width lines) are
// acknowledged as no-ops.
func (t *Terminal) processHash(b byte) {
	if b != '8' {
		return
	}
	for row := 0; row < t.active.Rows(); row++ {
		for col := 0; col < t.active.Cols(); col++ {
			t.active.SetCell(row, col, cellE)
		}
		t.active.MarkDirty(row)
	}
}

// reverseIndex moves the cursor up one line (RI), scrolling the region
// down when already at the top.
func (t *Terminal) reverseIndex() {
	if t.cursorRow == t.scrollTop-1 {
		t.scrollDown(1)
		return
	}
	if t.cursorRow > 0 {
		t.cursorRow--
	}
	t.reportCursorMoved()
}
