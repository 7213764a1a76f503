package vtparser

import "github.com/rizonesoft/Console3/grid"

// mapCharsetRune applies the DEC Special Graphics mapping if the active
// G0/G1 charset designates line drawing.
func (t *Terminal) mapCharsetRune(r rune) rune {
	cs := t.charsetG0
	if t.activeCharset == 1 {
		cs = t.charsetG1
	}
	if cs == charsetLineDrawing {
		if mapped, ok := decLineDrawing[r]; ok {
			return mapped
		}
	}
	return r
}

func (t *Terminal) setCharset(designator byte) {
	if t.charsetPending == charsetTargetNone {
		return
	}
	cs := charsetASCII
	if designator == '0' {
		cs = charsetLineDrawing
	}
	switch t.charsetPending {
	case charsetTargetG0:
		t.charsetG0 = cs
	case charsetTargetG1:
		t.charsetG1 = cs
	}
	t.charsetPending = charsetTargetNone
}

// writeChar places a decoded rune at the cursor and advances it,
// splitting wide characters into a width-2 cell plus a width-0
// companion, and folding zero-width combining marks into the preceding
// cell instead of advancing.
func (t *Terminal) writeChar(r rune) {
	w := grid.RuneWidth(r)

	if w == 0 {
		if t.cursorCol > 0 {
			prevCol := t.cursorCol - 1
			prev := t.active.GetCell(t.cursorRow, prevCol)
			prev.AppendCombining(r)
			t.active.SetCell(t.cursorRow, prevCol, prev)
			t.active.MarkDirty(t.cursorRow)
		}
		return
	}

	if w == 2 && t.cursorCol >= t.active.Cols()-1 {
		t.advanceLine()
	} else if t.cursorCol >= t.active.Cols() {
		t.advanceLine()
	}

	cell := grid.Cell{Char: r, Width: w, Fg: t.currentFg, Bg: t.currentBg, Attrs: t.currentAttrs}
	t.active.SetCell(t.cursorRow, t.cursorCol, cell)
	t.active.MarkDirty(t.cursorRow)
	t.cursorCol++

	if w == 2 {
		companion := grid.Cell{Width: 0, Fg: t.currentFg, Bg: t.currentBg}
		t.active.SetCell(t.cursorRow, t.cursorCol, companion)
		t.cursorCol++
	}

	t.lastChar = r
	t.lastFg = t.currentFg
	t.lastBg = t.currentBg
	t.lastAttrs = t.currentAttrs
}

// advanceLine moves the cursor to the next line, scrolling the scroll
// region (or the whole screen) up by one line if the cursor was already
// at the bottom.
func (t *Terminal) advanceLine() {
	t.cursorCol = 0
	t.cursorRow++
	if t.cursorRow >= t.scrollBottom {
		t.scrollUp(1)
		t.cursorRow = t.scrollBottom - 1
	} else if t.cursorRow >= t.active.Rows() {
		t.scrollUp(1)
		t.cursorRow = t.active.Rows() - 1
	}
}

func (t *Terminal) newline() { t.advanceLine() }

func (t *Terminal) backspace() {
	if t.cursorCol > 0 {
		t.cursorCol--
	}
}

func (t *Terminal) tab() {
	t.cursorCol = ((t.cursorCol / 8) + 1) * 8
	if t.cursorCol >= t.active.Cols() {
		t.cursorCol = t.active.Cols() - 1
	}
}

// scrollUp scrolls the current scroll region up by n lines. When the
// region spans the whole screen and the primary screen is active, rows
// evicted off the top are reported via OnScrollbackPush before any
// damage for the newly revealed bottom row is flushed.
func (t *Terminal) scrollUp(n int) {
	top, bottom := t.scrollTop-1, t.scrollBottom
	evicted := t.active.Scroll(n, top, bottom)
	fullScreen := t.scrollTop == 1 && t.scrollBottom == t.active.Rows()
	if fullScreen && !t.altActive && t.OnScrollbackPush != nil {
		cols := t.active.Cols()
		for i := 0; i < len(evicted); i += cols {
			end := i + cols
			if end > len(evicted) {
				end = len(evicted)
			}
			t.OnScrollbackPush(evicted[i:end])
		}
	}
}

func (t *Terminal) scrollDown(n int) {
	top, bottom := t.scrollTop-1, t.scrollBottom
	t.active.Scroll(-n, top, bottom)
}

// moveCursor moves the cursor by a relative delta, clamping to the
// scroll region when origin mode is active and to the screen otherwise.
func (t *Terminal) moveCursor(dCol, dRow int) {
	if !t.originMode {
		t.cursorCol = clamp(t.cursorCol+dCol, 0, t.active.Cols()-1)
		t.cursorRow = clamp(t.cursorRow+dRow, 0, t.active.Rows()-1)
		t.reportCursorMoved()
		return
	}
	col := clamp(t.cursorCol+dCol, 0, t.active.Cols()-1)
	top, bottom := t.scrollTop-1, t.scrollBottom-1
	row := clamp(t.cursorRow+dRow, top, bottom)
	t.cursorCol, t.cursorRow = col, row
	t.reportCursorMoved()
}

// setCursorPos sets the cursor to a 1-based position, honoring origin
// mode's scroll-region-relative addressing.
func (t *Terminal) setCursorPos(col, row int) {
	if t.originMode {
		top, bottom := t.scrollTop, t.scrollBottom
		row = clamp(top+row-1, top, bottom)
	}
	t.cursorCol = clamp(col-1, 0, t.active.Cols()-1)
	t.cursorRow = clamp(row-1, 0, t.active.Rows()-1)
	t.reportCursorMoved()
}

func (t *Terminal) reportCursorMoved() {
	if t.OnMoveCursor != nil {
		t.OnMoveCursor(t.cursorRow, t.cursorCol)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (t *Terminal) saveCursor() {
	state := cursorState{col: t.cursorCol, row: t.cursorRow, fg: t.currentFg, bg: t.currentBg, attrs: t.currentAttrs}
	if t.altActive {
		t.savedAltCursor = state
	} else {
		t.savedMainCursor = state
	}
}

func (t *Terminal) restoreCursor() {
	state := t.savedMainCursor
	if t.altActive {
		state = t.savedAltCursor
	}
	t.cursorCol = clamp(state.col, 0, t.active.Cols()-1)
	t.cursorRow = clamp(state.row, 0, t.active.Rows()-1)
	t.currentFg = state.fg
	t.currentBg = state.bg
	t.currentAttrs = state.attrs
	t.reportCursorMoved()
}

// enterAlternateScreen switches the active screen to the alternate
// buffer, saving the primary screen's scroll region and input modes.
func (t *Terminal) enterAlternateScreen() {
	if t.altActive {
		return
	}
	t.savedMainScrollTop, t.savedMainScrollBottom = t.scrollTop, t.scrollBottom
	t.savedMainAppCursorKeys = t.appCursorKeys
	t.savedMainBracketedPaste = t.bracketedPaste
	t.savedMainMouseMode = t.mouseMode
	t.savedMainMouseSGR = t.mouseSGR
	t.savedMainMouseURXVT = t.mouseURXVT

	t.active = t.alternate
	t.altActive = true
	t.active.ClearScreen()
	t.cursorCol, t.cursorRow = 0, 0
	t.scrollTop, t.scrollBottom = 1, t.active.Rows()
	t.emitProps()
}

// exitAlternateScreen returns to the primary screen, restoring its
// scroll region and input modes and resetting rendition state so a TUI
// app's colors don't leak onto the restored screen.
func (t *Terminal) exitAlternateScreen() {
	if !t.altActive {
		return
	}
	t.active = t.primary
	t.altActive = false
	t.scrollTop, t.scrollBottom = t.savedMainScrollTop, t.savedMainScrollBottom

	t.currentFg = grid.DefaultFg()
	t.currentBg = grid.DefaultBg()
	t.currentAttrs = grid.Attrs{}

	t.charsetG0 = charsetASCII
	t.charsetG1 = charsetASCII
	t.activeCharset = 0
	t.charsetPending = charsetTargetNone

	t.originMode = false
	t.cursorStyle = CursorBlock
	t.cursorVisible = true

	t.appCursorKeys = t.savedMainAppCursorKeys
	t.bracketedPaste = t.savedMainBracketedPaste
	t.mouseMode = t.savedMainMouseMode
	t.mouseSGR = t.savedMainMouseSGR
	t.mouseURXVT = t.savedMainMouseURXVT

	t.active.MarkAllDirty()
	t.emitProps()
}
