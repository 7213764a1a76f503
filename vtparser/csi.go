package vtparser

import "strconv"

// processCSI accumulates CSI parameter/intermediate bytes until a final
// byte (0x40-0x7E) is seen, then dispatches it.
func (t *Terminal) processCSI(b byte) {
	if b >= 0x40 && b <= 0x7e {
		t.executeCSI(b, t.csiParams)
		t.state = stateGround
		return
	}
	if len(t.csiParams) < 256 {
		t.csiParams += string(b)
	}
}

// csiParam is one numeric parameter, possibly with colon sub-parameters
// (used by SGR's 38:2:r:g:b / 4:3 forms).
type csiParam struct {
	value int
	subs  []int
	empty bool
}

func parseCSIParams(raw string) []csiParam {
	if raw == "" {
		return nil
	}
	private := len(raw) > 0 && (raw[0] == '?' || raw[0] == '>' || raw[0] == '=')
	if private {
		raw = raw[1:]
	}
	// Trailing intermediate bytes (0x20-0x2F, e.g. the space in DECSCUSR's
	// CSI Ps SP q) are not part of the numeric parameters.
	for len(raw) > 0 && raw[len(raw)-1] >= 0x20 && raw[len(raw)-1] <= 0x2f {
		raw = raw[:len(raw)-1]
	}
	var params []csiParam
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ';' {
			params = append(params, parseSubParams(raw[start:i]))
			start = i + 1
		}
	}
	return params
}

func parseSubParams(field string) csiParam {
	if field == "" {
		return csiParam{empty: true}
	}
	var subs []int
	start := 0
	for i := 0; i <= len(field); i++ {
		if i == len(field) || field[i] == ':' {
			n, err := strconv.Atoi(field[start:i])
			if err != nil {
				n = 0
			}
			subs = append(subs, n)
			start = i + 1
		}
	}
	return csiParam{value: subs[0], subs: subs}
}

func paramOr(params []csiParam, idx, def int) int {
	if idx >= len(params) || params[idx].empty {
		return def
	}
	if params[idx].value == 0 && def != 0 {
		return def
	}
	return params[idx].value
}

func paramRaw(params []csiParam, idx, def int) int {
	if idx >= len(params) || params[idx].empty {
		return def
	}
	return params[idx].value
}

func isPrivate(raw string) bool {
	return len(raw) > 0 && raw[0] == '?'
}

// executeCSI dispatches a fully-accumulated CSI sequence.
func (t *Terminal) executeCSI(final byte, raw string) {
	params := parseCSIParams(raw)

	if isPrivate(raw) {
		t.executePrivateCSI(final, params)
		return
	}

	switch final {
	case 'A':
		t.moveCursor(0, -paramOr(params, 0, 1))
	case 'B':
		t.moveCursor(0, paramOr(params, 0, 1))
	case 'C':
		t.moveCursor(paramOr(params, 0, 1), 0)
	case 'D':
		t.moveCursor(-paramOr(params, 0, 1), 0)
	case 'E':
		t.cursorCol = 0
		t.moveCursor(0, paramOr(params, 0, 1))
	case 'F':
		t.cursorCol = 0
		t.moveCursor(0, -paramOr(params, 0, 1))
	case 'G', '`':
		t.setCursorPos(paramOr(params, 0, 1), t.cursorRow+1)
	case 'd':
		t.setCursorPos(t.cursorCol+1, paramOr(params, 0, 1))
	case 'H', 'f':
		t.setCursorPos(paramOr(params, 1, 1), paramOr(params, 0, 1))
	case 'J':
		t.eraseInDisplay(paramRaw(params, 0, 0))
	case 'K':
		t.eraseInLine(paramRaw(params, 0, 0))
	case 'L':
		t.insertLines(paramOr(params, 0, 1))
	case 'M':
		t.deleteLines(paramOr(params, 0, 1))
	case 'P':
		t.deleteChars(paramOr(params, 0, 1))
	case '@':
		t.insertChars(paramOr(params, 0, 1))
	case 'X':
		t.eraseChars(paramOr(params, 0, 1))
	case 'S':
		t.scrollUp(paramOr(params, 0, 1))
	case 'T':
		t.scrollDown(paramOr(params, 0, 1))
	case 'b':
		t.repeatLastChar(paramOr(params, 0, 1))
	case 'm':
		t.handleSGR(params)
	case 'r':
		t.setScrollRegion(paramOr(params, 0, 1), paramOr(params, 1, t.active.Rows()))
	case 's':
		t.saveCursor()
	case 'u':
		t.restoreCursor()
	case 'n':
		t.reportDeviceStatus(paramRaw(params, 0, 0))
	case 'c':
		t.reportDeviceAttributes()
	case 'q':
		t.handleDECSCUSR(paramRaw(params, 0, 0))
	case 'h':
		t.setMode(params, true)
	case 'l':
		t.setMode(params, false)
	case 't':
		// Window manipulation (resize/move/iconify): not applicable to a
		// headless terminal core, acknowledged as a no-op.
	}
}

func (t *Terminal) executePrivateCSI(final byte, params []csiParam) {
	switch final {
	case 'h':
		t.setPrivateMode(params, true)
	case 'l':
		t.setPrivateMode(params, false)
	case 'c':
		t.reportDeviceAttributes()
	}
}

func (t *Terminal) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		t.active.ClearRange(t.cursorRow, t.cursorCol, t.active.Cols())
		for r := t.cursorRow + 1; r < t.active.Rows(); r++ {
			t.active.ClearRow(r)
		}
	case 1:
		for r := 0; r < t.cursorRow; r++ {
			t.active.ClearRow(r)
		}
		t.active.ClearRange(t.cursorRow, 0, t.cursorCol+1)
	case 2, 3:
		t.active.ClearScreen()
	}
}

func (t *Terminal) eraseInLine(mode int) {
	switch mode {
	case 0:
		t.active.ClearRange(t.cursorRow, t.cursorCol, t.active.Cols())
	case 1:
		t.active.ClearRange(t.cursorRow, 0, t.cursorCol+1)
	case 2:
		t.active.ClearRow(t.cursorRow)
	}
}

func (t *Terminal) insertLines(n int) {
	if t.cursorRow < t.scrollTop-1 || t.cursorRow >= t.scrollBottom {
		return
	}
	t.active.Scroll(-n, t.cursorRow, t.scrollBottom)
}

func (t *Terminal) deleteLines(n int) {
	if t.cursorRow < t.scrollTop-1 || t.cursorRow >= t.scrollBottom {
		return
	}
	t.active.Scroll(n, t.cursorRow, t.scrollBottom)
}

func (t *Terminal) deleteChars(n int) {
	row := t.cursorRow
	cols := t.active.Cols()
	for col := t.cursorCol; col < cols; col++ {
		src := col + n
		if src < cols {
			t.active.SetCell(row, col, t.active.GetCell(row, src))
		} else {
			t.active.ClearCell(row, col)
		}
	}
	t.active.MarkDirty(row)
}

func (t *Terminal) insertChars(n int) {
	row := t.cursorRow
	cols := t.active.Cols()
	for col := cols - 1; col >= t.cursorCol; col-- {
		src := col - n
		if src >= t.cursorCol {
			t.active.SetCell(row, col, t.active.GetCell(row, src))
		} else {
			t.active.ClearCell(row, col)
		}
	}
	t.active.MarkDirty(row)
}

func (t *Terminal) eraseChars(n int) {
	end := t.cursorCol + n
	if end > t.active.Cols() {
		end = t.active.Cols()
	}
	t.active.ClearRange(t.cursorRow, t.cursorCol, end)
}

func (t *Terminal) repeatLastChar(n int) {
	for i := 0; i < n; i++ {
		t.writeChar(t.lastChar)
	}
}

func (t *Terminal) setScrollRegion(top, bottom int) {
	if top < 1 {
		top = 1
	}
	if bottom > t.active.Rows() {
		bottom = t.active.Rows()
	}
	if top >= bottom {
		top, bottom = 1, t.active.Rows()
	}
	t.scrollTop, t.scrollBottom = top, bottom
	t.cursorCol, t.cursorRow = 0, 0
	if t.originMode {
		t.cursorRow = top - 1
	}
}

func (t *Terminal) handleDECSCUSR(code int) {
	switch code {
	case 0, 1:
		t.cursorStyle = CursorBlock
	case 2:
		t.cursorStyle = CursorBlock
	case 3, 4:
		t.cursorStyle = CursorUnderline
	case 5, 6:
		t.cursorStyle = CursorBar
	}
	t.emitProps()
}
