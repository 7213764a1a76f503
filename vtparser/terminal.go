// Package vtparser implements a VT/xterm-compatible escape sequence
// parser: it consumes a byte stream from a PTY, maintains a primary and
// an alternate screen, cursor, scroll region, and modes, and reports
// changes through a set of callback fields rather than by being polled.
// A Terminal is not safe for concurrent use; per the session's
// concurrency model it is driven only by the UI goroutine.
package vtparser

import (
	"github.com/rizonesoft/Console3/grid"
	"github.com/rizonesoft/Console3/input"
)

// CursorShape is the cursor rendition requested via DECSCUSR.
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

// TermProps is the bundle of terminal properties delivered through
// OnSetProp whenever one of them changes.
type TermProps struct {
	Title         string
	IconName      string
	CursorVisible bool
	CursorStyle   CursorShape
	AltScreen     bool
	MouseMode     int
}

// cursorState is the save/restore slot used by DECSC/DECRC and CSI s/u,
// kept separately per screen so switching screens doesn't clobber it.
type cursorState struct {
	col, row int
	fg, bg   grid.Color
	attrs    grid.Attrs
}

// Terminal parses a VT/xterm byte stream into a pair of cell grids.
type Terminal struct {
	primary   *grid.Grid
	alternate *grid.Grid
	active    *grid.Grid
	altActive bool

	cursorCol, cursorRow int
	cursorVisible        bool
	cursorStyle          CursorShape
	originMode            bool

	scrollTop, scrollBottom int // 1-based, inclusive

	currentFg    grid.Color
	currentBg    grid.Color
	currentAttrs grid.Attrs

	lastChar      rune
	lastFg, lastBg grid.Color
	lastAttrs     grid.Attrs

	savedMainCursor cursorState
	savedAltCursor  cursorState

	savedMainScrollTop, savedMainScrollBottom int
	savedMainAppCursorKeys                    bool
	savedMainBracketedPaste                   bool
	savedMainMouseMode                        int
	savedMainMouseSGR                         bool
	savedMainMouseURXVT                       bool

	appCursorKeys  bool
	bracketedPaste bool
	mouseMode      int
	mouseSGR       bool
	mouseURXVT     bool

	charsetG0, charsetG1 charset
	activeCharset        int
	charsetPending       charsetTarget

	title    string
	iconName string

	state     parserState
	csiParams string
	oscParams string
	dcsParams string

	utf8Buf       []byte
	utf8Remaining int

	// OnDamage reports that cells in [rowStart,rowEnd) x [colStart,colEnd)
	// of the active screen changed and should be re-copied by the reader.
	OnDamage func(rowStart, rowEnd, colStart, colEnd int)
	// OnMoveRect is the rectangular block-move notification for renderers
	// that can blit instead of repaint. This parser never invokes it:
	// scrolled rows are reported through OnDamage like any other change.
	OnMoveRect func(dstRow, dstCol, srcRow, srcCol, rows, cols int)
	// OnMoveCursor reports the cursor's new position.
	OnMoveCursor func(row, col int)
	// OnSetProp reports a change to title, icon name, cursor visibility,
	// cursor style, alt-screen state, or mouse mode.
	OnSetProp func(TermProps)
	// OnBell reports a BEL byte.
	OnBell func()
	// OnResize reports a completed resize.
	OnResize func(cols, rows int)
	// OnScrollbackPush reports a row evicted off the top of the primary
	// screen, in eviction order. Never called while the alternate screen
	// is active.
	OnScrollbackPush func(row []grid.Cell)
	// OnOutput reports bytes the terminal itself wants written back to
	// the PTY (DA/DSR replies, XTGETTCAP responses, encoded keystrokes
	// from KeyboardUnichar/KeyboardKey).
	OnOutput func([]byte)
}

// New creates a Terminal with the given screen dimensions and per-screen
// scrollback cap (the alternate screen never accrues scrollback).
func New(cols, rows, scrollbackLines int) (*Terminal, error) {
	primary, err := grid.New(cols, rows, scrollbackLines)
	if err != nil {
		return nil, err
	}
	alternate, err := grid.New(cols, rows, 1)
	if err != nil {
		return nil, err
	}
	t := &Terminal{
		primary:               primary,
		alternate:             alternate,
		active:                primary,
		cursorVisible:         true,
		scrollTop:             1,
		scrollBottom:          rows,
		savedMainScrollTop:    1,
		savedMainScrollBottom: rows,
		currentFg:             grid.DefaultFg(),
		currentBg:             grid.DefaultBg(),
		lastChar:              ' ',
		charsetG0:             charsetASCII,
		charsetG1:             charsetASCII,
	}
	return t, nil
}

// InputWrite feeds PTY output bytes through the parser, returning the
// number of bytes consumed (always len(data); malformed sequences are
// silently ignored rather than rejected).
func (t *Terminal) InputWrite(data []byte) int {
	for _, b := range data {
		t.processByte(b)
	}
	return len(data)
}

// FlushDamage coalesces the active screen's dirty rows into OnDamage
// calls and clears the dirty bitmap. Call once per drain of the PTY
// output ring buffer, not once per chunk.
func (t *Terminal) FlushDamage() {
	if t.OnDamage == nil {
		t.active.ClearDirty()
		return
	}
	rows := t.active.DirtyRows()
	if len(rows) == 0 {
		return
	}
	start := rows[0]
	prev := rows[0]
	for _, r := range rows[1:] {
		if r == prev+1 {
			prev = r
			continue
		}
		t.OnDamage(start, prev+1, 0, t.active.Cols())
		start, prev = r, r
	}
	t.OnDamage(start, prev+1, 0, t.active.Cols())
	t.active.ClearDirty()
}

// Cell returns the cell at (row, col) of the active screen, for a reader
// reacting to OnDamage.
func (t *Terminal) Cell(row, col int) grid.Cell { return t.active.GetCell(row, col) }

// CursorPos returns the 0-based cursor position on the active screen.
func (t *Terminal) CursorPos() (row, col int) { return t.cursorRow, t.cursorCol }

// IsCursorVisible reports whether DECTCEM has the cursor shown.
func (t *Terminal) IsCursorVisible() bool { return t.cursorVisible }

// CursorStyle returns the current DECSCUSR cursor shape.
func (t *Terminal) CursorStyle() CursorShape { return t.cursorStyle }

// AppCursorKeys reports whether DECCKM application cursor keys is set.
func (t *Terminal) AppCursorKeys() bool { return t.appCursorKeys }

// BracketedPasteActive reports whether mode 2004 is set.
func (t *Terminal) BracketedPasteActive() bool { return t.bracketedPaste }

// MouseMode returns the active mouse tracking mode (0, 1000, 1002, 1003).
func (t *Terminal) MouseMode() int { return t.mouseMode }

// MouseSGR reports whether SGR (1006) extended mouse coordinates are on.
func (t *Terminal) MouseSGR() bool { return t.mouseSGR }

// MouseURXVT reports whether urxvt (1015) extended mouse coordinates are on.
func (t *Terminal) MouseURXVT() bool { return t.mouseURXVT }

// Title returns the window title set via OSC 0/2.
func (t *Terminal) Title() string { return t.title }

// AltScreenActive reports whether the alternate screen is displayed.
func (t *Terminal) AltScreenActive() bool { return t.altActive }

func (t *Terminal) emitProps() {
	if t.OnSetProp == nil {
		return
	}
	t.OnSetProp(TermProps{
		Title:         t.title,
		IconName:      t.iconName,
		CursorVisible: t.cursorVisible,
		CursorStyle:   t.cursorStyle,
		AltScreen:     t.altActive,
		MouseMode:     t.mouseMode,
	})
}

// Resize resizes both screens, clamps the cursor to the new bounds, and
// resets the scroll region to the full screen; the PTY should already have been resized by the
// time this is called.
func (t *Terminal) Resize(cols, rows int) error {
	if err := t.primary.Resize(cols, rows); err != nil {
		return err
	}
	if err := t.alternate.Resize(cols, rows); err != nil {
		return err
	}
	t.scrollTop = 1
	t.scrollBottom = rows
	if t.cursorCol >= cols {
		t.cursorCol = cols - 1
	}
	if t.cursorRow >= rows {
		t.cursorRow = rows - 1
	}
	if t.OnResize != nil {
		t.OnResize(cols, rows)
	}
	return nil
}

// Reset performs a hard reset (RIS): clears both screens, restores
// default attributes and modes, and returns to the primary screen.
func (t *Terminal) Reset() {
	t.active.ClearScreen()
	t.cursorCol, t.cursorRow = 0, 0
	t.currentFg = grid.DefaultFg()
	t.currentBg = grid.DefaultBg()
	t.currentAttrs = grid.Attrs{}
	t.appCursorKeys = false
	t.cursorVisible = true
	if t.altActive {
		t.exitAlternateScreen()
	}
	t.charsetG0 = charsetASCII
	t.charsetG1 = charsetASCII
	t.activeCharset = 0
	t.charsetPending = charsetTargetNone
	t.originMode = false
	t.cursorStyle = CursorBlock
	t.bracketedPaste = false
	t.mouseMode = 0
	t.mouseSGR = false
	t.mouseURXVT = false
	t.title = ""
	t.iconName = ""
	t.emitProps()
}

// KeyboardUnichar encodes a printable character typed by the user,
// honoring current modifiers, and delivers it through OnOutput.
func (t *Terminal) KeyboardUnichar(r rune, mods input.Modifiers) {
	if t.OnOutput == nil {
		return
	}
	t.OnOutput(input.EncodeChar(r, mods))
}

// KeyboardKey encodes a named key typed by the user, honoring current
// modifiers and application-cursor-keys mode, and delivers it through
// OnOutput.
func (t *Terminal) KeyboardKey(key input.NamedKey, mods input.Modifiers) {
	if t.OnOutput == nil {
		return
	}
	t.OnOutput(input.EncodeKey(key, mods, t.appCursorKeys))
}

// KeyboardPaste encodes a paste buffer, wrapping it in bracketed-paste
// markers if that mode is active, and delivers it through OnOutput.
func (t *Terminal) KeyboardPaste(data []byte) {
	if t.OnOutput == nil {
		return
	}
	t.OnOutput(input.EncodePaste(data, t.bracketedPaste))
}

// MouseEvent encodes a mouse event according to the active tracking mode
// and delivers it through OnOutput. It is a no-op when mouse tracking is
// off.
func (t *Terminal) MouseEvent(button, x, y int, pressed bool) {
	if t.mouseMode == 0 || t.OnOutput == nil {
		return
	}
	mode := input.MouseEncodingX10
	switch {
	case t.mouseSGR:
		mode = input.MouseEncodingSGR
	case t.mouseURXVT:
		mode = input.MouseEncodingURXVT
	}
	if seq := input.EncodeMouseEventMode(button, x, y, pressed, mode); seq != nil {
		t.OnOutput(seq)
	}
}
