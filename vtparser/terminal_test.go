package vtparser

import (
	"testing"

	"github.com/rizonesoft/Console3/grid"
)

func newTestTerminal(t *testing.T, cols, rows int) *Terminal {
	t.Helper()
	term, err := New(cols, rows, 1000)
	if err != nil {
		t.Fatalf("New(%d,%d) error: %v", cols, rows, err)
	}
	return term
}

func TestHelloWorldDamage(t *testing.T) {
	term := newTestTerminal(t, 20, 5)
	var damaged [][4]int
	term.OnDamage = func(r0, r1, c0, c1 int) { damaged = append(damaged, [4]int{r0, r1, c0, c1}) }

	term.InputWrite([]byte("hello"))
	term.FlushDamage()

	if len(damaged) != 1 {
		t.Fatalf("expected 1 damage range, got %d: %v", len(damaged), damaged)
	}
	if damaged[0][0] != 0 || damaged[0][1] != 1 {
		t.Errorf("expected row range [0,1), got %v", damaged[0])
	}
	got := term.active.RowText(0)
	if got != "hello" {
		t.Errorf("row text = %q, want hello", got)
	}
}

func TestScrollIntoScrollback(t *testing.T) {
	term := newTestTerminal(t, 10, 10)
	pushes := 0
	term.OnScrollbackPush = func(row []grid.Cell) { pushes++ }

	for i := 0; i < 30; i++ {
		term.InputWrite([]byte("line"))
		if i < 29 {
			term.InputWrite([]byte("\r\n"))
		}
	}

	if pushes != 20 {
		t.Errorf("expected 20 scrollback pushes for 30 lines into a 10-row screen, got %d", pushes)
	}
}

func TestSGRBoldRedThenReset(t *testing.T) {
	term := newTestTerminal(t, 20, 5)
	term.InputWrite([]byte("\x1b[1;31mX\x1b[0mY"))

	cellX := term.active.GetCell(0, 0)
	if !cellX.Attrs.Bold {
		t.Errorf("expected bold on X")
	}
	if cellX.Fg.Type != grid.ColorIndexed || cellX.Fg.Index != 1 {
		t.Errorf("expected red (index 1) fg on X, got %+v", cellX.Fg)
	}

	cellY := term.active.GetCell(0, 1)
	if cellY.Attrs.Bold {
		t.Errorf("expected bold cleared on Y after SGR 0")
	}
	if cellY.Fg.Type != grid.ColorDefault {
		t.Errorf("expected default fg on Y after SGR 0, got %+v", cellY.Fg)
	}
}

func TestWideCharacterSplitsIntoCompanionCell(t *testing.T) {
	term := newTestTerminal(t, 20, 5)
	term.InputWrite([]byte("あ"))

	main := term.active.GetCell(0, 0)
	if main.Width != 2 {
		t.Errorf("expected width 2 on wide char cell, got %d", main.Width)
	}
	companion := term.active.GetCell(0, 1)
	if companion.Width != 0 {
		t.Errorf("expected width 0 companion cell, got %d", companion.Width)
	}
	row, col := term.CursorPos()
	if row != 0 || col != 2 {
		t.Errorf("cursor after wide char = (%d,%d), want (0,2)", row, col)
	}
}

func TestAltScreenEnterClearExitNoScrollback(t *testing.T) {
	term := newTestTerminal(t, 20, 5)
	term.InputWrite([]byte("before\r\n"))

	pushes := 0
	term.OnScrollbackPush = func(row []grid.Cell) { pushes++ }

	term.InputWrite([]byte("\x1b[?1049h"))
	if !term.AltScreenActive() {
		t.Fatalf("expected alt screen active after mode 1049 set")
	}
	for i := 0; i < 20; i++ {
		term.InputWrite([]byte("scrolling\r\n"))
	}
	if pushes != 0 {
		t.Errorf("expected zero scrollback pushes while alt screen active, got %d", pushes)
	}

	term.InputWrite([]byte("\x1b[?1049l"))
	if term.AltScreenActive() {
		t.Fatalf("expected primary screen restored after mode 1049 reset")
	}
	got := term.active.RowText(0)
	if got != "before" {
		t.Errorf("expected primary screen content preserved, got %q", got)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	term := newTestTerminal(t, 5, 5)
	term.InputWrite([]byte("\x1b[100;100H"))
	row, col := term.CursorPos()
	if row < 0 || row >= 5 || col < 0 || col >= 5 {
		t.Errorf("cursor out of bounds after CUP overshoot: (%d,%d)", row, col)
	}
}

func TestDeviceStatusReportReturnsCursorPosition(t *testing.T) {
	term := newTestTerminal(t, 20, 5)
	var out []byte
	term.OnOutput = func(b []byte) { out = append(out, b...) }

	term.InputWrite([]byte("\x1b[3;4H\x1b[6n"))
	want := "\x1b[3;4R"
	if string(out) != want {
		t.Errorf("DSR 6 reply = %q, want %q", out, want)
	}
}

func TestMalformedUTF8YieldsReplacementCharacter(t *testing.T) {
	term := newTestTerminal(t, 20, 5)
	term.InputWrite([]byte{0xC0, 0x80})

	got := term.active.GetCell(0, 0)
	if got.Char != '�' {
		t.Errorf("overlong 2-byte sequence decoded to %q, want U+FFFD", got.Char)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	term := newTestTerminal(t, 20, 5)
	term.InputWrite([]byte("\x1b[1;31mhello\x1b[?25l"))
	term.Reset()

	if term.currentAttrs.Bold {
		t.Errorf("expected bold cleared after RIS")
	}
	if !term.cursorVisible {
		t.Errorf("expected cursor visible after RIS")
	}
	row, col := term.CursorPos()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor home after RIS, got (%d,%d)", row, col)
	}
}

func TestDECLineDrawingCharset(t *testing.T) {
	term := newTestTerminal(t, 20, 5)
	term.InputWrite([]byte("\x1b(0lqk\x1b(B"))

	row := term.active.RowText(0)
	want := "┌─┐"
	if row != want {
		t.Errorf("line drawing decode = %q, want %q", row, want)
	}
}
