// Package grid implements the bounded cell grid that is the rendering
// contract target for a terminal session: a visible screen plus a
// scrollback history, dirty-row tracking for incremental redraw, and
// UTF-8 text extraction. A Grid is not safe for concurrent use; per the
// session's concurrency model it is touched only by the UI goroutine.
package grid

import (
	"errors"
	"strings"
)

// DefaultMaxScrollback is the scrollback cap used when none is given.
const DefaultMaxScrollback = 10000

// ErrInvalidDimensions is returned when constructing or resizing a grid
// with non-positive rows or columns.
var ErrInvalidDimensions = errors.New("grid: rows and cols must be positive")

// Grid owns the visible screen buffer and the scrollback deque.
type Grid struct {
	cols, rows    int
	cells         []Cell
	dirty         []bool
	scrollback    [][]Cell // front (index 0) is most recently evicted
	maxScrollback int
}

// New creates a grid with the given dimensions and scrollback cap. It
// fails only when cols or rows is non-positive.
func New(cols, rows, maxScrollback int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, ErrInvalidDimensions
	}
	if maxScrollback <= 0 {
		maxScrollback = DefaultMaxScrollback
	}
	g := &Grid{
		cols:          cols,
		rows:          rows,
		cells:         make([]Cell, cols*rows),
		dirty:         make([]bool, rows),
		maxScrollback: maxScrollback,
	}
	for i := range g.cells {
		g.cells[i] = NewCell()
	}
	return g, nil
}

// Cols returns the current column count.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the current row count.
func (g *Grid) Rows() int { return g.rows }

func (g *Grid) index(row, col int) int { return row*g.cols + col }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// GetCell returns the cell at (row, col), or the sentinel empty cell if
// out of bounds.
func (g *Grid) GetCell(row, col int) Cell {
	if !g.inBounds(row, col) {
		return emptyCell
	}
	return g.cells[g.index(row, col)]
}

// SetCell writes a cell at (row, col); out-of-bounds writes are a silent
// no-op.
func (g *Grid) SetCell(row, col int, cell Cell) {
	if !g.inBounds(row, col) {
		return
	}
	g.cells[g.index(row, col)] = cell
}

// GetRow returns a copy of the cells in row, or nil if out of bounds.
func (g *Grid) GetRow(row int) []Cell {
	if row < 0 || row >= g.rows {
		return nil
	}
	out := make([]Cell, g.cols)
	copy(out, g.cells[g.index(row, 0):g.index(row, 0)+g.cols])
	return out
}

// ClearCell resets a single cell to blank.
func (g *Grid) ClearCell(row, col int) { g.SetCell(row, col, NewCell()) }

// ClearRange clears cells [startCol, endCol) in row.
func (g *Grid) ClearRange(row, startCol, endCol int) {
	if row < 0 || row >= g.rows {
		return
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > g.cols {
		endCol = g.cols
	}
	for col := startCol; col < endCol; col++ {
		g.cells[g.index(row, col)] = NewCell()
	}
	g.MarkDirty(row)
}

// ClearRow clears an entire row.
func (g *Grid) ClearRow(row int) { g.ClearRange(row, 0, g.cols) }

// ClearScreen clears every row.
func (g *Grid) ClearScreen() {
	for row := 0; row < g.rows; row++ {
		g.ClearRow(row)
	}
}

// Scroll shifts rows [top, bottom) up by n lines (n negative scrolls
// down), clearing the rows vacated at the far edge of the region. It
// returns the rows evicted off the top of the region when scrolling up,
// so callers that want scrollback accrual can push them themselves;
// Scroll itself never touches the scrollback deque.
func (g *Grid) Scroll(n, top, bottom int) []Cell {
	if top < 0 {
		top = 0
	}
	if bottom > g.rows {
		bottom = g.rows
	}
	if n == 0 || top >= bottom {
		return nil
	}

	var evicted []Cell
	if n > 0 {
		for i := 0; i < n; i++ {
			evicted = append(evicted, g.GetRow(top)...)
			for row := top; row < bottom-1; row++ {
				copy(g.cells[g.index(row, 0):g.index(row, 0)+g.cols],
					g.cells[g.index(row+1, 0):g.index(row+1, 0)+g.cols])
			}
			g.ClearRow(bottom - 1)
		}
	} else {
		for i := 0; i < -n; i++ {
			for row := bottom - 1; row > top; row-- {
				copy(g.cells[g.index(row, 0):g.index(row, 0)+g.cols],
					g.cells[g.index(row-1, 0):g.index(row-1, 0)+g.cols])
			}
			g.ClearRow(top)
		}
	}
	g.MarkDirtyRange(top, bottom)
	return evicted
}

// PushScrollback pushes row onto the front of the scrollback deque,
// trimming the back if the cap is exceeded. This is a grid-only
// operation; nothing in the parser triggers it directly — a session
// calls it in response to the parser's scrollback-push notification.
func (g *Grid) PushScrollback(row []Cell) {
	cp := make([]Cell, len(row))
	copy(cp, row)
	g.scrollback = append([][]Cell{cp}, g.scrollback...)
	if len(g.scrollback) > g.maxScrollback {
		g.scrollback = g.scrollback[:g.maxScrollback]
	}
}

// ScrollbackLen returns the number of lines currently in scrollback.
func (g *Grid) ScrollbackLen() int { return len(g.scrollback) }

// ScrollbackLine returns scrollback line index (0 = most recently
// evicted), or nil if index is out of range.
func (g *Grid) ScrollbackLine(index int) []Cell {
	if index < 0 || index >= len(g.scrollback) {
		return nil
	}
	return g.scrollback[index]
}

// ClearScrollback discards all scrollback history.
func (g *Grid) ClearScrollback() { g.scrollback = nil }

// MaxScrollback returns the configured scrollback cap.
func (g *Grid) MaxScrollback() int { return g.maxScrollback }

// SetMaxScrollback changes the scrollback cap, trimming existing history
// if it now exceeds the new cap.
func (g *Grid) SetMaxScrollback(lines int) {
	if lines <= 0 {
		lines = DefaultMaxScrollback
	}
	g.maxScrollback = lines
	if len(g.scrollback) > lines {
		g.scrollback = g.scrollback[:lines]
	}
}

// MarkDirty flags row as needing redraw.
func (g *Grid) MarkDirty(row int) {
	if row >= 0 && row < g.rows {
		g.dirty[row] = true
	}
}

// MarkDirtyRange flags rows [start, end) as needing redraw.
func (g *Grid) MarkDirtyRange(start, end int) {
	for row := start; row < end; row++ {
		g.MarkDirty(row)
	}
}

// MarkAllDirty flags every row as needing redraw.
func (g *Grid) MarkAllDirty() { g.MarkDirtyRange(0, g.rows) }

// IsDirty reports whether row is flagged for redraw.
func (g *Grid) IsDirty(row int) bool {
	if row < 0 || row >= g.rows {
		return false
	}
	return g.dirty[row]
}

// DirtyRows returns the indices of every row flagged for redraw.
func (g *Grid) DirtyRows() []int {
	var rows []int
	for row, d := range g.dirty {
		if d {
			rows = append(rows, row)
		}
	}
	return rows
}

// ClearDirty clears every row's dirty flag.
func (g *Grid) ClearDirty() {
	for row := range g.dirty {
		g.dirty[row] = false
	}
}

// Resize changes the grid's dimensions, preserving the overlapping
// region of existing content without splitting a wide character (a
// width-2 cell at the new right edge is replaced with a blank rather
// than truncated to its left half).
func (g *Grid) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return ErrInvalidDimensions
	}
	newCells := make([]Cell, cols*rows)
	for i := range newCells {
		newCells[i] = NewCell()
	}

	copyRows := rows
	if g.rows < copyRows {
		copyRows = g.rows
	}
	copyCols := cols
	if g.cols < copyCols {
		copyCols = g.cols
	}

	for row := 0; row < copyRows; row++ {
		for col := 0; col < copyCols; col++ {
			cell := g.cells[g.index(row, col)]
			if col == copyCols-1 && cell.Width == 2 && copyCols < g.cols {
				cell = NewCell()
			}
			newCells[row*cols+col] = cell
		}
	}

	g.cells = newCells
	g.cols = cols
	g.rows = rows
	g.dirty = make([]bool, rows)
	g.MarkAllDirty()
	return nil
}

// RowText returns the UTF-8 text of a row: width-0 companion cells are
// skipped, combining marks are appended to their base rune, and
// trailing spaces are trimmed.
func (g *Grid) RowText(row int) string {
	if row < 0 || row >= g.rows {
		return ""
	}
	var b strings.Builder
	for col := 0; col < g.cols; col++ {
		cell := g.cells[g.index(row, col)]
		if cell.Width == 0 {
			continue
		}
		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}
		b.WriteRune(ch)
		for _, cm := range cell.Combining {
			if cm == 0 {
				break
			}
			b.WriteRune(cm)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// RegionText returns the UTF-8 text of rows [startRow, endRow] honoring
// column bounds startCol/endCol on every row (inclusive), unlike the
// row-bounds-ignoring behavior of the original buffer this is modeled
// on.
func (g *Grid) RegionText(startRow, startCol, endRow, endCol int) string {
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	var lines []string
	for row := startRow; row <= endRow; row++ {
		if row < 0 || row >= g.rows {
			continue
		}
		colStart, colEnd := startCol, endCol
		if colStart < 0 {
			colStart = 0
		}
		if colEnd >= g.cols {
			colEnd = g.cols - 1
		}
		if colEnd < colStart {
			continue
		}
		var b strings.Builder
		for col := colStart; col <= colEnd; col++ {
			cell := g.cells[g.index(row, col)]
			if cell.Width == 0 {
				continue
			}
			ch := cell.Char
			if ch == 0 {
				ch = ' '
			}
			b.WriteRune(ch)
			for _, cm := range cell.Combining {
				if cm == 0 {
					break
				}
				b.WriteRune(cm)
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// AllText returns the UTF-8 text of the entire visible screen.
func (g *Grid) AllText() string {
	lines := make([]string, g.rows)
	for row := 0; row < g.rows; row++ {
		lines[row] = g.RowText(row)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
