package vtparser

type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCSI
	stateOSC
	stateOSCEscape
	stateDCS
	stateDCSEscape
	stateCharset
	stateHash
)

type charset int

const (
	charsetASCII charset = iota
	charsetLineDrawing
)

type charsetTarget int

const (
	charsetTargetNone charsetTarget = iota
	charsetTargetG0
	charsetTargetG1
)

// decLineDrawing maps the DEC Special Graphics character set onto the
// Unicode box-drawing and symbol characters it represents, selected via
// ESC ( 0 / ESC ) 0 and SI/SO.
var decLineDrawing = map[rune]rune{
	'`': '◆', 'a': '▒', 'f': '°', 'g': '±', 'j': '┘', 'k': '┐',
	'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺', 'p': '⎻', 'q': '─',
	'r': '⎼', 's': '⎽', 't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
	'x': '│', 'y': '≤', 'z': '≥', '{': 'π', '|': '≠', '}': '£', '~': '·',
}

func (t *Terminal) processByte(b byte) {
	switch t.state {
	case stateGround:
		t.processGround(b)
	case stateEscape:
		t.processEscape(b)
	case stateCSI:
		t.processCSI(b)
	case stateOSC:
		t.processOSC(b)
	case stateOSCEscape:
		t.processOSCEscape(b)
	case stateDCS:
		t.processDCS(b)
	case stateDCSEscape:
		t.processDCSEscape(b)
	case stateCharset:
		t.setCharset(b)
		t.state = stateGround
	case stateHash:
		t.processHash(b)
		t.state = stateGround
	}
}
