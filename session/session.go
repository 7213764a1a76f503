// Package session composes a PTY, a ring buffer, a VT parser, and a
// cell grid into the per-tab object: it wires the parser's callbacks so
// damage lands in the grid, owns the pump that drains the ring on the
// UI goroutine, and persists its configuration as TOML. Grounded on
// RavenTerminal's tab.Pane, reshaped so that only process_output (not a
// background reader) ever touches the parser or the grid.
package session

import (
	"errors"
	"fmt"

	"github.com/rizonesoft/Console3/grid"
	"github.com/rizonesoft/Console3/input"
	"github.com/rizonesoft/Console3/pty"
	"github.com/rizonesoft/Console3/ringbuffer"
	"github.com/rizonesoft/Console3/vtparser"
)

const ringCapacity = 64 * 1024

// State mirrors the underlying PTY session's lifecycle.
type State int

const (
	Idle State = iota
	Running
	Exited
)

// Config describes how to start a session and is what gets persisted.
type Config struct {
	Shell           string   `toml:"shell"`
	Args            []string `toml:"args"`
	WorkingDir      string   `toml:"working_dir"`
	Title           string   `toml:"title"`
	ProfileName     string   `toml:"profile_name"`
	Rows            int      `toml:"rows"`
	Cols            int      `toml:"cols"`
	ScrollbackLines int      `toml:"scrollback_lines"`
	TabIndex        int      `toml:"tab_index"`
}

const (
	defaultRows       = 25
	defaultCols       = 80
	defaultScrollback = 10000
)

// applyDefaults fills in defensive defaults for a deserialized config,
// per the persistence format's "unknown/missing fields are defaulted"
// requirement.
func (c *Config) applyDefaults() {
	if c.Rows <= 0 {
		c.Rows = defaultRows
	}
	if c.Cols <= 0 {
		c.Cols = defaultCols
	}
	if c.ScrollbackLines <= 0 {
		c.ScrollbackLines = defaultScrollback
	}
}

// ErrNotRunning is returned by Write when the session hasn't been started.
var ErrNotRunning = errors.New("session: not running")

// Session is the per-tab object: one PTY, one ring buffer, one parser,
// one grid.
type Session struct {
	cfg Config

	pty  *pty.Session
	ring *ringbuffer.RingBuffer
	term *vtparser.Terminal
	grid *grid.Grid

	state    State
	exitCode int
	title    string

	// OnTitleChange reports a title change observed via OSC 0/2.
	OnTitleChange func(title string)
	// OnExit reports the child's exit code.
	OnExit func(code int)
	// OnError reports a fatal reader I/O error (other than a clean
	// broken-pipe/EOF shutdown); the session transitions to Exited
	// alongside this callback.
	OnError func(err error)
}

// New constructs an idle session from cfg, applying defensive defaults.
func New(cfg Config) (*Session, error) {
	cfg.applyDefaults()

	g, err := grid.New(cfg.Cols, cfg.Rows, cfg.ScrollbackLines)
	if err != nil {
		return nil, fmt.Errorf("session: grid: %w", err)
	}
	term, err := vtparser.New(cfg.Cols, cfg.Rows, cfg.ScrollbackLines)
	if err != nil {
		return nil, fmt.Errorf("session: parser: %w", err)
	}

	s := &Session{
		cfg:   cfg,
		ring:  ringbuffer.New(ringCapacity),
		term:  term,
		grid:  g,
		state: Idle,
		title: cfg.Title,
	}
	s.wireCallbacks()
	return s, nil
}

func (s *Session) wireCallbacks() {
	s.term.OnDamage = func(r0, r1, c0, c1 int) {
		for row := r0; row < r1; row++ {
			for col := c0; col < c1; col++ {
				s.grid.SetCell(row, col, s.term.Cell(row, col))
			}
			s.grid.MarkDirty(row)
		}
	}
	s.term.OnScrollbackPush = func(row []grid.Cell) {
		s.grid.PushScrollback(row)
	}
	s.term.OnSetProp = func(props vtparser.TermProps) {
		if props.Title != "" && props.Title != s.title {
			s.title = props.Title
			if s.OnTitleChange != nil {
				s.OnTitleChange(s.title)
			}
		}
	}
	s.term.OnOutput = func(b []byte) {
		if s.pty != nil {
			s.pty.Write(b)
		}
	}
}

// Start spawns the PTY, transitioning the session from Idle to Running.
func (s *Session) Start() error {
	p := pty.New()
	p.OnExit = func(code int) {
		s.exitCode = code
		s.state = Exited
		if s.OnExit != nil {
			s.OnExit(code)
		}
	}
	p.OnError = func(err error) {
		if s.OnError != nil {
			s.OnError(err)
		}
	}

	err := p.Start(pty.Config{
		Shell:      s.cfg.Shell,
		Args:       s.cfg.Args,
		WorkingDir: s.cfg.WorkingDir,
		Cols:       uint16(s.cfg.Cols),
		Rows:       uint16(s.cfg.Rows),
	}, s.ring)
	if err != nil {
		return err
	}

	s.pty = p
	s.state = Running
	s.grid.MarkAllDirty()
	return nil
}

// Stop tears down the PTY session.
func (s *Session) Stop() {
	if s.pty != nil {
		s.pty.Stop()
	}
}

// ProcessOutput drains the ring buffer into the parser and flushes
// damage exactly once, regardless of how many chunks were drained. Call
// this from the UI goroutine on each tick; it is the only place the
// parser is fed, which keeps all grid mutation off the reader goroutine.
func (s *Session) ProcessOutput() {
	var buf [4096]byte
	drained := false
	for {
		n := s.ring.Read(buf[:])
		if n == 0 {
			break
		}
		s.term.InputWrite(buf[:n])
		drained = true
	}
	if drained {
		s.term.FlushDamage()
	}
}

// Resize forwards a geometry change to the PTY, then the parser, then
// the grid, in that order so the shell observes the resize before it
// emits further output that depends on the new dimensions.
func (s *Session) Resize(cols, rows int) error {
	if s.pty != nil {
		if err := s.pty.Resize(uint16(cols), uint16(rows)); err != nil {
			return err
		}
	}
	if err := s.term.Resize(cols, rows); err != nil {
		return err
	}
	if err := s.grid.Resize(cols, rows); err != nil {
		return err
	}
	s.cfg.Cols, s.cfg.Rows = cols, rows
	return nil
}

// Write forwards bytes to the PTY only while Running.
func (s *Session) Write(data []byte) (int, error) {
	if s.state != Running || s.pty == nil {
		return 0, ErrNotRunning
	}
	return s.pty.Write(data)
}

// KeyboardUnichar, KeyboardKey, and KeyboardPaste encode UI-originated
// input through the parser's current modes and forward the result to
// the PTY.
func (s *Session) KeyboardUnichar(r rune, mods input.Modifiers) { s.term.KeyboardUnichar(r, mods) }
func (s *Session) KeyboardKey(key input.NamedKey, mods input.Modifiers) {
	s.term.KeyboardKey(key, mods)
}
func (s *Session) KeyboardPaste(data []byte) { s.term.KeyboardPaste(data) }

// Grid returns the session's rendering-contract grid.
func (s *Session) Grid() *grid.Grid { return s.grid }

// State returns the session's lifecycle state.
func (s *Session) State() State { return s.state }

// ExitCode returns the child's exit code; only meaningful once Exited.
func (s *Session) ExitCode() int { return s.exitCode }

// Title returns the current window title.
func (s *Session) Title() string { return s.title }

// Config returns a copy of the session's current configuration,
// suitable for Serialize.
func (s *Session) Config() Config {
	cfg := s.cfg
	cfg.Title = s.title
	return cfg
}
