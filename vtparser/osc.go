package vtparser

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// processOSC accumulates an OSC payload until BEL or an ESC that may
// begin a String Terminator (ESC \).
func (t *Terminal) processOSC(b byte) {
	switch b {
	case 0x07:
		t.dispatchOSC(t.oscParams)
		t.state = stateGround
	case 0x1b:
		t.state = stateOSCEscape
	default:
		if len(t.oscParams) < 4096 {
			t.oscParams += string(b)
		}
	}
}

func (t *Terminal) processOSCEscape(b byte) {
	if b == '\\' {
		t.dispatchOSC(t.oscParams)
		t.state = stateGround
		return
	}
	// Not a String Terminator: the ESC was part of the payload, push it
	// back and reprocess this byte as plain OSC content.
	if len(t.oscParams) < 4096 {
		t.oscParams += string(byte(0x1b))
	}
	t.state = stateOSC
	t.processOSC(b)
}

func (t *Terminal) dispatchOSC(payload string) {
	semi := strings.IndexByte(payload, ';')
	if semi < 0 {
		return
	}
	code := payload[:semi]
	arg := payload[semi+1:]

	switch code {
	case "0":
		t.title = arg
		t.iconName = arg
		t.emitProps()
	case "1":
		t.iconName = arg
		t.emitProps()
	case "2":
		t.title = arg
		t.emitProps()
	case "7":
		t.handleWorkingDirectory(arg)
	}
}

// handleWorkingDirectory handles OSC 7, which the shell emits to report
// its current directory as a file:// URI. The parser has no field to
// hold the directory and TermProps carries none, so the URI is only
// parsed and then discarded; nothing is reported to callers.
func (t *Terminal) handleWorkingDirectory(uri string) {
	if _, err := url.Parse(uri); err != nil {
		return
	}
}

// processDCS accumulates a DCS payload until BEL or ESC \.
func (t *Terminal) processDCS(b byte) {
	switch b {
	case 0x07:
		t.dispatchDCS(t.dcsParams)
		t.state = stateGround
	case 0x1b:
		t.state = stateDCSEscape
	default:
		if len(t.dcsParams) < 4096 {
			t.dcsParams += string(b)
		}
	}
}

func (t *Terminal) processDCSEscape(b byte) {
	if b == '\\' {
		t.dispatchDCS(t.dcsParams)
		t.state = stateGround
		return
	}
	if len(t.dcsParams) < 4096 {
		t.dcsParams += string(byte(0x1b))
	}
	t.state = stateDCS
	t.processDCS(b)
}

// capabilities answers XTGETTCAP queries for the handful of termcap
// names a VT/xterm-class terminal is expected to report.
var capabilities = map[string]string{
	"TN":   "xterm-256color",
	"Co":   "256",
	"name": "xterm-256color",
}

func (t *Terminal) dispatchDCS(payload string) {
	if !strings.HasPrefix(payload, "+q") {
		return
	}
	if t.OnOutput == nil {
		return
	}
	names := strings.Split(payload[2:], ";")
	var replies []string
	ok := true
	for _, hexName := range names {
		raw, err := hex.DecodeString(hexName)
		if err != nil {
			ok = false
			continue
		}
		name := string(raw)
		value, found := capabilities[name]
		if !found {
			ok = false
			continue
		}
		replies = append(replies, fmt.Sprintf("%s=%s", hexName, hex.EncodeToString([]byte(value))))
	}
	if !ok || len(replies) == 0 {
		t.OnOutput([]byte("\x1bP0+r\x1b\\"))
		return
	}
	t.OnOutput([]byte("\x1bP1+r" + strings.Join(replies, ";") + "\x1b\\"))
}
