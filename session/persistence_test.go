package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadSessionsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.toml")

	configs := []Config{
		{Shell: "/bin/bash", Args: []string{"-l"}, WorkingDir: "/tmp", Title: "work", Rows: 30, Cols: 100, ScrollbackLines: 5000, TabIndex: 0},
		{Shell: "/bin/zsh", Rows: 25, Cols: 80, ScrollbackLines: 10000, TabIndex: 1},
	}

	if err := SaveSessions(path, configs); err != nil {
		t.Fatalf("SaveSessions: %v", err)
	}

	got, err := LoadSessions(path)
	if err != nil {
		t.Fatalf("LoadSessions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d sessions, want 2", len(got))
	}
	if got[0].Shell != "/bin/bash" || got[0].Title != "work" || got[0].Rows != 30 {
		t.Errorf("session 0 = %+v", got[0])
	}
	if got[1].TabIndex != 1 {
		t.Errorf("session 1 TabIndex = %d, want 1", got[1].TabIndex)
	}
}

func TestLoadSessionsAppliesDefaultsToMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.toml")

	contents := "[[session]]\nshell = \"/bin/sh\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadSessions(path)
	if err != nil {
		t.Fatalf("LoadSessions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("loaded %d sessions, want 1", len(got))
	}
	if got[0].Rows != defaultRows || got[0].Cols != defaultCols || got[0].ScrollbackLines != defaultScrollback {
		t.Errorf("defaults not applied: %+v", got[0])
	}
}
