package session

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// document is the on-disk shape of a multi-session file: each Config is
// one array-of-tables entry under [[session]].
type document struct {
	Sessions []Config `toml:"session"`
}

// Serialize returns this session's persisted configuration document.
func (s *Session) Serialize() Config {
	return s.Config()
}

// Deserialize builds a Config from a decoded document, applying
// defensive defaults for any missing or invalid field.
func Deserialize(cfg Config) Config {
	cfg.applyDefaults()
	return cfg
}

// SaveSessions writes an ordered list of session configs to path as a
// TOML array-of-tables document.
func SaveSessions(path string, configs []Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("session: create %s: %w", path, err)
	}
	defer f.Close()

	doc := document{Sessions: configs}
	if err := toml.NewEncoder(f).Encode(doc); err != nil {
		return fmt.Errorf("session: encode %s: %w", path, err)
	}
	return nil
}

// LoadSessions reads a multi-session TOML file, applying defensive
// defaults to every entry. Unknown fields are ignored by the decoder.
func LoadSessions(path string) ([]Config, error) {
	var doc document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", path, err)
	}
	for i := range doc.Sessions {
		doc.Sessions[i].applyDefaults()
	}
	return doc.Sessions, nil
}
