package repositories

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/utils"
)

const DefaultWhitelistPath = ".unicode_whitelist.json"

// WhitelistStore persists the accepted-codepoint whitelist between runs.
type WhitelistStore interface {
	Load() (*core.Whitelist, error)
	Save(whitelist *core.Whitelist) error
	Path() string
}

// JsonWhitelistStore keeps the whitelist as a single JSON object on disk,
// the long-lived artifact versioned alongside the scanned sources. A missing
// file is an empty whitelist; a file that exists but does not parse is a
// fatal configuration error, never silently overwritten.
type JsonWhitelistStore struct {
	path string
}

func NewJsonWhitelistStore(path string) *JsonWhitelistStore {
	return &JsonWhitelistStore{path: path}
}

func (s *JsonWhitelistStore) Path() string {
	return s.path
}

func (s *JsonWhitelistStore) Load() (*core.Whitelist, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return core.NewWhitelist(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read whitelist file '%s': %w", s.path, err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("whitelist file '%s' contains invalid JSON, refusing to overwrite it: %w", s.path, err)
	}

	return core.NewWhitelistFromRaw(raw), nil
}

// Save writes the whole whitelist through a temp file and an atomic rename so
// a crash mid-write never leaves a truncated store behind.
func (s *JsonWhitelistStore) Save(whitelist *core.Whitelist) error {
	jsonData, err := json.MarshalIndent(whitelist.Entries(), "", "  ")
	if err != nil {
		return err
	}
	jsonData = append(jsonData, '\n')

	if err := utils.WriteFileAtomic(s.path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write whitelist file '%s': %w", s.path, err)
	}
	return nil
}
