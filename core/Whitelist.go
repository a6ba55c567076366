package core

import log "github.com/sirupsen/logrus"

// Whitelist records, per file path, the set of code points (lowercase hex)
// that have already been reviewed and accepted. An absent path is an empty set.
type Whitelist struct {
	entries map[string][]string
}

func NewWhitelist() *Whitelist {
	return &Whitelist{entries: make(map[string][]string)}
}

// NewWhitelistFromRaw builds a Whitelist from a freshly decoded JSON object.
// A value that is not an array of strings is treated as an empty set rather
// than failing the whole load; the entry gets replaced once a new code point
// is accepted for that file. Every key is registered even when its set ends
// up empty, so a later save never drops a file's entry.
func NewWhitelistFromRaw(raw map[string]interface{}) *Whitelist {
	whitelist := NewWhitelist()
	for path, value := range raw {
		whitelist.entries[path] = []string{}
		items, ok := value.([]interface{})
		if !ok {
			log.Warnf("Whitelist entry for '%s' is not an array; treating as empty", path)
			continue
		}
		for _, item := range items {
			codepoint, ok := item.(string)
			if !ok {
				log.Warnf("Whitelist entry for '%s' contains a non-string value; skipping it", path)
				continue
			}
			whitelist.Add(path, codepoint)
		}
	}
	return whitelist
}

// Contains reports whether the code point is already approved for the file.
func (w *Whitelist) Contains(path string, codepoint string) bool {
	for _, existing := range w.entries[path] {
		if existing == codepoint {
			return true
		}
	}
	return false
}

// Add appends the code point to the file's set, creating the set if absent.
// It returns true if the code point was not already present.
func (w *Whitelist) Add(path string, codepoint string) bool {
	if w.Contains(path, codepoint) {
		return false
	}
	w.entries[path] = append(w.entries[path], codepoint)
	return true
}

// Entries exposes the underlying mapping for persistence.
func (w *Whitelist) Entries() map[string][]string {
	return w.entries
}

func (w *Whitelist) FileCount() int {
	return len(w.entries)
}
