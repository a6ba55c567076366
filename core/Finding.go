package core

import "strings"

// Finding is a single non-ASCII code point observed on one line of a scanned file.
// Codepoint holds the lowercase hex rendering of the Unicode scalar value with
// no "0x" prefix and no padding (U+00E9 -> "e9").
type Finding struct {
	Path       string                 `json:"path"`
	Line       int                    `json:"line"`
	Codepoint  string                 `json:"codepoint"`
	Character  string                 `json:"character,omitempty"`
	RepoName   string                 `json:"repo_name,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// DisplayCodepoint renders the code point in the conventional uppercase U+ form.
func (f Finding) DisplayCodepoint() string {
	return "U+" + strings.ToUpper(f.Codepoint)
}
