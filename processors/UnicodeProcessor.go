package processors

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"
	"github.com/unicodeguard/unicodeguard/core"
)

// UnicodeProcessor finds every code point above the 7-bit ASCII range in the
// lines of a file. Detection iterates over decoded Unicode scalar values
// directly rather than matching a pattern, so it carries no regex-engine
// Unicode semantics. The same code point repeated on one line is reported once.
type UnicodeProcessor struct {
}

// Supports rejects paths inside a .git directory. Tracked dotfiles like
// .gitignore or .github/workflows are regular text files and stay in scope.
func (p UnicodeProcessor) Supports(filePath string) bool {
	for _, segment := range strings.Split(filePath, "/") {
		if segment == ".git" {
			return false
		}
	}
	return true
}

func (p UnicodeProcessor) Process(path string, repoName string, content string) ([]core.Finding, error) {
	var findings []core.Finding

	language := enry.GetLanguage(path, []byte(content))

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		seen := map[rune]bool{}
		rest := line
		for len(rest) > 0 {
			r, size := utf8.DecodeRuneInString(rest)
			rest = rest[size:]
			if r <= 0x7F {
				continue
			}
			// Size 1 means an invalid byte, not a literal U+FFFD.
			if r == utf8.RuneError && size == 1 {
				continue
			}
			if seen[r] {
				continue
			}
			seen[r] = true

			finding := core.Finding{
				Path:      path,
				Line:      i + 1,
				Codepoint: fmt.Sprintf("%x", r),
				Character: string(r),
				RepoName:  repoName,
				Properties: map[string]interface{}{
					"classification": classifyRune(r),
				},
			}
			if language != "" {
				finding.Properties["language"] = language
			}
			findings = append(findings, finding)
		}
	}

	return findings, nil
}

// classifyRune tags the more dangerous categories of non-ASCII code points.
// Bidirectional controls and other invisible characters are the ones that
// matter most in a wallet codebase review.
func classifyRune(r rune) string {
	switch {
	case unicode.Is(unicode.Bidi_Control, r):
		return "bidi-control"
	case unicode.Is(unicode.C, r):
		return "control"
	case unicode.IsSpace(r):
		return "whitespace"
	default:
		return "text"
	}
}
