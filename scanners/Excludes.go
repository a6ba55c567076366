package scanners

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultExcludePrefixes are paths known to legitimately carry large volumes
// of non-ASCII text (translations, seed wordlists, store-listing metadata)
// that would flood the whitelist.
var DefaultExcludePrefixes = []string{
	"electrum/locale/",
	"electrum/wordlist/",
	"contrib/android/fastlane/",
}

// ExcludeSet matches scan-relative paths against configured exclusions.
// A pattern containing glob metacharacters is compiled with gobwas/glob;
// anything else is a plain path prefix.
type ExcludeSet struct {
	prefixes []string
	globs    []glob.Glob
}

func NewExcludeSet(patterns []string) (*ExcludeSet, error) {
	set := &ExcludeSet{}
	for _, pattern := range patterns {
		if strings.ContainsAny(pattern, "*?[{") {
			compiled, err := glob.Compile(pattern, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
			}
			set.globs = append(set.globs, compiled)
		} else {
			set.prefixes = append(set.prefixes, pattern)
		}
	}
	return set, nil
}

func (e *ExcludeSet) Match(path string) bool {
	for _, prefix := range e.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	for _, g := range e.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
