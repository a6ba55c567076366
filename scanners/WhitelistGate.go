package scanners

import (
	"fmt"
	"sort"

	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/repositories"
)

// ApplyWhitelist runs findings through the whitelist sequentially. Every code
// point not yet approved for its file is printed, added to the whitelist, and
// the whole store is persisted before the next finding is considered, so a
// kill mid-scan loses nothing already reported. The report line is emitted
// before the write attempt: a finding stays visible even when persistence
// fails.
func ApplyWhitelist(findings []core.Finding, whitelist *core.Whitelist, store repositories.WhitelistStore) ([]core.Finding, error) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Path != findings[j].Path {
			return findings[i].Path < findings[j].Path
		}
		return findings[i].Line < findings[j].Line
	})

	var newFindings []core.Finding
	for _, finding := range findings {
		if whitelist.Contains(finding.Path, finding.Codepoint) {
			continue
		}

		fmt.Printf("New Unicode character found: %s:%d - %s\n", finding.Path, finding.Line, finding.DisplayCodepoint())

		whitelist.Add(finding.Path, finding.Codepoint)
		newFindings = append(newFindings, finding)
		if err := store.Save(whitelist); err != nil {
			return newFindings, err
		}
	}
	return newFindings, nil
}
