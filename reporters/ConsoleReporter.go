package reporters

import (
	"fmt"

	"github.com/unicodeguard/unicodeguard/core"
)

// ConsoleReporter prints a one-line total. The per-finding lines are already
// on stdout by the time any reporter runs.
type ConsoleReporter struct {
}

func (r ConsoleReporter) Report(repository core.FindingRepository) error {
	total := 0
	iterator := repository.NewIterator()
	for iterator.HasNext() {
		findingSet, err := iterator.Next()
		if err != nil {
			return err
		}
		total += len(findingSet.Findings)
	}

	if total > 0 {
		fmt.Printf("Total new Unicode characters: %d\n", total)
	}
	return nil
}
