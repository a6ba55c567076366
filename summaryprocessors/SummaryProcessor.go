package summaryprocessors

import "github.com/unicodeguard/unicodeguard/core"

// SummaryProcessor folds individual findings into aggregate findings that
// reporters append after the raw results.
type SummaryProcessor interface {
	Process(finding core.Finding)
	GetFindings() []core.Finding
}

func InitializeSummaryProcessors() []SummaryProcessor {
	return []SummaryProcessor{
		NewClassificationsSummaryProcessor(),
		NewCodepointsSummaryProcessor(),
	}
}
