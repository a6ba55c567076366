package summaryprocessors

import "github.com/unicodeguard/unicodeguard/core"

// Classifications counts findings per classification so a bidi control in one
// file stands out from a thousand accented characters in another.
type Classifications struct {
	counts map[string]int
}

func NewClassificationsSummaryProcessor() *Classifications {
	return &Classifications{counts: map[string]int{}}
}

func (c *Classifications) Process(finding core.Finding) {
	if val, ok := finding.Properties["classification"]; ok {
		if classification, ok := val.(string); ok {
			c.counts[classification]++
		}
	}
}

func (c *Classifications) GetFindings() []core.Finding {
	var summaries []core.Finding
	for classification, count := range c.counts {
		summaries = append(summaries, core.Finding{
			Properties: map[string]interface{}{
				"summary":        "classifications",
				"classification": classification,
				"count":          count,
			},
		})
	}
	return summaries
}
