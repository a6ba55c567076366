package summaryprocessors

import "github.com/unicodeguard/unicodeguard/core"

// Codepoints counts how often each distinct code point appears across the
// whole scan.
type Codepoints struct {
	counts map[string]int
}

func NewCodepointsSummaryProcessor() *Codepoints {
	return &Codepoints{counts: map[string]int{}}
}

func (c *Codepoints) Process(finding core.Finding) {
	if finding.Codepoint == "" {
		return
	}
	c.counts[finding.Codepoint]++
}

func (c *Codepoints) GetFindings() []core.Finding {
	var summaries []core.Finding
	for codepoint, count := range c.counts {
		summaries = append(summaries, core.Finding{
			Codepoint: codepoint,
			Properties: map[string]interface{}{
				"summary": "codepoints",
				"count":   count,
			},
		})
	}
	return summaries
}
