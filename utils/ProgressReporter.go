package utils

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter defines methods for reporting progress.
type ProgressReporter interface {
	SetTotal(total int)
	Increment()
	Finish()
}

// BarProgressReporter is a concrete implementation using progressbar.
type BarProgressReporter struct {
	description string
	bar         *progressbar.ProgressBar
	total       int
}

func NewBarProgressReporter(total int, description string) *BarProgressReporter {
	return &BarProgressReporter{
		description: description,
		bar:         newBar(total, description),
		total:       total,
	}
}

// SetTotal reinitializes the progress bar with the new total count.
func (p *BarProgressReporter) SetTotal(total int) {
	p.total = total
	p.bar = newBar(total, p.description)
}

// Increment increases the progress bar by one.
func (p *BarProgressReporter) Increment() {
	_ = p.bar.Add(1)
}

// Finish completes the bar and moves the cursor to the next line.
func (p *BarProgressReporter) Finish() {
	_ = p.bar.Finish()
}

func newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(100e6),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionUseANSICodes(true),
	)
}
