package processors

import (
	"github.com/unicodeguard/unicodeguard/core"
)

// InitializeProcessors creates and returns a slice of FileProcessor implementations.
func InitializeProcessors() []core.FileProcessor {
	var processors []core.FileProcessor

	processors = append(processors, UnicodeProcessor{})

	return processors
}
