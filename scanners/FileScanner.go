package scanners

import (
	"github.com/unicodeguard/unicodeguard/core"
)

const (
	MaxWorkers     = 10
	MaxFileWorkers = 10
	CloneBaseDir   = "/tmp/unicodeguard"
)

type FileScanner interface {
	TraverseAndSearch(targetDir, repoName string) ([]core.Finding, error)
}
