package reporters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/repositories"
	"github.com/unicodeguard/unicodeguard/utils"
)

func TestConsoleReporterReportsCleanScanWithoutError(t *testing.T) {
	repository := repositories.NewFileBasedFindingRepository()
	defer repository.Clear()

	// A scan with zero new findings still stores its (empty) batch.
	assert.Nil(t, repository.Store(nil))

	assert.Nil(t, ConsoleReporter{}.Report(repository))
}

func TestConsoleReporterCountsFindings(t *testing.T) {
	repo := &utils.MockFindingRepository{}
	assert.Nil(t, repo.Store([]core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "e9"},
		{Path: "b.txt", Line: 1, Codepoint: "2014"},
	}))

	assert.Nil(t, ConsoleReporter{}.Report(repo))
}
