package scanners

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/repositories"
	"github.com/unicodeguard/unicodeguard/utils"
)

// WorktreeScanner is the pre-commit mode: it scans the git-tracked files of a
// working tree against the whitelist and records every newly seen code point.
type WorktreeScanner struct {
	reporter          core.Reporter
	fileScanner       FsFileScanner
	findingRepository core.FindingRepository
	whitelistStore    repositories.WhitelistStore
}

func NewWorktreeScanner(reporter core.Reporter,
	processors []core.FileProcessor,
	findingRepository core.FindingRepository,
	whitelistStore repositories.WhitelistStore,
	excludes *ExcludeSet) *WorktreeScanner {
	return &WorktreeScanner{
		reporter:          reporter,
		fileScanner:       FsFileScanner{Processors: processors, Excludes: excludes},
		findingRepository: findingRepository,
		whitelistStore:    whitelistStore,
	}
}

func (scanner WorktreeScanner) Scan(directory string, reportFormat string) {
	whitelist, err := scanner.whitelistStore.Load()
	if err != nil {
		log.Fatalf("Failed to load whitelist: %v", err)
	}

	trackedFiles, err := utils.ListTrackedFiles(directory)
	if err != nil {
		log.Fatalf("Failed to enumerate tracked files in '%s': %v", directory, err)
	}

	findings, scanErr := scanner.fileScanner.SearchFiles(directory, trackedFiles, "")

	newFindings, err := ApplyWhitelist(findings, whitelist, scanner.whitelistStore)
	if err != nil {
		log.Fatalf("Failed to persist whitelist: %v", err)
	}
	if scanErr != nil {
		log.Fatalf("Scan did not complete cleanly: %v", scanErr)
	}

	if err := scanner.findingRepository.Store(newFindings); err != nil {
		log.Fatalf("Error storing findings: %v", err)
	}
	if err := scanner.reporter.Report(scanner.findingRepository); err != nil {
		log.Fatalf("Error generating report: %v", err)
	}

	fmt.Printf("Scan complete. Whitelist updated in %s file.\n", scanner.whitelistStore.Path())
}
