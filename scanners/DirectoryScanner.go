package scanners

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/repositories"
)

// DirectoryScanner walks a plain directory tree with no version control
// involved, for source trees that are not git checkouts.
type DirectoryScanner struct {
	reporter          core.Reporter
	fileScanner       FsFileScanner
	findingRepository core.FindingRepository
	whitelistStore    repositories.WhitelistStore
}

func NewDirectoryScanner(reporter core.Reporter,
	processors []core.FileProcessor,
	findingRepository core.FindingRepository,
	whitelistStore repositories.WhitelistStore,
	excludes *ExcludeSet) *DirectoryScanner {
	return &DirectoryScanner{
		reporter:          reporter,
		fileScanner:       FsFileScanner{Processors: processors, Excludes: excludes},
		findingRepository: findingRepository,
		whitelistStore:    whitelistStore,
	}
}

func (scanner DirectoryScanner) Scan(directory string, reportFormat string) {
	whitelist, err := scanner.whitelistStore.Load()
	if err != nil {
		log.Fatalf("Failed to load whitelist: %v", err)
	}

	findings, scanErr := scanner.fileScanner.TraverseAndSearch(directory, "")

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
