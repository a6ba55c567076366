package scanners

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/utils"
)

// RepoScanner audits a remote repository: clone, scan every file, report.
// No whitelist is consulted; the output is the full non-ASCII inventory.
type RepoScanner struct {
	reporter          core.Reporter
	fileScanner       FileScanner
	findingRepository core.FindingRepository
}

func NewRepoScanner(reporter core.Reporter,
	processors []core.FileProcessor,
	findingRepository core.FindingRepository,
	excludes *ExcludeSet) *RepoScanner {
	return &RepoScanner{
		reporter:          reporter,
		fileScanner:       FsFileScanner{Processors: processors, Excludes: excludes},
		findingRepository: findingRepository,
	}
}

func (scanner RepoScanner) Scan(repoURL string, reportFormat string) {
	err := os.MkdirAll(CloneBaseDir, os.ModePerm)
	if err != nil {
		log.Fatalf("Failed to create clone base directory '%s': %v", CloneBaseDir, err)
	}

	repoName, err := utils.ExtractRepoName(repoURL)
	if err != nil {
		log.Fatalf("Invalid repository URL '%s': %v", repoURL, err)
	}

	repoPath := filepath.Join(CloneBaseDir, utils.SanitizeRepoName(repoName))
	log.Printf("Cloning repository: %s\n", repoName)
	err = utils.CloneRepository(repoURL, repoPath)
	if err != nil {
		log.Fatalf("Failed to clone repository '%s': %v", repoName, err)
	}

	findings, err := scanner.fileScanner.TraverseAndSearch(repoPath, repoName)
	if err != nil {
		log.Fatalf("Error scanning repository '%s': %v", repoName, err)
	}

	err = scanner.findingRepository.Store(findings)
	if err != nil {
		log.Fatalf("Error storing findings for '%s': %v", repoName, err)
	}

	fmt.Printf("Number of non-ASCII code points found in '%s': %d\n", repoName, len(findings))

	err = scanner.reporter.Report(scanner.findingRepository)
	if err != nil {
		log.Fatalf("Error generating report: %v", err)
	}
}
