package scanners

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/go-github/v50/github"
	log "github.com/sirupsen/logrus"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/summaryprocessors"
	"github.com/unicodeguard/unicodeguard/utils"
)

type RepoJob struct {
	Repo *github.Repository
}

type RepoResult struct {
	Findings []core.Finding
	Error    error
	RepoName string
}

// GithubOrgScanner audits every repository of a GitHub organization for
// non-ASCII content, with a worker pool of cloners.
type GithubOrgScanner struct {
	reporter          core.Reporter
	fileScanner       FileScanner
	findingRepository core.FindingRepository
	githubApi         utils.GithubApi
	progressReporter  utils.ProgressReporter
}

func NewGithubOrgScanner(reporter core.Reporter,
	processors []core.FileProcessor,
	findingRepository core.FindingRepository,
	excludes *ExcludeSet) *GithubOrgScanner {
	return &GithubOrgScanner{
		reporter:          reporter,
		fileScanner:       FsFileScanner{Processors: processors, Excludes: excludes},
		findingRepository: findingRepository,
		githubApi:         utils.NewGithubApiClient(),
		progressReporter:  utils.NewBarProgressReporter(0, "Scanning repositories"),
	}
}

func (scanner GithubOrgScanner) Scan(orgName string, reportFormat string) {
	err := os.MkdirAll(CloneBaseDir, os.ModePerm)
	if err != nil {
		log.Fatalf("Failed to create clone base directory '%s': %v", CloneBaseDir, err)
	}

	repos, err := scanner.githubApi.ListRepositories(orgName)
	if err != nil {
		log.Fatalf("Error listing repos: %v", err)
	}
	if len(repos) == 0 {
		log.Fatalf("No repos found in organization '%s'. Exiting.", orgName)
	}

	scanner.progressReporter.SetTotal(len(repos))

	jobs := make(chan RepoJob, len(repos))
	results := make(chan RepoResult, len(repos))

	var wg sync.WaitGroup
	for w := 1; w <= MaxWorkers; w++ {
		wg.Add(1)
		go scanner.worker(w, jobs, results, &wg)
	}

	for _, repo := range repos {
		jobs <- RepoJob{Repo: repo}
	}
	close(jobs)

	wg.Wait()
	close(results)

	for res := range results {
		scanner.progressReporter.Increment()
		if res.Error != nil {
			log.Printf("Error processing repository '%s': %v", res.RepoName, res.Error)
			continue
		}
		err := scanner.findingRepository.Store(res.Findings)
		if err != nil {
			log.Fatalf("Error storing findings for '%s': %v", res.RepoName, err)
		}
	}
	scanner.progressReporter.Finish()

	scanner.storeSummaries()

	err = scanner.reporter.Report(scanner.findingRepository)
	if err != nil {
		log.Fatalf("Error generating report: %v", err)
	}
}

func (scanner GithubOrgScanner) worker(id int, jobs <-chan RepoJob, results chan<- RepoResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for job := range jobs {
		repo := job.Repo
		repoName := repo.GetFullName()
		log.Printf("Worker %d: Cloning repository %s", id, repoName)

		repoPath := filepath.Join(CloneBaseDir, utils.SanitizeRepoName(repoName))
		err := utils.CloneRepository(repo.GetCloneURL(), repoPath)
		if err != nil {
			results <- RepoResult{Error: err, RepoName: repoName}
			continue
		}

		findings, err := scanner.fileScanner.TraverseAndSearch(repoPath, repoName)
		if err != nil {
			results <- RepoResult{Error: err, RepoName: repoName}
			continue
		}

		results <- RepoResult{Findings: findings, RepoName: repoName}
	}
}

// storeSummaries appends aggregate findings (per classification, per code
// point) so an org-wide report shows bidi controls separately from the bulk of
// accented text.
func (scanner GithubOrgScanner) storeSummaries() {
	summaryProcessors := summaryprocessors.InitializeSummaryProcessors()

	iterator := scanner.findingRepository.NewIterator()
	for iterator.HasNext() {
		findingSet, _ := iterator.Next()
		for _, finding := range findingSet.Findings {
			for _, processor := range summaryProcessors {
				processor.Process(finding)
			}
		}
	}

	var summaries []core.Finding
	for _, processor := range summaryProcessors {
		summaries = append(summaries, processor.GetFindings()...)
	}

	if len(summaries) > 0 {
		if err := scanner.findingRepository.Store(summaries); err != nil {
			log.Printf("Error storing summary findings: %v", err)
		}
	}
}
