package scanners

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/utils"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const workerBufferSize = 100

type ProjectJob struct {
	Project *gitlab.Project
}

type ProjectResult struct {
	Findings    []core.Finding
	Error       error
	ProjectName string
}

// GitlabScanner audits every project visible to the token on a GitLab
// instance. Project listing goes through the bbolt cache so a re-run does not
// re-page the API.
type GitlabScanner struct {
	Reporter          core.Reporter
	FileScanner       FileScanner
	FindingRepository core.FindingRepository
	ProgressReporter  utils.ProgressReporter
	GitlabApi         utils.GitlabApi
}

func NewGitlabScanner(reporter core.Reporter,
	processors []core.FileProcessor,
	findingRepository core.FindingRepository,
	gitlabApi utils.GitlabApi,
	excludes *ExcludeSet) *GitlabScanner {
	return &GitlabScanner{
		Reporter:          reporter,
		FileScanner:       FsFileScanner{Processors: processors, Excludes: excludes},
		FindingRepository: findingRepository,
		ProgressReporter:  utils.NewBarProgressReporter(0, "Scanning projects"),
		GitlabApi:         gitlabApi,
	}
}

func (scanner GitlabScanner) Scan() {
	if err := os.MkdirAll(CloneBaseDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create clone base directory '%s': %v", CloneBaseDir, err)
	}

	projects, err := scanner.GitlabApi.ListAllProjects()
	if err != nil || len(projects) == 0 {
		log.Fatalf("Error listing projects or no projects found: %v", err)
	}

	scanner.ProgressReporter.SetTotal(len(projects))

	jobs := make(chan ProjectJob, workerBufferSize)
	results := make(chan ProjectResult, workerBufferSize)

	var wg sync.WaitGroup
	workerCount := min(MaxWorkers, len(projects))
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go scanner.worker(i+1, jobs, results, &wg)
	}

	go func() {
		defer close(jobs)
		for _, project := range projects {
			jobs <- ProjectJob{Project: project}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		scanner.ProgressReporter.Increment()
		if res.Error != nil {
			log.Printf("Error processing project '%s': %v", res.ProjectName, res.Error)
			continue
		}
		if err := scanner.FindingRepository.Store(res.Findings); err != nil {
			log.Printf("Error storing findings for '%s': %v", res.ProjectName, err)
			continue
		}
	}

	scanner.ProgressReporter.Finish()
	if err := scanner.Reporter.Report(scanner.FindingRepository); err != nil {
		log.Fatalf("Error generating report: %v", err)
	}
}

func (scanner GitlabScanner) worker(id int, jobs <-chan ProjectJob, results chan<- ProjectResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for job := range jobs {
		if err := scanner.processProject(job.Project, id, results); err != nil {
			results <- ProjectResult{
				Error:       err,
				ProjectName: job.Project.PathWithNamespace,
			}
		}
	}
}

func (scanner GitlabScanner) processProject(project *gitlab.Project, workerID int, results chan<- ProjectResult) error {
	projectName := project.PathWithNamespace
	log.Printf("Worker %d: Processing project %s", workerID, projectName)

	projectPath := filepath.Join(CloneBaseDir, utils.SanitizeRepoName(projectName))

	defer func() {
		if err := os.RemoveAll(projectPath); err != nil {
			log.Printf("Warning: failed to remove %q: %v", projectPath, err)
		}
	}()

	if err := utils.CloneRepositoryWithToken(project.HTTPURLToRepo, projectPath, scanner.GitlabApi.Token()); err != nil {
		return fmt.Errorf("failed to clone project '%s': %w", projectName, err)
	}

	findings, err := scanner.FileScanner.TraverseAndSearch(projectPath, projectName)
	if err != nil {
		return fmt.Errorf("error searching project '%s': %w", projectName, err)
	}

	results <- ProjectResult{
		Findings:    findings,
		ProjectName: projectName,
	}
	return nil
}
