package scanners

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-enry/go-enry/v2"
	"github.com/unicodeguard/unicodeguard/core"
)

// FsFileScanner feeds file content through the processors with a small worker
// pool. Paths handed to processors (and carried on findings) are relative to
// the scan root, forward slashed, matching the keys of the whitelist file.
type FsFileScanner struct {
	Processors []core.FileProcessor
	Excludes   *ExcludeSet
}

func (fileScanner FsFileScanner) TraverseAndSearch(targetDir string, repoName string) ([]core.Finding, error) {
	info, err := os.Stat(targetDir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("target directory '%s' does not exist", targetDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("'%s' is not a directory", targetDir)
	}

	files := make(chan string, 100)

	go func() {
		defer close(files)
		_ = filepath.WalkDir(targetDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if d.Name() == ".git" {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(targetDir, path)
			if err != nil {
				return nil
			}
			files <- filepath.ToSlash(rel)
			return nil
		})
	}()

	return fileScanner.search(targetDir, repoName, files)
}

// SearchFiles scans an explicit list of scan-root-relative paths, the shape
// produced by the git index.
func (fileScanner FsFileScanner) SearchFiles(targetDir string, relPaths []string, repoName string) ([]core.Finding, error) {
	files := make(chan string, 100)

	go func() {
		defer close(files)
		for _, relPath := range relPaths {
			files <- relPath
		}
	}()

	return fileScanner.search(targetDir, repoName, files)
}

func (fileScanner FsFileScanner) search(targetDir string, repoName string, files <-chan string) ([]core.Finding, error) {
	fileFindings := make(chan core.Finding, 1000)
	errs := make(chan error, 10)

	var wg sync.WaitGroup
	for i := 0; i < MaxFileWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for relPath := range files {
				if fileScanner.Excludes != nil && fileScanner.Excludes.Match(relPath) {
					continue
				}
				content, err := os.ReadFile(filepath.Join(targetDir, filepath.FromSlash(relPath)))
				if err != nil {
					select {
					case errs <- fmt.Errorf("failed to read file %s: %v", relPath, err):
					default:
					}
					continue
				}
				if enry.IsBinary(content) {
					continue
				}
				for _, processor := range fileScanner.Processors {
					if processor.Supports(relPath) {
						results, _ := processor.Process(relPath, repoName, string(content))
						for _, finding := range results {
							fileFindings <- finding
						}
					}
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(fileFindings)
		close(errs)
	}()

	var findings []core.Finding
	for finding := range fileFindings {
		findings = append(findings, finding)
	}

	if len(errs) > 0 {
		return findings, fmt.Errorf("some files could not be read during scanning")
	}

	return findings, nil
}
