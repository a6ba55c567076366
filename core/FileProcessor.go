package core

// FileProcessor inspects the content of a single file and emits findings.
type FileProcessor interface {
	Supports(filePath string) bool

	Process(path string, repoName string, content string) ([]Finding, error)
}
