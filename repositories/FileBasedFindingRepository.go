package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	log "github.com/sirupsen/logrus"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/utils"
)

// FileBasedFindingRepository buffers finding batches as JSON files in a
// scratch directory so reporters can iterate over them without holding every
// finding in memory.
type FileBasedFindingRepository struct {
	path  string
	files []string
}

func NewFileBasedFindingRepository() core.FindingRepository {
	return &FileBasedFindingRepository{
		path:  os.TempDir(),
		files: make([]string, 0),
	}
}

func (r *FileBasedFindingRepository) Store(findings []core.Finding) error {
	// A clean scan stores an empty batch; keep it a JSON array, not null.
	if findings == nil {
		findings = []core.Finding{}
	}

	jsonData, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return err
	}

	filePath := path.Join(r.path, utils.GenerateRandomFilename("json"))
	r.files = append(r.files, filePath)
	err = os.WriteFile(filePath, jsonData, 0644)
	if err != nil {
		return err
	}
	return nil
}

func (r *FileBasedFindingRepository) Clear() error {
	for _, filePath := range r.files {
		err := os.Remove(filePath)
		if err != nil {
			return err
		}
	}
	r.files = nil
	return nil
}

func (r *FileBasedFindingRepository) Close() error {
	return nil
}

// NewIterator creates a new FileBasedFindingIterator for the repository.
func (r *FileBasedFindingRepository) NewIterator() core.FindingIterator {
	return &FileBasedFindingIterator{
		Repository:  r,
		currentFile: 0,
	}
}

// FileBasedFindingIterator walks the batch files one at a time. A batch may
// legitimately be empty, so exhaustion is tracked with a flag rather than
// inferred from the loaded set.
type FileBasedFindingIterator struct {
	Repository  *FileBasedFindingRepository
	currentFile int
	loaded      bool
	findingSet  core.FindingSet
}

func (it *FileBasedFindingIterator) HasNext() bool {
	if it.loaded {
		return true
	}
	for it.currentFile < len(it.Repository.files) {
		err := it.loadNextFile()
		if err != nil {
			log.Printf("Error loading file %s: %v", it.Repository.files[it.currentFile], err)
			it.currentFile++
			continue
		}
		it.loaded = true
		return true
	}
	return false
}

func (it *FileBasedFindingIterator) Next() (core.FindingSet, error) {
	if !it.loaded {
		return core.FindingSet{}, fmt.Errorf("no more findings available")
	}
	it.loaded = false
	return it.findingSet, nil
}

func (it *FileBasedFindingIterator) Reset() error {
	it.currentFile = 0
	it.loaded = false
	it.findingSet = core.FindingSet{}
	return nil
}

func (it *FileBasedFindingIterator) loadNextFile() error {
	if it.currentFile >= len(it.Repository.files) {
		return fmt.Errorf("no more files to load")
	}

	filePath := it.Repository.files[it.currentFile]
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	var findings []core.Finding
	err = json.Unmarshal(data, &findings)
	if err != nil {
		return fmt.Errorf("failed to parse JSON in file %s: %w", filePath, err)
	}

	it.findingSet = core.FindingSet{Findings: findings}
	it.currentFile++

	return nil
}
