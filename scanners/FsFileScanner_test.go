package scanners

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unicodeguard/unicodeguard/processors"
)

func writeFixture(t *testing.T, dir, relPath, content string) {
	fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
	assert.Nil(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	assert.Nil(t, os.WriteFile(fullPath, []byte(content), 0644))
}

func TestTraverseAndSearchFindsNonAsciiContent(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.txt", "line one\nline two\ncafé\n")
	writeFixture(t, dir, "plain.txt", "nothing unusual here\n")

	scanner := FsFileScanner{Processors: processors.InitializeProcessors()}
	findings, err := scanner.TraverseAndSearch(dir, "")
	assert.Nil(t, err)
	assert.Len(t, findings, 1)
	assert.Equal(t, "a.txt", findings[0].Path)
	assert.Equal(t, 3, findings[0].Line)
	assert.Equal(t, "e9", findings[0].Codepoint)
}

func TestExcludedPathsNeverContributeFindings(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "electrum/locale/de.po", "üäö viele Umlaute é\n")
	writeFixture(t, dir, "electrum/wallet.py", "café\n")

	excludes, err := NewExcludeSet([]string{"electrum/locale/"})
	assert.Nil(t, err)

	scanner := FsFileScanner{Processors: processors.InitializeProcessors(), Excludes: excludes}
	findings, err := scanner.TraverseAndSearch(dir, "")
	assert.Nil(t, err)
	assert.Len(t, findings, 1)
	assert.Equal(t, "electrum/wallet.py", findings[0].Path)
}

func TestBinaryFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "blob.bin", "café\x00\x01\x02")

	scanner := FsFileScanner{Processors: processors.InitializeProcessors()}
	findings, err := scanner.TraverseAndSearch(dir, "")
	assert.Nil(t, err)
	assert.Empty(t, findings)
}

func TestGitDirectoryIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, ".git/COMMIT_EDITMSG", "café\n")

	scanner := FsFileScanner{Processors: processors.InitializeProcessors()}
	findings, err := scanner.TraverseAndSearch(dir, "")
	assert.Nil(t, err)
	assert.Empty(t, findings)
}

func TestSearchFilesScansOnlyTheGivenList(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "tracked.txt", "café\n")
	writeFixture(t, dir, "untracked.txt", "naïve\n")

	scanner := FsFileScanner{Processors: processors.InitializeProcessors()}
	findings, err := scanner.SearchFiles(dir, []string{"tracked.txt"}, "")
	assert.Nil(t, err)
	assert.Len(t, findings, 1)
	assert.Equal(t, "tracked.txt", findings[0].Path)
}
