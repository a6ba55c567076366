package repositories

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/utils"
)

func TestStoreWritesFindingsToFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "prefix")
	if err != nil {
		assert.Nil(t, err)
	}
	defer os.RemoveAll(dir)

	repository := FileBasedFindingRepository{
		path: dir,
	}

	err = repository.Store([]core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "e9"},
	})
	assert.Nil(t, err)
	count, err := utils.CountFiles(dir)
	assert.Nil(t, err)
	assert.Equal(t, 1, count)
}

func TestClearRemovesAllFiles(t *testing.T) {
	dir, err := os.MkdirTemp("", "prefix")
	if err != nil {
		assert.Nil(t, err)
	}
	defer os.RemoveAll(dir)

	repository := FileBasedFindingRepository{
		path: dir,
	}

	err = repository.Store([]core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "e9"},
	})
	assert.Nil(t, err)
	err = repository.Clear()
	assert.Nil(t, err)
	count, err := utils.CountFiles(dir)
	assert.Nil(t, err)
	assert.Equal(t, 0, count)
}

func TestEmptyBatchIteratesAsEmptySet(t *testing.T) {
	dir, err := os.MkdirTemp("", "prefix")
	if err != nil {
		assert.Nil(t, err)
	}
	defer os.RemoveAll(dir)

	repository := FileBasedFindingRepository{
		path: dir,
	}

	assert.Nil(t, repository.Store(nil))

	iterator := repository.NewIterator()
	assert.True(t, iterator.HasNext())
	findingSet, err := iterator.Next()
	assert.Nil(t, err)
	assert.Empty(t, findingSet.Findings)
	assert.False(t, iterator.HasNext())
}

func TestIteratorReturnsStoredFindings(t *testing.T) {
	dir, err := os.MkdirTemp("", "prefix")
	if err != nil {
		assert.Nil(t, err)
	}
	defer os.RemoveAll(dir)

	repository := FileBasedFindingRepository{
		path: dir,
	}

	err = repository.Store([]core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "e9"},
		{Path: "b.txt", Line: 1, Codepoint: "2014"},
	})
	assert.Nil(t, err)

	iterator := repository.NewIterator()
	assert.True(t, iterator.HasNext())
	findingSet, err := iterator.Next()
	assert.Nil(t, err)
	assert.Len(t, findingSet.Findings, 2)
	assert.Equal(t, "e9", findingSet.Findings[0].Codepoint)
	assert.False(t, iterator.HasNext())
}
