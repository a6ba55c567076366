package reporters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/utils"
)

func TestJsonReporterWritesDetailedReport(t *testing.T) {
	dir := t.TempDir()

	repo := &utils.MockFindingRepository{}
	err := repo.Store([]core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "e9", Character: "é"},
		{Path: "b.txt", Line: 1, Codepoint: "2014", Character: "—"},
	})
	assert.Nil(t, err)

	reporter := JsonReporter{OutputDir: dir}
	err = reporter.Report(repo)
	assert.Nil(t, err)

	data, err := os.ReadFile(filepath.Join(dir, DefaultJsonReport))
	assert.Nil(t, err)

	lines := 0
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		var finding core.Finding
		assert.Nil(t, json.Unmarshal([]byte(line), &finding))
		lines++
	}
	assert.Equal(t, 2, lines)
}

func TestJsonReporterWritesSummaryForConfiguredQueries(t *testing.T) {
	dir := t.TempDir()

	repo := &utils.MockFindingRepository{}
	err := repo.Store([]core.Finding{
		{Path: "a.txt", Line: 3, Codepoint: "e9"},
		{Path: "a.txt", Line: 9, Codepoint: "e9"},
	})
	assert.Nil(t, err)

	reporter := JsonReporter{
		OutputDir: dir,
		Queries: core.SqlQueries{
			Queries: []core.SqlQuery{
				{Name: "per_codepoint", Query: "SELECT Codepoint, COUNT(*) AS n FROM Findings GROUP BY Codepoint"},
			},
		},
	}
	err = reporter.Report(repo)
	assert.Nil(t, err)

	data, err := os.ReadFile(filepath.Join(dir, DefaultJsonSummaryReport))
	assert.Nil(t, err)

	var summary map[string]interface{}
	assert.Nil(t, json.Unmarshal(data, &summary))
	assert.Contains(t, summary, "per_codepoint")
}
