package reporters

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/utils"
)

const (
	DefaultJsonReport        = "unicode_report.json"
	DefaultJsonSummaryReport = "unicode_summary.json"
	SqliteDBFilename         = "unicode_findings.db"
)

// JsonReporter writes a detailed JSONL report of every finding plus a summary
// JSON produced by running the configured SQL queries over a throwaway SQLite
// database of the findings.
type JsonReporter struct {
	Queries   core.SqlQueries
	OutputDir string
}

func (j *JsonReporter) setDefaultOutputDir() {
	if j.OutputDir == "" {
		j.OutputDir = "."
	}
}

func (j JsonReporter) Report(repository core.FindingRepository) error {
	j.setDefaultOutputDir()

	dbPath := filepath.Join(os.TempDir(), SqliteDBFilename)

	db, err := utils.InitializeSQLiteDB(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize SQLite database: %w", err)
	}
	defer db.Close()

	if err := utils.ProcessFindingsIncrementally(db, repository); err != nil {
		return fmt.Errorf("failed to process findings: %w", err)
	}

	if err := j.generateDetailedReport(repository); err != nil {
		return fmt.Errorf("failed to generate detailed JSON report: %w", err)
	}

	if err := j.generateSummaryReport(db); err != nil {
		return fmt.Errorf("failed to generate summary JSON report: %w", err)
	}

	return nil
}

// generateDetailedReport writes one JSON object per finding set, line by line.
func (j JsonReporter) generateDetailedReport(repository core.FindingRepository) error {
	outputFilePath := filepath.Join(j.OutputDir, DefaultJsonReport)

	outputFile, err := os.Create(outputFilePath)
	if err != nil {
		return fmt.Errorf("failed to create detailed output file: %v", err)
	}
	defer outputFile.Close()

	iterator := repository.NewIterator()
	for iterator.HasNext() {
		findingSet, err := iterator.Next()
		if err != nil {
			return fmt.Errorf("failed to retrieve next finding set: %w", err)
		}

		for _, finding := range findingSet.Findings {
			jsonBytes, err := json.Marshal(finding)
			if err != nil {
				return fmt.Errorf("failed to marshal finding to JSON: %w", err)
			}
			if _, err = outputFile.Write(jsonBytes); err != nil {
				return fmt.Errorf("failed to write to detailed output file: %v", err)
			}
			if _, err = outputFile.WriteString("\n"); err != nil {
				return fmt.Errorf("failed to write newline to detailed output file: %v", err)
			}
		}
	}

	log.Printf("Detailed JSON report generated: %s", outputFilePath)
	return nil
}

// generateSummaryReport executes the configured SQL queries and writes their
// results keyed by query name.
func (j JsonReporter) generateSummaryReport(db *sql.DB) error {
	if len(j.Queries.Queries) == 0 {
		log.Println("No SQL queries defined for summary report; skipping.")
		return nil
	}

	outputFilePath := filepath.Join(j.OutputDir, DefaultJsonSummaryReport)

	summaryData := make(map[string]interface{})
	for _, query := range j.Queries.Queries {
		results, err := executeSQLQuery(db, query.Query)
		if err != nil {
			log.Printf("Skipping query for '%s': %v", query.Name, err)
			continue
		}
		summaryData[query.Name] = results
	}

	summaryBytes, err := json.MarshalIndent(summaryData, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary data: %w", err)
	}

	if err := os.WriteFile(outputFilePath, summaryBytes, 0644); err != nil {
		return fmt.Errorf("failed to write summary output file: %v", err)
	}

	log.Printf("Summary JSON report generated: %s", outputFilePath)
	return nil
}

// executeSQLQuery runs a SQL query and returns the results as a slice of maps.
func executeSQLQuery(db *sql.DB, query string) ([]map[string]interface{}, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query '%s': %w", query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve columns for query '%s': %w", query, err)
	}

	var results []map[string]interface{}

	for rows.Next() {
		columnValues := make([]interface{}, len(columns))
		columnPointers := make([]interface{}, len(columns))

		for i := range columnValues {
			columnPointers[i] = &columnValues[i]
		}

		if err := rows.Scan(columnPointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row for query '%s': %w", query, err)
		}

		rowData := make(map[string]interface{})
		for i, colName := range columns {
			value := columnValues[i]

			if b, ok := value.([]byte); ok {
				rowData[colName] = string(b)
			} else {
				rowData[colName] = value
			}
		}

		results = append(results, rowData)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error for query '%s': %w", query, err)
	}

	return results, nil
}
