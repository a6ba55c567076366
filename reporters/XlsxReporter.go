package reporters

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultXlsxReport = "unicode_report.xlsx"
)

// XlsxReporter writes one workbook with a Findings sheet (every finding) and
// a Summary sheet (occurrences per code point).
type XlsxReporter struct {
	OutputPath string
}

func (r XlsxReporter) Report(repository core.FindingRepository) error {
	outputPath := r.OutputPath
	if outputPath == "" {
		outputPath = DefaultXlsxReport
	}

	f := excelize.NewFile()

	const findingsSheet = "Findings"
	if err := f.SetSheetName("Sheet1", findingsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{"Path", "Line", "Codepoint", "Character", "Classification", "RepoName"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(findingsSheet, cell, header); err != nil {
			return err
		}
	}

	codepointCounts := map[string]int{}
	row := 2

	iterator := repository.NewIterator()
	for iterator.HasNext() {
		findingSet, err := iterator.Next()
		if err != nil {
			return fmt.Errorf("failed to retrieve next finding set: %w", err)
		}

		for _, finding := range findingSet.Findings {
			classification := ""
			if val, ok := finding.Properties["classification"]; ok {
				classification, _ = val.(string)
			}
			values := []interface{}{
				finding.Path,
				finding.Line,
				finding.DisplayCodepoint(),
				finding.Character,
				classification,
				finding.RepoName,
			}
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(findingsSheet, cell, value); err != nil {
					return err
				}
			}
			if finding.Codepoint != "" {
				codepointCounts[finding.DisplayCodepoint()]++
			}
			row++
		}
	}

	if err := r.writeSummarySheet(f, codepointCounts); err != nil {
		return err
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Printf("XLSX report generated: %s", outputPath)
	return nil
}

func (r XlsxReporter) writeSummarySheet(f *excelize.File, codepointCounts map[string]int) error {
	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create sheet '%s': %w", summarySheet, err)
	}

	if err := f.SetCellValue(summarySheet, "A1", "Codepoint"); err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheet, "B1", "Occurrences"); err != nil {
		return err
	}

	var codepoints []string
	for codepoint := range codepointCounts {
		codepoints = append(codepoints, codepoint)
	}
	sort.Strings(codepoints)

	for i, codepoint := range codepoints {
		rowIndex := i + 2
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", rowIndex), codepoint); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", rowIndex), codepointCounts[codepoint]); err != nil {
			return err
		}
	}

	return nil
}
