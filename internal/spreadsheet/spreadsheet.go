// Package spreadsheet moves question/answer pairs between the knowledge base
// and .xlsx workbooks.
package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/helpdesk/internal/knowledge"
)

// SheetName is the sheet Export writes to.
const SheetName = "Knowledge Base"

var header = []any{"question", "answer"}

// Export writes records to a new workbook at path, one row per record under
// a question/answer header row.
func Export(path string, records []knowledge.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.Question, r.Answer}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", "B1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", "B", 60); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// Import reads question/answer pairs from the first sheet of the workbook
// at path. Column A is the question and column B the answer. A leading
// question/answer header row is skipped, as are rows without a question.
// Cell text is kept as-is.
func Import(path string) ([]knowledge.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: sheet %q: %w", path, sheets[0], err)
	}

	var records []knowledge.Record
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		r := knowledge.Record{Question: row[0]}
		if len(row) > 1 {
			r.Answer = row[1]
		}
		records = append(records, r)
	}
	return records, nil
}

func isHeader(row []string) bool {
	return len(row) >= 2 &&
		strings.EqualFold(strings.TrimSpace(row[0]), "question") &&
		strings.EqualFold(strings.TrimSpace(row[1]), "answer")
}
