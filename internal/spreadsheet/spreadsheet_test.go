package spreadsheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/helpdesk/internal/knowledge"
)

func TestExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.xlsx")
	records := []knowledge.Record{
		{Question: "How can I pay?", Answer: "Card or cash."},
		{Question: "How can I pay?", Answer: "duplicate kept"},
		{Question: "Do you deliver?", Answer: "Yes, daily."},
	}

	require.NoError(t, Export(path, records))

	got, err := Import(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestExport_HeaderRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.xlsx")
	require.NoError(t, Export(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"question", "answer"}}, rows)
}

func TestImport_WithoutHeaderAndSparseRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Do you ship abroad?"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "No."))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "orphan answer"))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "Question without answer"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := Import(path)
	require.NoError(t, err)
	assert.Equal(t, []knowledge.Record{
		{Question: "Do you ship abroad?", Answer: "No."},
		{Question: "Question without answer", Answer: ""},
	}, got)
}

func TestImport_MissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestIsHeader(t *testing.T) {
	assert.True(t, isHeader([]string{"Question", " ANSWER "}))
	assert.False(t, isHeader([]string{"question"}))
	assert.False(t, isHeader([]string{"How?", "answer"}))
}
