package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/sift/internal/model"
)

// StatementCSV is a bank export with a title line above the table. The table
// occupies A3:C6 with its header on row 3.
const StatementCSV = `Acme Bank statement

Date,Description,Amount
2024-01-02,Coffee,-4.50
2024-01-03,Rent,"-1,200.00"
2024-01-04,Payroll,$1500.00
`

// SampleIngestion returns a history record for a four-column statement.
func SampleIngestion(source string) *model.Ingestion {
	return &model.Ingestion{
		Source:       source,
		Sheet:        "Sheet1",
		IslandRegion: "A3:E20",
		Region:       "A3:D20",
		HeaderRegion: "A3:D20",
		HeaderRow:    0,
		RowCount:     17,
		Columns: []model.IngestedColumn{
			{Position: 0, Name: "Date", Type: "date", Region: "A4:A20", MappedField: "date"},
			{Position: 1, Name: "Description", Type: "string", Region: "B4:B20", MappedField: "description"},
			{Position: 2, Name: "Amount", Type: "number", Region: "C4:C20", MappedField: "amount"},
			{Position: 3, Name: "Category", Type: "string", Region: "D4:D20"},
		},
	}
}

// WriteFile writes content to name inside dir and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
