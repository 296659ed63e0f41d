// Package loader reads statement exports from disk into grids.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/sift/internal/common"
	"github.com/Veraticus/sift/internal/grid"
	"github.com/Veraticus/sift/internal/ofx"
	"github.com/xuri/excelize/v2"
)

// Sheet is one table-shaped source inside a file.
type Sheet struct {
	Name string
	Grid grid.Grid
}

// Extensions lists the file extensions Load understands.
var Extensions = []string{".csv", ".txt", ".xlsx", ".xlsm", ".ofx", ".qfx"}

// Supported reports whether path has an extension Load understands.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads every sheet in the file at path.
func Load(ctx context.Context, path string) ([]Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}

	file, err := os.Open(path) //nolint:gosec // user-provided input path is intended
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("Failed to close input file", "path", path, "error", closeErr)
		}
	}()

	var sheets []Sheet
	switch ext {
	case ".csv", ".txt":
		var s Sheet
		s, err = ReadCSV(file, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		sheets = []Sheet{s}
	case ".xlsx", ".xlsm":
		sheets, err = ReadXLSX(file)
	case ".ofx", ".qfx":
		sheets, err = ReadOFX(ctx, file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	slog.Debug("Loaded file", "path", path, "sheets", len(sheets))
	return sheets, nil
}

// ReadCSV reads a delimited text export. Rows may have different lengths and
// stray quotes are tolerated, since bank exports are rarely clean.
func ReadCSV(r io.Reader, name string) (Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	// encoding/csv skips blank lines, but blank rows separate tables, so the
	// line each record started on is used to put them back.
	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Sheet{}, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		for len(records) < line-1 {
			records = append(records, nil)
		}
		records = append(records, record)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}

	return Sheet{Name: name, Grid: grid.FromStrings(records)}, nil
}

// ReadXLSX reads every worksheet of a workbook in tab order.
func ReadXLSX(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close workbook", "error", closeErr)
		}
	}()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, rowsErr := f.GetRows(name)
		if rowsErr != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, rowsErr)
		}
		sheets = append(sheets, Sheet{Name: name, Grid: grid.FromStrings(rows)})
	}

	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", common.ErrEmptyInput)
	}
	return sheets, nil
}

// ReadOFX flattens each statement in an OFX/QFX download into its own sheet,
// named after the statement kind and account.
func ReadOFX(ctx context.Context, r io.Reader) ([]Sheet, error) {
	statements, err := ofx.NewParser().Parse(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(statements) == 0 {
		return nil, fmt.Errorf("%w: no statements in OFX file", common.ErrEmptyInput)
	}

	sheets := make([]Sheet, 0, len(statements))
	for _, stmt := range statements {
		sheets = append(sheets, Sheet{
			Name: stmt.Kind + " " + stmt.AccountID,
			Grid: stmt.Grid,
		})
	}
	return sheets, nil
}
