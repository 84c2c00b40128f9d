package excel

import (
	"fmt"
	"strings"

	"sheetgen/core/dataset"
	"sheetgen/core/types"

	"github.com/xuri/excelize/v2"
)

// Workbook sheets use a three-row header: row 1 carries free-form
// descriptions for the sheet's authors, row 2 the field names and row 3
// the type descriptors. Data starts at row 4. An array column may span
// the unnamed columns following it; their cells are joined with "|"
// before conversion.

const (
	nameRow    = 1
	typeRow    = 2
	dataOffset = 3

	spanJoin = "|"
)

// Reader reads workbook sheets into raw sources.
type Reader struct{}

// NewReader returns a workbook reader.
func NewReader() *Reader {
	return &Reader{}
}

// column pairs a parsed column with the header span it occupies.
type column struct {
	dataset.Column
	span int
}

// Read loads one sheet of the workbook at path.
func (r *Reader) Read(path, sheet string) (*dataset.Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s of %s: %w", sheet, path, err)
	}
	if len(rows) <= typeRow {
		return nil, fmt.Errorf("sheet %s of %s: missing header rows", sheet, path)
	}

	columns, err := parseHeader(rows[nameRow], rows[typeRow])
	if err != nil {
		return nil, fmt.Errorf("sheet %s of %s: %w", sheet, path, err)
	}

	src := &dataset.Source{File: path, Sheet: sheet}
	for _, col := range columns {
		src.Columns = append(src.Columns, col.Column)
	}

	for _, cells := range rows[dataOffset:] {
		row := parseRow(cells, columns)
		if len(row) == 0 {
			continue
		}
		src.Rows = append(src.Rows, row)
	}

	return src, nil
}

// SheetNames returns the sheet names of the workbook at path.
func (r *Reader) SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// parseHeader pairs the name row with the type row, resolving array column
// spans. An unnamed column belongs to the nearest preceding array column;
// anywhere else it is ignored.
func parseHeader(names, typeNames []string) ([]column, error) {
	var columns []column
	for i := 0; i < len(names); i++ {
		name := strings.TrimSpace(names[i])
		if name == "" {
			continue
		}

		rawType := ""
		if i < len(typeNames) {
			rawType = strings.TrimSpace(typeNames[i])
		}
		if rawType == "" {
			return nil, fmt.Errorf("column %q: missing type descriptor", name)
		}

		desc, err := types.Parse(rawType)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}

		span := 1
		if desc.Kind == types.KindArray {
			for j := i + 1; j < len(names) && strings.TrimSpace(names[j]) == ""; j++ {
				span++
			}
		}

		columns = append(columns, column{
			Column: dataset.Column{Name: name, RawType: rawType, Type: desc, Index: i},
			span:   span,
		})
	}
	return columns, nil
}

// parseRow extracts the cells a row's columns cover. Empty cells stay
// absent from the returned map so conversion can distinguish absence from
// an empty string.
func parseRow(cells []string, columns []column) dataset.Row {
	row := make(dataset.Row)
	for _, col := range columns {
		value := cellValue(cells, col.Index, col.span)
		if value == "" {
			continue
		}
		row[col.Name] = value
	}
	return row
}

func cellValue(cells []string, index, span int) string {
	if span == 1 {
		if index >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[index])
	}

	var parts []string
	for i := index; i < index+span && i < len(cells); i++ {
		if cell := strings.TrimSpace(cells[i]); cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, spanJoin)
}
