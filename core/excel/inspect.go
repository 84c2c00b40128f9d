package excel

import (
	"fmt"
	"strings"

	"sheetgen/core/dataset"
	"sheetgen/core/types"

	"github.com/xuri/excelize/v2"
)

// Preview reads a sheet like Read but keeps at most limit data rows.
func (r *Reader) Preview(path, sheet string, limit int) (*dataset.Source, error) {
	src, err := r.Read(path, sheet)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(src.Rows) > limit {
		src.Rows = src.Rows[:limit]
	}
	return src, nil
}

// ValidateFormat checks a sheet's header rows without reading its data and
// returns every problem found, so a misdeclared workbook is reported in
// one pass.
func (r *Reader) ValidateFormat(path, sheet string) ([]string, error) {
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
		return []string{fmt.Sprintf("sheet %s: missing header rows", sheet)}, nil
	}

	var problems []string
	names, typeNames := rows[nameRow], rows[typeRow]
	seen := make(map[string]bool)
	named := 0

	for i, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		named++

		if seen[name] {
			problems = append(problems, fmt.Sprintf("sheet %s: duplicate column %q", sheet, name))
		}
		seen[name] = true

		rawType := ""
		if i < len(typeNames) {
			rawType = strings.TrimSpace(typeNames[i])
		}
		if rawType == "" {
			problems = append(problems, fmt.Sprintf("sheet %s: column %q has no type descriptor", sheet, name))
			continue
		}
		if _, err := types.Parse(rawType); err != nil {
			problems = append(problems, fmt.Sprintf("sheet %s: column %q: %v", sheet, name, err))
		}
	}

	if named == 0 {
		problems = append(problems, fmt.Sprintf("sheet %s: no named columns", sheet))
	}
	return problems, nil
}
