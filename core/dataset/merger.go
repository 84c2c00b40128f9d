package dataset

import (
	"fmt"

	"sheetgen/core/config"
)

// MergeStats summarizes the result of merging the sources of a
// multi-source export.
type MergeStats struct {
	Sources     int
	Rows        int
	Columns     int
	ColumnNames []string
}

// CheckCompatibility compares every source against the first one and
// returns a SchemaMismatchError listing missing columns, extra columns and
// type disagreements, or nil when the sources agree.
func CheckCompatibility(sources []*Source) *SchemaMismatchError {
	problems := comparePairs(sources, nil)
	if len(problems) == 0 {
		return nil
	}
	return &SchemaMismatchError{Problems: problems}
}

// AdvisoryProblems compares sources like CheckCompatibility but suppresses
// type disagreements on columns the export overrides the type of, since
// the override makes the sheet-declared types irrelevant. The returned
// problems are warnings, not errors.
func AdvisoryProblems(sources []*Source, exp *config.Export) []string {
	overridden := make(map[string]bool)
	for _, field := range exp.Fields {
		if field.Type != "" {
			overridden[field.Name] = true
		}
	}
	return comparePairs(sources, overridden)
}

func comparePairs(sources []*Source, overridden map[string]bool) []string {
	if len(sources) < 2 {
		return nil
	}

	baseline := sources[0]
	baseTypes := make(map[string]string, len(baseline.Columns))
	for _, col := range baseline.Columns {
		baseTypes[col.Name] = col.RawType
	}

	var problems []string
	for _, other := range sources[1:] {
		otherNames := make(map[string]bool, len(other.Columns))
		for _, col := range other.Columns {
			otherNames[col.Name] = true

			baseType, ok := baseTypes[col.Name]
			if !ok {
				problems = append(problems, fmt.Sprintf(
					"%s/%s: extra column %q", other.File, other.Sheet, col.Name))
				continue
			}
			if baseType != col.RawType && !overridden[col.Name] {
				problems = append(problems, fmt.Sprintf(
					"%s/%s: column %q declared %s, baseline %s/%s declares %s",
					other.File, other.Sheet, col.Name, col.RawType,
					baseline.File, baseline.Sheet, baseType))
			}
		}
		for _, col := range baseline.Columns {
			if !otherNames[col.Name] {
				problems = append(problems, fmt.Sprintf(
					"%s/%s: missing column %q", other.File, other.Sheet, col.Name))
			}
		}
	}
	return problems
}

// Merge concatenates the rows of the given sources into one virtual source
// carrying the first source's columns. Sources are scanned in declaration
// order; a primary key appearing twice aborts the merge with a
// KeyConflictError naming the offending source and row.
func Merge(sources []*Source, primaryKey string) (*Source, *MergeStats, error) {
	if len(sources) == 0 {
		return nil, nil, fmt.Errorf("no sources to merge")
	}
	if len(sources) == 1 {
		src := sources[0]
		return src, statsFor(src, 1), nil
	}

	seen := make(map[string]bool)
	merged := &Source{
		File:    "merged",
		Sheet:   "merged",
		Columns: sources[0].Columns,
	}

	for _, src := range sources {
		for i, row := range src.Rows {
			if raw, ok := row[primaryKey]; ok && raw != nil {
				key := keyString(raw)
				if seen[key] {
					return nil, nil, &KeyConflictError{Key: key, Row: i + 1, File: src.File}
				}
				seen[key] = true
			}
			merged.Rows = append(merged.Rows, row)
		}
	}

	return merged, statsFor(merged, len(sources)), nil
}

func statsFor(src *Source, sourceCount int) *MergeStats {
	return &MergeStats{
		Sources:     sourceCount,
		Rows:        len(src.Rows),
		Columns:     len(src.Columns),
		ColumnNames: src.ColumnNames(),
	}
}
