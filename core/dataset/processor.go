package dataset

import (
	"fmt"
	"strconv"

	"sheetgen/core/config"
	"sheetgen/core/scope"
	"sheetgen/core/types"
)

// Processor converts the raw rows of a source into a keyed dataset
// according to an export declaration.
type Processor struct {
	converter *types.Converter
}

// NewProcessor returns a processor converting values against the given
// schema lookup.
func NewProcessor(schemas types.SchemaLookup) *Processor {
	return &Processor{converter: types.NewConverter(schemas)}
}

// fieldPlan is the per-field conversion plan resolved once per source.
type fieldPlan struct {
	name      string
	desc      types.Descriptor
	separator string
}

// Process converts src into a dataset. Columns are projected in sheet
// order; a matching field declaration in the export can override the
// column's type and separator or exclude it by scope, while undeclared
// columns pass through with their sheet-declared type. Rows with no
// surviving fields are discarded, and a duplicate primary key aborts the
// run with a KeyConflictError.
func (p *Processor) Process(src *Source, exp *config.Export, exportScope string) (*Dataset, error) {
	if exportScope == "" {
		exportScope = scope.All
	}

	plans, err := p.plan(src, exp, exportScope)
	if err != nil {
		return nil, err
	}

	ds := NewDataset(exp.PrimaryKey)
	order := make([]string, len(plans))
	for i, plan := range plans {
		order[i] = plan.name
	}
	ds.SetFieldOrder(order)

	for i, row := range src.Rows {
		rowNum := i + 1

		fields := make(map[string]any, len(plans))
		for _, plan := range plans {
			converted, err := p.converter.Convert(plan.name, row[plan.name], plan.desc, plan.separator)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", src.Sheet, rowNum, err)
			}
			fields[plan.name] = converted
		}
		if len(fields) == 0 {
			continue
		}

		key := recordKey(fields, exp.PrimaryKey, ds.Len())
		if ds.Has(key) {
			return nil, &KeyConflictError{Key: key, Row: rowNum, File: src.File}
		}
		ds.Put(key, fields)
	}

	return ds, nil
}

// plan resolves each source column to a concrete descriptor and separator,
// dropping columns whose declaration is excluded by scope.
func (p *Processor) plan(src *Source, exp *config.Export, exportScope string) ([]fieldPlan, error) {
	plans := make([]fieldPlan, 0, len(src.Columns))
	for i := range src.Columns {
		col := &src.Columns[i]

		desc := col.Type
		separator := ""
		if decl := exp.FieldByName(col.Name); decl != nil {
			if !scope.Matches(decl.Scope, exportScope) {
				continue
			}
			if decl.Type != "" {
				parsed, err := types.Parse(decl.Type)
				if err != nil {
					return nil, fmt.Errorf("field %q: %w", col.Name, err)
				}
				desc = parsed
			}
			separator = decl.Separator
		}

		plans = append(plans, fieldPlan{
			name:      col.Name,
			desc:      desc,
			separator: separator,
		})
	}
	return plans, nil
}

// recordKey derives the record key from the converted primary key field,
// falling back to the record's ordinal position when the field is absent.
func recordKey(fields map[string]any, primaryKey string, ordinal int) string {
	if v, ok := fields[primaryKey]; ok && v != nil {
		return keyString(v)
	}
	return strconv.Itoa(ordinal)
}
