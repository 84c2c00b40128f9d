package validate

import (
	"fmt"

	"sheetgen/core/config"
	"sheetgen/core/dataset"
)

// FieldValidator checks one converted value at a time.
type FieldValidator interface {
	ValidateField(value any) error
}

// RowValidator checks a whole record; it sees every field the record
// carries, not just the one the validator is bound to.
type RowValidator interface {
	ValidateRow(key string, fields map[string]any) error
}

// DatasetValidator checks cross-record properties on its bound field.
type DatasetValidator interface {
	ValidateDataset(ds *dataset.Dataset, field string) []string
}

// Factory builds a validator instance from its configured parameters.
// Instances implement any combination of the validator interfaces; levels
// an instance does not implement are simply not run.
type Factory func(params map[string]any) (any, error)

// Engine resolves configured validators and runs them against datasets.
type Engine struct {
	factories map[string]Factory
}

// NewEngine returns an engine with the built-in validators registered.
func NewEngine() *Engine {
	e := &Engine{factories: make(map[string]Factory)}
	registerBuiltins(e)
	return e
}

// Register adds a validator factory under name, replacing any previous
// registration.
func (e *Engine) Register(name string, f Factory) {
	e.factories[name] = f
}

// Validate runs the export's configured validators against ds and returns
// the problems found. Validators bound to fields absent from the dataset
// (excluded by scope, for one) are skipped. An error means the validator
// configuration itself is broken.
func (e *Engine) Validate(ds *dataset.Dataset, exp *config.Export) ([]string, error) {
	present := make(map[string]bool)
	for _, name := range ds.Fields() {
		present[name] = true
	}

	var problems []string
	for _, decl := range exp.Validators {
		if !present[decl.Field] {
			continue
		}

		factory, ok := e.factories[decl.Name]
		if !ok {
			return nil, fmt.Errorf("unknown validator %q", decl.Name)
		}
		instance, err := factory(decl.Params)
		if err != nil {
			return nil, fmt.Errorf("validator %q on field %q: %w", decl.Name, decl.Field, err)
		}

		problems = append(problems, e.run(ds, decl, instance)...)
	}
	return problems, nil
}

func (e *Engine) run(ds *dataset.Dataset, decl config.Validator, instance any) []string {
	var problems []string

	if fv, ok := instance.(FieldValidator); ok {
		for _, rec := range ds.Records() {
			if err := fv.ValidateField(rec.Fields[decl.Field]); err != nil {
				problems = append(problems, fmt.Sprintf("row %s: field %q: %v", rec.Key, decl.Field, err))
			}
		}
	}

	if rv, ok := instance.(RowValidator); ok {
		for _, rec := range ds.Records() {
			if err := rv.ValidateRow(rec.Key, rec.Fields); err != nil {
				problems = append(problems, fmt.Sprintf("row %s: %v", rec.Key, err))
			}
		}
	}

	if dv, ok := instance.(DatasetValidator); ok {
		problems = append(problems, dv.ValidateDataset(ds, decl.Field)...)
	}

	return problems
}
