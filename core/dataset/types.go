package dataset

import (
	"fmt"
	"sort"
	"strconv"

	"sheetgen/core/types"
)

// Column describes one column of a source sheet: its header name, the type
// declared in the sheet header (raw and parsed), and its position.
type Column struct {
	Name    string
	RawType string
	Type    types.Descriptor
	Index   int
}

// Row holds the raw cell values of one sheet row, keyed by column name.
// Cells that were empty in the sheet are absent from the map.
type Row map[string]any

// Source is the raw content of one sheet, before any conversion.
type Source struct {
	File    string
	Sheet   string
	Columns []Column
	Rows    []Row
}

// Column returns the column with the given name, or nil.
func (s *Source) Column(name string) *Column {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i]
		}
	}
	return nil
}

// ColumnNames returns the column names in sheet order.
func (s *Source) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Record is one converted entry of a dataset.
type Record struct {
	Key    string
	Fields map[string]any
}

// Dataset is the converted output of one export: records keyed by primary
// key, preserving insertion order for deterministic serialization.
type Dataset struct {
	// PrimaryKey is the field the records are keyed by.
	PrimaryKey string

	fieldOrder []string
	keys       []string
	records    map[string]map[string]any
}

// NewDataset returns an empty dataset keyed by primaryKey.
func NewDataset(primaryKey string) *Dataset {
	return &Dataset{
		PrimaryKey: primaryKey,
		records:    make(map[string]map[string]any),
	}
}

// SetFieldOrder fixes the serialization order of field names.
func (d *Dataset) SetFieldOrder(names []string) {
	d.fieldOrder = names
}

// Fields returns the serialization order of field names: the explicitly
// set order when there is one, otherwise the sorted union of all record
// fields.
func (d *Dataset) Fields() []string {
	if d.fieldOrder != nil {
		out := make([]string, len(d.fieldOrder))
		copy(out, d.fieldOrder)
		return out
	}

	seen := make(map[string]bool)
	var names []string
	for _, key := range d.keys {
		for name := range d.records[key] {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Has reports whether a record with the given key exists.
func (d *Dataset) Has(key string) bool {
	_, ok := d.records[key]
	return ok
}

// Put stores a record under key. An existing record with the same key is
// replaced without changing its position.
func (d *Dataset) Put(key string, fields map[string]any) {
	if !d.Has(key) {
		d.keys = append(d.keys, key)
	}
	d.records[key] = fields
}

// Get returns the record stored under key.
func (d *Dataset) Get(key string) (map[string]any, bool) {
	r, ok := d.records[key]
	return r, ok
}

// Keys returns the record keys in insertion order.
func (d *Dataset) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.keys)
}

// Records returns all records in insertion order.
func (d *Dataset) Records() []Record {
	out := make([]Record, 0, len(d.keys))
	for _, key := range d.keys {
		out = append(out, Record{Key: key, Fields: d.records[key]})
	}
	return out
}

// keyString renders a converted primary key value as a record key.
func keyString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
