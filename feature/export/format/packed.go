package format

import (
	"sheetgen/core/dataset"
)

// packedFormatter renders a dataset in columnar form: field names once,
// record values as rows. Large exports shrink considerably compared to the
// map form because field names are not repeated per record.
type packedFormatter struct {
	compact bool
}

func (f *packedFormatter) Name() string      { return "json_packed" }
func (f *packedFormatter) Extension() string { return ".json" }

func (f *packedFormatter) Format(ds *dataset.Dataset, exportName string) ([]byte, error) {
	w := jsonWriter{compact: f.compact}
	records := ds.Records()
	fieldOrder := ds.Fields()

	w.open("{")

	w.indent()
	w.key("primary_key")
	w.value(ds.PrimaryKey)

	w.buf.WriteString(",")
	w.indent()
	w.key("fields")
	fields := make([]any, len(fieldOrder))
	for i, name := range fieldOrder {
		fields[i] = name
	}
	w.value(fields)

	w.buf.WriteString(",")
	w.indent()
	w.key("keys")
	keys := make([]any, len(records))
	for i, rec := range records {
		keys[i] = rec.Key
	}
	w.value(keys)

	w.buf.WriteString(",")
	w.indent()
	w.key("rows")
	if len(records) == 0 {
		w.buf.WriteString("[]")
	} else {
		w.open("[")
		for i, rec := range records {
			w.comma(i)
			w.indent()
			row := make([]any, len(fieldOrder))
			for j, name := range fieldOrder {
				row[j] = rec.Fields[name]
			}
			w.value(row)
		}
		w.close("]")
	}

	w.close("}")
	return w.bytes(), nil
}
