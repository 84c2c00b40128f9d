package format

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"sheetgen/core/dataset"
)

type jsonStyle int

const (
	// styleMap keys records by primary key in one object.
	styleMap jsonStyle = iota
	// styleArray emits records as an array in insertion order.
	styleArray
)

// jsonFormatter renders a dataset as JSON. encoding/json alone would
// scramble field order, so objects are composed by hand and only leaf
// values go through json.Marshal.
type jsonFormatter struct {
	style   jsonStyle
	compact bool
}

func (f *jsonFormatter) Name() string {
	if f.style == styleArray {
		return "json_array"
	}
	return "json_map"
}

func (f *jsonFormatter) Extension() string { return ".json" }

func (f *jsonFormatter) Format(ds *dataset.Dataset, exportName string) ([]byte, error) {
	w := jsonWriter{compact: f.compact}

	if f.style == styleArray {
		w.open("[")
		for i, rec := range ds.Records() {
			w.comma(i)
			w.indent()
			f.writeRecord(&w, ds, rec.Fields)
		}
		w.close("]")
		return w.bytes(), nil
	}

	w.open("{")
	for i, rec := range ds.Records() {
		w.comma(i)
		w.indent()
		w.key(rec.Key)
		f.writeRecord(&w, ds, rec.Fields)
	}
	w.close("}")
	return w.bytes(), nil
}

func (f *jsonFormatter) writeRecord(w *jsonWriter, ds *dataset.Dataset, fields map[string]any) {
	w.open("{")
	for i, name := range recordFields(ds, fields) {
		w.comma(i)
		w.indent()
		w.key(name)
		w.value(fields[name])
	}
	w.close("}")
}

// jsonWriter builds indented or compact JSON with caller-controlled member
// order.
type jsonWriter struct {
	buf     bytes.Buffer
	compact bool
	depth   int
}

func (w *jsonWriter) open(bracket string) {
	w.buf.WriteString(bracket)
	w.depth++
}

func (w *jsonWriter) close(bracket string) {
	w.depth--
	w.newline()
	w.writeIndent()
	w.buf.WriteString(bracket)
}

func (w *jsonWriter) comma(i int) {
	if i > 0 {
		w.buf.WriteString(",")
	}
}

func (w *jsonWriter) indent() {
	w.newline()
	w.writeIndent()
}

func (w *jsonWriter) newline() {
	if !w.compact {
		w.buf.WriteString("\n")
	}
}

func (w *jsonWriter) writeIndent() {
	if w.compact {
		return
	}
	for i := 0; i < w.depth; i++ {
		w.buf.WriteString("    ")
	}
}

func (w *jsonWriter) key(name string) {
	w.writeString(name)
	if w.compact {
		w.buf.WriteString(":")
	} else {
		w.buf.WriteString(": ")
	}
}

func (w *jsonWriter) writeString(s string) {
	encoded, _ := json.Marshal(s)
	w.buf.Write(encoded)
}

func (w *jsonWriter) value(v any) {
	switch val := v.(type) {
	case nil:
		w.buf.WriteString("null")
	case bool:
		w.buf.WriteString(strconv.FormatBool(val))
	case int64:
		w.buf.WriteString(strconv.FormatInt(val, 10))
	case float64:
		encoded, _ := json.Marshal(val)
		w.buf.Write(encoded)
	case string:
		w.writeString(val)
	case []any:
		if len(val) == 0 {
			w.buf.WriteString("[]")
			return
		}
		w.open("[")
		for i, elem := range val {
			w.comma(i)
			w.indent()
			w.value(elem)
		}
		w.close("]")
	case map[string]any:
		if len(val) == 0 {
			w.buf.WriteString("{}")
			return
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		w.open("{")
		for i, k := range keys {
			w.comma(i)
			w.indent()
			w.key(k)
			w.value(val[k])
		}
		w.close("}")
	default:
		encoded, _ := json.Marshal(val)
		w.buf.Write(encoded)
	}
}

func (w *jsonWriter) bytes() []byte {
	if !w.compact {
		w.buf.WriteString("\n")
	}
	return w.buf.Bytes()
}
