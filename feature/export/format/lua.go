package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sheetgen/core/dataset"
)

// luaFormatter renders a dataset as a Lua module returning one table keyed
// by primary key.
type luaFormatter struct {
	compact bool
}

func (f *luaFormatter) Name() string      { return "lua" }
func (f *luaFormatter) Extension() string { return ".lua" }

func (f *luaFormatter) Format(ds *dataset.Dataset, exportName string) ([]byte, error) {
	var b strings.Builder

	if !f.compact {
		fmt.Fprintf(&b, "-- %s\n-- generated file, do not edit\n", exportName)
	}
	b.WriteString("return {")
	f.newline(&b)

	for _, rec := range ds.Records() {
		f.indent(&b, 1)
		b.WriteString("[")
		f.writeKey(&b, rec.Key)
		b.WriteString("] = ")
		f.writeTable(&b, ds, rec.Fields, 1)
		b.WriteString(",")
		f.newline(&b)
	}

	b.WriteString("}")
	if !f.compact {
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// writeKey emits numeric record keys as numbers so Lua lookups by ID work
// without string conversion.
func (f *luaFormatter) writeKey(b *strings.Builder, key string) {
	if _, err := strconv.ParseInt(key, 10, 64); err == nil {
		b.WriteString(key)
		return
	}
	b.WriteString(luaQuote(key))
}

func (f *luaFormatter) writeTable(b *strings.Builder, ds *dataset.Dataset, fields map[string]any, depth int) {
	b.WriteString("{")
	f.newline(b)
	for _, name := range recordFields(ds, fields) {
		f.indent(b, depth+1)
		f.writeField(b, name)
		b.WriteString(" = ")
		f.writeValue(b, fields[name], depth+1)
		b.WriteString(",")
		f.newline(b)
	}
	f.indent(b, depth)
	b.WriteString("}")
}

func (f *luaFormatter) writeValue(b *strings.Builder, v any, depth int) {
	switch val := v.(type) {
	case nil:
		b.WriteString("nil")
	case bool:
		b.WriteString(strconv.FormatBool(val))
	case int64:
		b.WriteString(strconv.FormatInt(val, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case string:
		b.WriteString(luaQuote(val))
	case []any:
		b.WriteString("{")
		f.newline(b)
		for _, elem := range val {
			f.indent(b, depth+1)
			f.writeValue(b, elem, depth+1)
			b.WriteString(",")
			f.newline(b)
		}
		f.indent(b, depth)
		b.WriteString("}")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("{")
		f.newline(b)
		for _, k := range keys {
			f.indent(b, depth+1)
			f.writeField(b, k)
			b.WriteString(" = ")
			f.writeValue(b, val[k], depth+1)
			b.WriteString(",")
			f.newline(b)
		}
		f.indent(b, depth)
		b.WriteString("}")
	default:
		b.WriteString(luaQuote(fmt.Sprint(val)))
	}
}

// writeField emits a table field, using identifier syntax when the name
// allows it.
func (f *luaFormatter) writeField(b *strings.Builder, name string) {
	if luaIdentifier(name) {
		b.WriteString(name)
		return
	}
	b.WriteString("[")
	b.WriteString(luaQuote(name))
	b.WriteString("]")
}

func (f *luaFormatter) newline(b *strings.Builder) {
	if !f.compact {
		b.WriteString("\n")
	}
}

func (f *luaFormatter) indent(b *strings.Builder, depth int) {
	if !f.compact {
		b.WriteString(strings.Repeat("    ", depth))
	}
}

var luaReserved = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

func luaIdentifier(s string) bool {
	if s == "" || luaReserved[s] {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

var luaEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"\"", "\\\"",
	"\n", "\\n",
	"\r", "\\r",
	"\t", "\\t",
)

func luaQuote(s string) string {
	return "\"" + luaEscaper.Replace(s) + "\""
}
