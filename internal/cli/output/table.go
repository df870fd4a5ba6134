package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
)

// TimeLayout is used for timestamps in table cells.
const TimeLayout = "2006-01-02 15:04"

// Tabler is implemented by results that choose their own columns.
type Tabler interface {
	Table(wide bool) *Table
}

// TableFormatter writes aligned tables.
type TableFormatter struct {
	Wide      bool
	NoHeaders bool
}

// Format writes data as a table. Tabler values render themselves; maps
// become sorted KEY/VALUE rows; structs become FIELD/VALUE rows. Anything
// else falls back to JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	switch d := data.(type) {
	case *Table:
		return d.RenderWithOptions(w, f.NoHeaders)
	case Table:
		return d.RenderWithOptions(w, f.NoHeaders)
	case Tabler:
		return d.Table(f.Wide).RenderWithOptions(w, f.NoHeaders)
	}

	t, err := toTable(reflect.ValueOf(data))
	if err != nil {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	return t.RenderWithOptions(w, f.NoHeaders)
}

func toTable(v reflect.Value) (*Table, error) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return &Table{}, nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		t := &Table{Headers: []string{"KEY", "VALUE"}}
		iter := v.MapRange()
		for iter.Next() {
			t.AddRow(Cell(iter.Key().Interface()), Cell(iter.Value().Interface()))
		}
		sort.Slice(t.Rows, func(i, j int) bool { return t.Rows[i][0] < t.Rows[j][0] })
		return t, nil

	case reflect.Struct:
		t := &Table{Headers: []string{"FIELD", "VALUE"}}
		typ := v.Type()
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name := jsonName(field)
			if name == "-" {
				continue
			}
			t.AddRow(name, Cell(v.Field(i).Interface()))
		}
		return t, nil

	default:
		return nil, fmt.Errorf("unsupported type: %s", v.Kind())
	}
}

func jsonName(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		if name := strings.Split(tag, ",")[0]; name != "" {
			return name
		}
	}
	return f.Name
}

// Cell formats a value for a table cell. Nil pointers and empty strings
// render as "-".
func Cell(v any) string {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return "-"
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return "-"
	}

	switch x := rv.Interface().(type) {
	case time.Time:
		if x.IsZero() {
			return "-"
		}
		return x.Local().Format(TimeLayout)
	case time.Duration:
		return x.String()
	case fmt.Stringer:
		return x.String()
	}

	switch rv.Kind() {
	case reflect.String:
		if rv.Len() == 0 {
			return "-"
		}
		return rv.String()
	case reflect.Float32, reflect.Float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", rv.Float()), "0"), ".")
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("[%d items]", rv.Len())
	case reflect.Map:
		if rv.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("{%d keys}", rv.Len())
	default:
		return fmt.Sprint(rv.Interface())
	}
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// Table is tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// Render writes the table with headers.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions writes the table, optionally without headers.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
