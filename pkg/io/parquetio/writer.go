package parquetio

import (
	"encoding/json"
	"fmt"
	"strings"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// column describes one output field and how its cells are rendered.
type column struct {
	name string
	kind p.Kind
}

// columns returns every column seen in ds with a single storage kind:
// Number or Bool when every present cell has that kind, Text otherwise.
func columns(ds p.Dataset) []column {
	var out []column
	idx := map[string]int{}
	for _, r := range ds {
		r.Each(func(name string, v p.Value) {
			i, ok := idx[name]
			if !ok {
				i = len(out)
				idx[name] = i
				out = append(out, column{name: name, kind: p.KindAbsent})
			}
			switch {
			case v.IsAbsent():
			case out[i].kind == p.KindAbsent:
				out[i].kind = v.Kind()
			case out[i].kind != v.Kind():
				out[i].kind = p.KindText
			}
		})
	}
	return out
}

// checkName rejects column names that the schema tag syntax cannot carry:
// ',' and '=' delimit tag entries and surrounding spaces are trimmed.
func checkName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("parquet write: empty column name")
	case strings.ContainsAny(name, ",="):
		return fmt.Errorf("parquet write: column name %q contains ',' or '='", name)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("parquet write: column name %q has leading or trailing spaces", name)
	}
	return nil
}

func schemaJSON(cols []column) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, c := range cols {
		tag := "name=" + c.name + ", repetitiontype=OPTIONAL, type="
		switch c.kind {
		case p.KindNumber:
			tag += "DOUBLE"
		case p.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "UTF8, encoding=PLAIN_DICTIONARY"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes ds to a Parquet file. Absent cells are stored as nulls.
func WriteAll(path string, ds p.Dataset) error {
	cols := columns(ds)
	if len(cols) == 0 {
		return fmt.Errorf("parquet write: dataset has no columns")
	}
	for _, c := range cols {
		if err := checkName(c.name); err != nil {
			return err
		}
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(schemaJSON(cols), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	for _, r := range ds {
		rec := make(map[string]any, len(cols))
		for _, c := range cols {
			v := r.Value(c.name)
			if v.IsAbsent() {
				continue
			}
			if c.kind == p.KindText {
				rec[c.name] = v.String()
			} else {
				rec[c.name] = v.Any()
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet encode row: %w", err)
		}
		if err := writer.Write(string(b)); err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	if err := writer.WriteStop(); err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet finish: %w", err)
	}
	return fw.Close()
}
