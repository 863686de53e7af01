package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"

	parquet "github.com/segmentio/parquet-go"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// ReadAll loads a flat Parquet file. Nested schemas are rejected.
func ReadAll(path string) (p.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("parquet open: %w", err)
	}
	var names []string
	for _, fld := range pf.Schema().Fields() {
		if !fld.Leaf() {
			return nil, fmt.Errorf("parquet column %q is nested", fld.Name())
		}
		names = append(names, fld.Name())
	}

	r := parquet.NewReader(pf)
	defer func() { _ = r.Close() }()
	ds := make(p.Dataset, 0, pf.NumRows())
	buf := make([]parquet.Row, 256)
	for {
		n, err := r.ReadRows(buf)
		for _, row := range buf[:n] {
			rec := p.NewRecord()
			for _, name := range names {
				rec.Set(name, p.Absent())
			}
			for _, v := range row {
				if c := v.Column(); c >= 0 && c < len(names) {
					rec.Set(names[c], value(v))
				}
			}
			ds = append(ds, rec)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parquet read: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return ds, nil
}

func value(v parquet.Value) p.Value {
	if v.IsNull() {
		return p.Absent()
	}
	switch v.Kind() {
	case parquet.Boolean:
		return p.Bool(v.Boolean())
	case parquet.Int32:
		return p.Number(float64(v.Int32()))
	case parquet.Int64:
		return p.Number(float64(v.Int64()))
	case parquet.Float:
		return p.Number(float64(v.Float()))
	case parquet.Double:
		return p.Number(v.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return p.Text(string(v.ByteArray()))
	default:
		return p.Text(v.String())
	}
}
