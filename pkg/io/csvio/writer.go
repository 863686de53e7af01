package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	iox "github.com/wdm0006/prepkit/pkg/io/ioutils"
	p "github.com/wdm0006/prepkit/pkg/prep"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a dataset to a CSV file (gzip when the path ends in .gz).
func WriteAll(path string, ds p.Dataset, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, ds, opt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write emits a header with every column seen, in first-seen order, then
// one line per record. Absent cells are empty.
func Write(w io.Writer, ds p.Dataset, opt WriterOptions) error {
	cw := csv.NewWriter(w)
	if opt.Delimiter != 0 {
		cw.Comma = opt.Delimiter
	}
	hdr := header(ds)
	if err := cw.Write(hdr); err != nil {
		return err
	}
	row := make([]string, len(hdr))
	for _, r := range ds {
		for i, c := range hdr {
			row[i] = cell(r.Value(c))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func header(ds p.Dataset) []string {
	var hdr []string
	seen := map[string]bool{}
	for _, r := range ds {
		for _, c := range r.Columns() {
			if !seen[c] {
				seen[c] = true
				hdr = append(hdr, c)
			}
		}
	}
	return hdr
}

func cell(v p.Value) string {
	switch v.Kind() {
	case p.KindNumber:
		f, _ := v.Float()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case p.KindAbsent:
		return ""
	default:
		return v.String()
	}
}
