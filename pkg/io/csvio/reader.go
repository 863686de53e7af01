package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	iox "github.com/wdm0006/prepkit/pkg/io/ioutils"
	p "github.com/wdm0006/prepkit/pkg/prep"
)

type ReaderOptions struct {
	HasHeader bool
	Delimiter rune // 0 = sniff, default ','
	Strict    bool // if true, error on short/long records
}

type Reader struct {
	r   *csv.Reader
	opt ReaderOptions
	// repair counters
	shortRecords int
	longRecords  int
}

// Open opens a CSV file (or stdin for "-"), transparently decompressing
// gzip input. The caller closes the returned Closer.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReaderFrom(rc, opt), rc, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader (stdin, pipe).
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	br := bufio.NewReaderSize(r, 64<<10)
	rr := csv.NewReader(br)
	rr.FieldsPerRecord = -1
	if opt.Delimiter == 0 {
		d, lazy := sniff(br)
		rr.Comma = d
		rr.LazyQuotes = lazy
	} else {
		rr.Comma = opt.Delimiter
	}
	return &Reader{r: rr, opt: opt}
}

// ReadFile is Open followed by ReadAll.
func ReadFile(path string, opt ReaderOptions) (p.Dataset, error) {
	r, c, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()
	return r.ReadAll()
}

// ReadAll loads the whole CSV. Each column gets one kind for all its
// cells: Number when every non-empty cell is numeric, Bool when every
// non-empty cell is true/false, Text otherwise. Empty cells are Absent.
func (r *Reader) ReadAll() (p.Dataset, error) {
	first, err := r.r.Read()
	if err == io.EOF {
		return p.Dataset{}, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	var rows [][]string
	if r.opt.HasHeader {
		names = make([]string, len(first))
		for i := range first {
			names[i] = strings.ToValidUTF8(strings.TrimSpace(first[i]), "?")
		}
		// strip BOM on first header cell if present
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\ufeff")
		}
	} else {
		names = make([]string, len(first))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
		rows = append(rows, first)
	}

	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}

	for n, rec := range rows {
		switch {
		case len(rec) < len(names):
			r.shortRecords++
			if r.opt.Strict {
				return nil, fmt.Errorf("csv short record at row %d: need %d fields, got %d", n+1, len(names), len(rec))
			}
		case len(rec) > len(names):
			r.longRecords++
			if r.opt.Strict {
				return nil, fmt.Errorf("csv long record at row %d: need %d fields, got %d", n+1, len(names), len(rec))
			}
		}
	}

	kinds := inferKinds(rows, len(names))
	ds := make(p.Dataset, 0, len(rows))
	for _, rec := range rows {
		rd := p.NewRecord()
		for i, name := range names {
			var cell string
			if i < len(rec) {
				cell = strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
			}
			rd.Set(name, parse(cell, kinds[i]))
		}
		ds = append(ds, rd)
	}
	return ds, nil
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferKinds(rows [][]string, ncol int) []p.Kind {
	kinds := make([]p.Kind, ncol)
	for c := 0; c < ncol; c++ {
		num, bools, str := 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			switch {
			case v == "":
			case numre.MatchString(v):
				num++
			case isBool(v):
				bools++
			default:
				str++
			}
		}
		switch {
		case str == 0 && bools == 0 && num > 0:
			kinds[c] = p.KindNumber
		case str == 0 && num == 0 && bools > 0:
			kinds[c] = p.KindBool
		default:
			kinds[c] = p.KindText
		}
	}
	return kinds
}

func isBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "true" || lv == "false"
}

func parse(cell string, k p.Kind) p.Value {
	if cell == "" {
		return p.Absent()
	}
	switch k {
	case p.KindNumber:
		if x, err := strconv.ParseFloat(cell, 64); err == nil {
			return p.Number(x)
		}
	case p.KindBool:
		return p.Bool(strings.ToLower(cell) == "true")
	}
	return p.Text(cell)
}

func sniff(br *bufio.Reader) (rune, bool) {
	sample, _ := br.Peek(4096)
	if len(sample) == 0 {
		return ',', false
	}
	// only the first line decides, quoted content aside
	if i := strings.IndexByte(string(sample), '\n'); i > 0 {
		sample = sample[:i]
	}
	candidates := []byte{',', '\t', ';', '|'}
	best := byte(',')
	bestCount := 0
	for _, c := range candidates {
		cnt := 0
		for _, b := range sample {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount = cnt
			best = c
		}
	}
	quotes := strings.Count(string(sample), `"`)
	return rune(best), quotes%2 != 0
}

// Warnings returns a summary string of any repairs/mismatches encountered.
func (r *Reader) Warnings() string {
	if r.shortRecords == 0 && r.longRecords == 0 {
		return ""
	}
	parts := []string{}
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}
