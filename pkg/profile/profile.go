package profile

import (
	p "github.com/wdm0006/prepkit/pkg/prep"
)

// QualityReport summarizes the incoming data: row count, schema, missing
// values and the kinds observed in every column. DataTypeCounts buckets
// are number, string, boolean and other; absent cells count as other.
type QualityReport struct {
	TotalRows               int                       `json:"totalRows"`
	Columns                 []string                  `json:"columns"`
	MissingValuesCount      map[string]int            `json:"missingValuesCount"`
	MissingValuesPercentage map[string]float64        `json:"missingValuesPercentage"`
	DataTypeCounts          map[string]map[string]int `json:"dataTypeCounts"`
}

// Collector accumulates a QualityReport over records fed one at a time.
// The schema is fixed by NewCollector.
type Collector struct {
	columns []string
	rows    int
	missing map[string]int
	kinds   map[string]map[string]int
}

func NewCollector(columns []string) *Collector {
	c := &Collector{
		columns: columns,
		missing: make(map[string]int, len(columns)),
		kinds:   make(map[string]map[string]int, len(columns)),
	}
	for _, col := range columns {
		c.missing[col] = 0
		c.kinds[col] = map[string]int{}
	}
	return c
}

func (c *Collector) Consume(r p.Record) {
	c.rows++
	for _, col := range c.columns {
		v := r.Value(col)
		if v.IsAbsent() {
			c.missing[col]++
		}
		c.kinds[col][bucket(v.Kind())]++
	}
}

// bucket names the histogram entry for a kind: number, string, boolean,
// or other for absent cells.
func bucket(k p.Kind) string {
	if k == p.KindAbsent {
		return "other"
	}
	return k.String()
}

func (c *Collector) ConsumeDataset(ds p.Dataset) {
	for _, r := range ds {
		c.Consume(r)
	}
}

func (c *Collector) Report() QualityReport {
	pct := make(map[string]float64, len(c.columns))
	for _, col := range c.columns {
		if c.rows > 0 {
			pct[col] = float64(c.missing[col]) / float64(c.rows) * 100
		} else {
			pct[col] = 0
		}
	}
	cols := make([]string, len(c.columns))
	copy(cols, c.columns)
	return QualityReport{
		TotalRows:               c.rows,
		Columns:                 cols,
		MissingValuesCount:      c.missing,
		MissingValuesPercentage: pct,
		DataTypeCounts:          c.kinds,
	}
}

// Report computes the quality report of ds against the first record's
// columns.
func Report(ds p.Dataset) QualityReport {
	c := NewCollector(ds.Columns())
	c.ConsumeDataset(ds)
	return c.Report()
}
