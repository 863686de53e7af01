package prep

import "encoding/json"

// Dataset is an ordered sequence of records sharing one column set.
type Dataset []Record

// Columns returns the first record's columns, which define the schema of
// a validated dataset.
func (d Dataset) Columns() []string {
	if len(d) == 0 {
		return nil
	}
	return d[0].Columns()
}

// Clone deep-copies every record.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for i, r := range d {
		out[i] = r.Clone()
	}
	return out
}

// Equal compares two datasets record by record.
func (d Dataset) Equal(o Dataset) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if !d[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// AllNumber reports whether every record holds a Number in col.
func (d Dataset) AllNumber(col string) bool {
	for _, r := range d {
		if !r.Value(col).IsNumber() {
			return false
		}
	}
	return true
}

// AnyText reports whether at least one record holds a Text value in col.
func (d Dataset) AnyText(col string) bool {
	for _, r := range d {
		if r.Value(col).IsText() {
			return true
		}
	}
	return false
}

// NumericColumns lists the columns, other than exclude, that are numeric
// in every record.
func (d Dataset) NumericColumns(exclude string) []string {
	var out []string
	for _, c := range d.Columns() {
		if c != exclude && d.AllNumber(c) {
			out = append(out, c)
		}
	}
	return out
}

// Numbers collects the Number cells of col in record order, skipping
// everything else.
func (d Dataset) Numbers(col string) []float64 {
	out := make([]float64, 0, len(d))
	for _, r := range d {
		if f, ok := r.Value(col).Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

func (d Dataset) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Record(d))
}
