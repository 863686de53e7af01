// Package encode turns categorical columns into numbers. A column is
// categorical when it is not the target and holds at least one Text value.
package encode

import (
	"context"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// categorical lists the candidate columns in schema order.
func categorical(ds p.Dataset, target string) []string {
	var out []string
	for _, c := range ds.Columns() {
		if c != target && ds.AnyText(c) {
			out = append(out, c)
		}
	}
	return out
}

// levels holds the distinct values of a column in first-seen order.
type levels struct {
	values []p.Value
	index  map[string]int
}

// key identifies a value up to Value.Equal: kind plus rendering, with
// -0 folded into 0.
func key(v p.Value) string {
	if f, ok := v.Float(); ok && f == 0 {
		v = p.Number(0)
	}
	return v.Kind().String() + ":" + v.String()
}

func distinct(ds p.Dataset, col string) levels {
	lv := levels{index: map[string]int{}}
	for _, r := range ds {
		v := r.Value(col)
		k := key(v)
		if _, ok := lv.index[k]; !ok {
			lv.index[k] = len(lv.values)
			lv.values = append(lv.values, v)
		}
	}
	return lv
}

// code returns the first-seen position of v.
func (lv levels) code(v p.Value) int {
	return lv.index[key(v)]
}

// OneHot replaces each categorical column with one 0/1 indicator column
// per distinct value, named "{column}_{value}" and appended at the end.
type OneHot struct{ Target string }

func (t *OneHot) Name() string { return "encode_onehot" }

func (t *OneHot) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	cols := categorical(ds, t.Target)
	if len(cols) == 0 {
		return ds, nil
	}
	byCol := make(map[string]levels, len(cols))
	for _, c := range cols {
		byCol[c] = distinct(ds, c)
	}
	out := make(p.Dataset, len(ds))
	for i, r := range ds {
		nr := r.Clone()
		for _, c := range cols {
			lv := byCol[c]
			hit := lv.code(r.Value(c))
			for k, lvl := range lv.values {
				flag := 0.0
				if k == hit {
					flag = 1
				}
				nr.Set(c+"_"+lvl.String(), p.Number(flag))
			}
			nr.Delete(c)
		}
		out[i] = nr
	}
	return out, nil
}

// Label replaces each categorical value with its first-seen index.
type Label struct{ Target string }

func (t *Label) Name() string { return "encode_label" }

func (t *Label) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	cols := categorical(ds, t.Target)
	if len(cols) == 0 {
		return ds, nil
	}
	byCol := make(map[string]levels, len(cols))
	for _, c := range cols {
		byCol[c] = distinct(ds, c)
	}
	out := make(p.Dataset, len(ds))
	for i, r := range ds {
		nr := r.Clone()
		for _, c := range cols {
			nr.Set(c, p.Number(float64(byCol[c].code(r.Value(c)))))
		}
		out[i] = nr
	}
	return out, nil
}
