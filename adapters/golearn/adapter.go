// Package golearn converts processed datasets to and from
// github.com/sjwhitworth/golearn/base DenseInstances.
package golearn

import (
	"fmt"

	"github.com/sjwhitworth/golearn/base"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// ToDenseInstances converts ds into golearn DenseInstances. Columns that
// hold a Number in every record become float attributes; everything else
// is categorical. A target present in ds is moved last and becomes the
// categorical class attribute.
func ToDenseInstances(ds p.Dataset, target string) (*base.DenseInstances, error) {
	if len(ds) == 0 {
		return nil, fmt.Errorf("golearn: empty dataset")
	}
	var cols []string
	hasTarget := false
	for _, c := range ds.Columns() {
		if c == target {
			hasTarget = true
			continue
		}
		cols = append(cols, c)
	}
	if hasTarget {
		cols = append(cols, target)
	}

	attrs := make([]base.Attribute, len(cols))
	for i, c := range cols {
		if c != target && ds.AllNumber(c) {
			attrs[i] = base.NewFloatAttribute(c)
			continue
		}
		ca := base.NewCategoricalAttribute()
		ca.SetName(c)
		attrs[i] = ca
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(len(ds)); err != nil {
		return nil, err
	}

	for r, rec := range ds {
		for i, c := range cols {
			v := rec.Value(c)
			switch a := attrs[i].(type) {
			case *base.FloatAttribute:
				f, _ := v.Float()
				inst.Set(specs[i], r, base.PackFloatToBytes(f))
			case *base.CategoricalAttribute:
				inst.Set(specs[i], r, a.GetSysValFromString(v.String()))
			}
		}
	}
	if hasTarget {
		if err := inst.AddClassAttribute(attrs[len(attrs)-1]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FromDenseInstances converts golearn DenseInstances into a dataset. Float
// attributes become Number cells and categorical ones Text cells.
func FromDenseInstances(inst *base.DenseInstances) (p.Dataset, error) {
	attrs := inst.AllAttributes()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	_, nrows := inst.Size()
	ds := make(p.Dataset, nrows)
	for r := 0; r < nrows; r++ {
		rec := p.NewRecord()
		for i, a := range attrs {
			raw := inst.Get(specs[i], r)
			if _, ok := a.(*base.FloatAttribute); ok {
				rec.Set(a.GetName(), p.Number(base.UnpackBytesToFloat(raw)))
			} else {
				rec.Set(a.GetName(), p.Text(a.GetStringFromSysVal(raw)))
			}
		}
		ds[r] = rec
	}
	return ds, nil
}
