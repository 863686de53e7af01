package validate

import (
	"context"
	"fmt"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// Dataset checks that ds is non-empty and that every record carries
// exactly the columns of the first one. All violations are collected into
// a single *prep.ValidationError.
func Dataset(ds p.Dataset) error {
	reasons := check(ds)
	if len(reasons) == 0 {
		return nil
	}
	return &p.ValidationError{Reasons: reasons}
}

func check(ds p.Dataset) []string {
	if len(ds) == 0 {
		return []string{"Data array is empty."}
	}
	cols := ds[0].Columns()
	if len(cols) == 0 {
		return []string{"Data rows have no columns."}
	}
	var reasons []string
	for i, r := range ds {
		row := i + 1
		if !r.Valid() {
			reasons = append(reasons, fmt.Sprintf("Row %d is not an object.", row))
			continue
		}
		if r.Len() != len(cols) {
			reasons = append(reasons, fmt.Sprintf("Row %d has a different number of columns.", row))
			continue
		}
		for _, c := range cols {
			if !r.Has(c) {
				reasons = append(reasons, fmt.Sprintf("Row %d is missing column %q.", row, c))
			}
		}
	}
	return reasons
}

// Schema is the pipeline form of Dataset.
type Schema struct{}

func (t *Schema) Name() string { return "validate_schema" }

func (t *Schema) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	if err := Dataset(ds); err != nil {
		return nil, err
	}
	return ds, nil
}
