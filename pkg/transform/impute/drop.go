package impute

import (
	"context"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// DropMissing removes every record holding at least one missing cell.
type DropMissing struct{}

func (t *DropMissing) Name() string { return "drop_missing" }

func (t *DropMissing) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	out := make(p.Dataset, 0, len(ds))
	for _, r := range ds {
		missing := false
		r.Each(func(_ string, v p.Value) {
			if v.IsAbsent() {
				missing = true
			}
		})
		if !missing {
			out = append(out, r)
		}
	}
	return out, nil
}

// Unsupported stands in for policies that are accepted but not
// implemented (ffill, bfill, drop_columns) and for unknown ones. It
// returns the input unchanged and emits a warning.
type Unsupported struct{ Policy string }

func (t *Unsupported) Name() string { return "impute_" + t.Policy }

func (t *Unsupported) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	switch t.Policy {
	case "ffill", "bfill", "drop_columns":
		p.Warn(ctx, p.Unsupported(t.Name(), "missingValues", t.Policy))
	default:
		p.Warn(ctx, p.Unknown(t.Name(), "missingValues", t.Policy))
	}
	return ds, nil
}
