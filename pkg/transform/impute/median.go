package impute

import (
	"context"

	p "github.com/wdm0006/prepkit/pkg/prep"
	"github.com/wdm0006/prepkit/pkg/stats"
)

type Median struct{}

func (t *Median) Name() string { return "impute_median" }

func (t *Median) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	return fill(ds, stats.Median), nil
}
