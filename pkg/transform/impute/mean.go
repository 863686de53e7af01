package impute

import (
	"context"

	p "github.com/wdm0006/prepkit/pkg/prep"
	"github.com/wdm0006/prepkit/pkg/stats"
)

// Mean fills missing cells with the column mean.
type Mean struct{}

func (t *Mean) Name() string { return "impute_mean" }

func (t *Mean) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	return fill(ds, stats.Mean), nil
}
