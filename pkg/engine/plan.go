package engine

import (
	"context"

	p "github.com/wdm0006/prepkit/pkg/prep"
	"github.com/wdm0006/prepkit/pkg/transform/dedup"
	"github.com/wdm0006/prepkit/pkg/transform/encode"
	"github.com/wdm0006/prepkit/pkg/transform/impute"
	"github.com/wdm0006/prepkit/pkg/transform/outliers"
	"github.com/wdm0006/prepkit/pkg/transform/reduce"
	"github.com/wdm0006/prepkit/pkg/transform/scale"
	"github.com/wdm0006/prepkit/pkg/transform/selection"
)

// Plan builds the stages that follow validation for cfg, in their fixed
// order: deduplicate, impute, outliers, encode, scale, reduce, select.
func Plan(cfg ProcessingConfig) *p.Pipeline {
	pl := p.NewPipeline()

	if cfg.DuplicateHandling != "" {
		pl.Add(&dedup.Resolver{Policy: dedup.Policy(cfg.DuplicateHandling)})
	}

	switch cfg.MissingValues {
	case "":
	case "mean":
		pl.Add(&impute.Mean{})
	case "median":
		pl.Add(&impute.Median{})
	case "drop":
		pl.Add(&impute.DropMissing{})
	default:
		pl.Add(&impute.Unsupported{Policy: cfg.MissingValues})
	}

	if cfg.OutlierDetection && cfg.OutlierMethod != "" {
		pl.Add(&outliers.Detector{Method: cfg.OutlierMethod})
	}

	if contains(cfg.Encoding, "onehot") {
		pl.Add(&encode.OneHot{Target: cfg.TargetColumn})
	}
	if contains(cfg.Encoding, "label") {
		pl.Add(&encode.Label{Target: cfg.TargetColumn})
	}
	for _, e := range cfg.Encoding {
		if e != "onehot" && e != "label" {
			pl.Add(&unknownOption{stage: "encode", option: "encoding", value: e})
		}
	}

	if contains(cfg.Scaling, "standard") {
		pl.Add(&scale.Standard{Target: cfg.TargetColumn})
	}
	if contains(cfg.Scaling, "minmax") {
		pl.Add(&scale.MinMax{Target: cfg.TargetColumn})
	}
	for _, s := range cfg.Scaling {
		if s != "standard" && s != "minmax" {
			pl.Add(&unknownOption{stage: "scale", option: "scaling", value: s})
		}
	}

	if cfg.PCA != nil {
		switch cfg.PCA.Algorithm {
		case "", "projection":
			pl.Add(&reduce.Projection{Target: cfg.TargetColumn, Variance: cfg.PCA.Variance})
		case "eigen":
			pl.Add(&reduce.Eigen{Target: cfg.TargetColumn, Variance: cfg.PCA.Variance})
		default:
			pl.Add(&unknownOption{stage: "reduce", option: "pca.algorithm", value: cfg.PCA.Algorithm})
			pl.Add(&reduce.Projection{Target: cfg.TargetColumn, Variance: cfg.PCA.Variance})
		}
	}

	if cfg.FeatureSelection && cfg.SelectionMethod != "" {
		if cfg.SelectionMethod == "variance" {
			pl.Add(&selection.Variance{Target: cfg.TargetColumn, Threshold: selection.DefaultThreshold})
		} else {
			pl.Add(&selection.Unsupported{Method: cfg.SelectionMethod})
		}
	}
	return pl
}

// unknownOption reports an unrecognized list entry and passes data through.
type unknownOption struct {
	stage, option, value string
}

func (t *unknownOption) Name() string { return t.stage + "_" + t.value }

func (t *unknownOption) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	p.Warn(ctx, p.Unknown(t.stage, t.option, t.value))
	return ds, nil
}
