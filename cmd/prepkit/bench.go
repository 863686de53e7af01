package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"time"

	"github.com/gookit/color"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
	"github.com/sjwhitworth/golearn/knn"
	"github.com/spf13/cobra"

	"github.com/wdm0006/prepkit/adapters/golearn"
	"github.com/wdm0006/prepkit/pkg/engine"
	p "github.com/wdm0006/prepkit/pkg/prep"
)

// genOptions shapes the synthetic dataset used by bench.
type genOptions struct {
	Rows     int
	Floats   int
	Strings  int
	Missing  float64
	Seed     int64
	Classes  int
	Distinct int
}

// generate builds a dataset with float columns f0.., categorical columns
// s0.. and a text class column "y" that depends on f0 so that a model has
// something to learn.
func generate(o genOptions) p.Dataset {
	rnd := rand.New(rand.NewSource(o.Seed))
	if o.Classes < 2 {
		o.Classes = 2
	}
	if o.Distinct < 1 {
		o.Distinct = 1
	}
	ds := make(p.Dataset, o.Rows)
	for i := range ds {
		r := p.NewRecord()
		x := rnd.Float64() * 100
		for c := 0; c < o.Floats; c++ {
			name := fmt.Sprintf("f%d", c)
			if c > 0 && rnd.Float64() < o.Missing {
				r.Set(name, p.Absent())
				continue
			}
			if c == 0 {
				r.Set(name, p.Number(x))
			} else {
				r.Set(name, p.Number(rnd.Float64()*100))
			}
		}
		for c := 0; c < o.Strings; c++ {
			r.Set(fmt.Sprintf("s%d", c), p.Text(fmt.Sprintf("v%d", rnd.Intn(o.Distinct))))
		}
		class := int(x) * o.Classes / 100
		r.Set("y", p.Text(fmt.Sprintf("c%d", class)))
		ds[i] = r
	}
	return ds
}

func benchConfig() engine.ProcessingConfig {
	return engine.ProcessingConfig{
		DuplicateHandling: "remove",
		MissingValues:     "mean",
		Encoding:          []string{"onehot"},
		Scaling:           []string{"standard"},
		TargetColumn:      "y",
	}
}

// evaluate fits a KNN classifier on half of ds and returns its accuracy
// on the other half.
func evaluate(ds p.Dataset, target string) (float64, error) {
	inst, err := golearn.ToDenseInstances(ds, target)
	if err != nil {
		return 0, err
	}
	train, test := base.InstancesTrainTestSplit(inst, 0.5)
	cls := knn.NewKnnClassifier("euclidean", "linear", 3)
	if err := cls.Fit(train); err != nil {
		return 0, err
	}
	pred, err := cls.Predict(test)
	if err != nil {
		return 0, err
	}
	cm, err := evaluation.GetConfusionMatrix(test, pred)
	if err != nil {
		return 0, err
	}
	return evaluation.GetAccuracy(cm), nil
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the engine on synthetic records",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := settings(cmd.Flags())
		if err != nil {
			return err
		}
		o := genOptions{
			Rows:     v.GetInt("rows"),
			Floats:   v.GetInt("float-cols"),
			Strings:  v.GetInt("string-cols"),
			Missing:  v.GetFloat64("missing"),
			Seed:     v.GetInt64("seed"),
			Classes:  v.GetInt("classes"),
			Distinct: v.GetInt("distinct"),
		}
		return bench(cmd.Context(), cmd.OutOrStdout(), o, v.GetBool("json"), v.GetBool("evaluate"))
	},
}

func init() {
	f := benchCmd.Flags()
	f.Int("rows", 50_000, "total rows to generate")
	f.Int("float-cols", 4, "number of float columns")
	f.Int("string-cols", 2, "number of categorical columns")
	f.Int("distinct", 5, "distinct values per categorical column")
	f.Int("classes", 2, "number of target classes")
	f.Float64("missing", 0.05, "probability of a missing value in each float cell")
	f.Int64("seed", 42, "random seed")
	f.Bool("json", false, "emit JSON summary")
	f.Bool("evaluate", false, "fit a KNN classifier on the output and report accuracy")
	rootCmd.AddCommand(benchCmd)
}

func bench(ctx context.Context, out io.Writer, o genOptions, jsonOut, eval bool) error {
	ds := generate(o)

	runtime.GC()
	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	res, err := engine.New(engine.WithLatency(0)).Run(ctx, ds, benchConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	rowsPerSec := float64(o.Rows) / elapsed.Seconds()
	summary := map[string]any{
		"rows":                  o.Rows,
		"rows_out":              len(res.ProcessedData),
		"elapsed_ms":            elapsed.Milliseconds(),
		"rows_per_sec":          rowsPerSec,
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
		"cols":                  map[string]int{"float": o.Floats, "string": o.Strings},
		"missing_prob":          o.Missing,
	}
	if eval {
		acc, err := evaluate(res.ProcessedData, "y")
		if err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}
		summary["knn_accuracy"] = acc
	}

	if jsonOut {
		b, _ := json.MarshalIndent(summary, "", "  ")
		_, err := fmt.Fprintln(out, string(b))
		return err
	}
	fmt.Fprintf(out, "Rows: %d (%d after dedup)\n", o.Rows, len(res.ProcessedData))
	fmt.Fprintf(out, "Elapsed: %s\n", elapsed)
	fmt.Fprintln(out, color.Green.Sprintf("Throughput: %.0f rows/s", rowsPerSec))
	fmt.Fprintf(out, "Total Alloc (delta): %d MB\n", (msAfter.TotalAlloc-msBefore.TotalAlloc)/1024/1024)
	fmt.Fprintf(out, "GC cycles (delta): %d\n", msAfter.NumGC-msBefore.NumGC)
	if acc, ok := summary["knn_accuracy"]; ok {
		fmt.Fprintf(out, "KNN accuracy: %.3f\n", acc)
	}
	return nil
}
