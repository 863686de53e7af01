package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wdm0006/prepkit/pkg/engine"
	"github.com/wdm0006/prepkit/pkg/logging"
	"github.com/wdm0006/prepkit/pkg/metrics"
	p "github.com/wdm0006/prepkit/pkg/prep"
	"github.com/wdm0006/prepkit/pkg/profile"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process a dataset",
	Long: `Process a dataset as described by a job file and/or flags.

A job file (JSON, YAML or TOML) holds input, output, report, latency and a
processing section. Flags override the matching job entries.`,
	Example: `  prepkit run --job churn.yaml
  prepkit run --input raw.csv.gz --output clean.parquet --config processing.json --report quality.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := settings(cmd.Flags())
		if err != nil {
			return err
		}
		var job Job
		if path := v.GetString("job"); path != "" {
			if job, err = LoadJob(path); err != nil {
				return err
			}
		}
		// a logging section in the job replaces the flag settings
		if job.Logging != nil {
			l, err := logging.New(*job.Logging)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			_ = logger.Sync()
			logger = l
		}
		if err := job.applySettings(v); err != nil {
			return err
		}
		if job.Input.Path == "" {
			return errors.New("no input: use --job or --input")
		}
		if job.Output.Path == "" {
			return errors.New("no output: use --job or --output")
		}
		return runJob(cmd.Context(), cmd.OutOrStdout(), job, v.GetString("pushgateway"))
	},
}

func init() {
	f := runCmd.Flags()
	f.String("job", "", "job file (json, yaml or toml)")
	f.String("input", "", "input dataset (csv, json, jsonl, parquet; .gz allowed)")
	f.String("output", "", "output dataset (csv, json, jsonl, parquet; .gz allowed)")
	f.String("config", "", "processing config file (json, yaml or toml)")
	f.String("report", "", "write the quality report as JSON to this path")
	f.String("latency", "", "pause between validation and processing, e.g. 0s or 2s")
	f.String("delimiter", "", "CSV delimiter (sniffed when empty)")
	f.Bool("no-header", false, "CSV input has no header row")
	f.String("pushgateway", "", "push run metrics to this Prometheus Pushgateway URL")
	rootCmd.AddCommand(runCmd)
}

func runJob(ctx context.Context, out io.Writer, job Job, pushgateway string) error {
	latency, err := job.latency()
	if err != nil {
		return err
	}
	ds, err := readDataset(job.Input)
	if err != nil {
		printReasons(out, err)
		return fmt.Errorf("read %s: %w", job.Input.Path, err)
	}

	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))
	rec, err := metrics.NewRecorder()
	if err != nil {
		return err
	}
	obs := p.Observers{logging.NewObserver(log), rec}

	log.Info("run started", zap.String("input", job.Input.Path), zap.Int("rows", len(ds)))
	res, err := engine.New(engine.WithLatency(latency), engine.WithObserver(obs)).Run(ctx, ds, job.Processing)
	rec.RunFinished(err)
	defer push(log, rec, pushgateway)
	if err != nil {
		printReasons(out, err)
		return err
	}
	res.RunID = runID

	if err := writeDataset(job.Output, res.ProcessedData); err != nil {
		return fmt.Errorf("write %s: %w", job.Output.Path, err)
	}
	if job.Report != "" {
		if err := writeReport(job.Report, res.DataQualityMetrics); err != nil {
			return err
		}
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(out, color.Yellow.Sprint("warning: "+w.String()))
	}
	fmt.Fprintln(out, color.Green.Sprintf("run %s: %d rows in, %d rows out, %d columns -> %s",
		runID, len(ds), len(res.ProcessedData), len(res.ProcessedData.Columns()), job.Output.Path))
	return profile.RenderText(out, res.DataQualityMetrics)
}

// printReasons lists the reasons of a validation failure, one per line.
func printReasons(out io.Writer, err error) {
	var ve *p.ValidationError
	if !errors.As(err, &ve) {
		return
	}
	for _, r := range ve.Reasons {
		fmt.Fprintln(out, color.Red.Sprint("  "+r))
	}
}

func writeReport(path string, r profile.QualityReport) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func push(log *zap.Logger, rec *metrics.Recorder, url string) {
	if url == "" {
		return
	}
	if err := rec.Push(url, "prepkit"); err != nil {
		log.Warn("push metrics failed", zap.Error(err))
	}
}
