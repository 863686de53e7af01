package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/wdm0006/prepkit/pkg/engine"
	"github.com/wdm0006/prepkit/pkg/io/csvio"
	iox "github.com/wdm0006/prepkit/pkg/io/ioutils"
	"github.com/wdm0006/prepkit/pkg/io/jsonio"
	"github.com/wdm0006/prepkit/pkg/io/parquetio"
	"github.com/wdm0006/prepkit/pkg/logging"
	p "github.com/wdm0006/prepkit/pkg/prep"
)

// Endpoint names a dataset file. Format defaults to the one implied by
// the path's extension.
type Endpoint struct {
	Path      string `json:"path" yaml:"path" toml:"path"`
	Format    string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	NoHeader  bool   `json:"noHeader,omitempty" yaml:"noHeader,omitempty" toml:"noHeader,omitempty"`
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty" toml:"delimiter,omitempty"`
}

// Job describes one run of the run command.
type Job struct {
	Input      Endpoint                `json:"input" yaml:"input" toml:"input"`
	Output     Endpoint                `json:"output" yaml:"output" toml:"output"`
	Report     string                  `json:"report,omitempty" yaml:"report,omitempty" toml:"report,omitempty"`
	Latency    string                  `json:"latency,omitempty" yaml:"latency,omitempty" toml:"latency,omitempty"`
	Processing engine.ProcessingConfig `json:"processing" yaml:"processing" toml:"processing"`
	Logging    *logging.Config         `json:"logging,omitempty" yaml:"logging,omitempty" toml:"logging,omitempty"`
}

// LoadJob reads a JSON, YAML or TOML job file chosen by extension.
func LoadJob(path string) (Job, error) {
	var job Job
	b, err := os.ReadFile(path)
	if err != nil {
		return job, fmt.Errorf("read job: %w", err)
	}
	if err := engine.Decode(b, engine.FormatOf(path), &job); err != nil {
		return job, fmt.Errorf("decode job %s: %w", path, err)
	}
	return job, nil
}

// applySettings overlays flags and PREPKIT_* variables on job. Only values
// that were set win over the job file.
func (job *Job) applySettings(v *viper.Viper) error {
	if s := v.GetString("input"); s != "" {
		job.Input.Path = s
	}
	if s := v.GetString("output"); s != "" {
		job.Output.Path = s
	}
	if s := v.GetString("report"); s != "" {
		job.Report = s
	}
	if s := v.GetString("delimiter"); s != "" {
		job.Input.Delimiter = s
		job.Output.Delimiter = s
	}
	if v.GetBool("no-header") {
		job.Input.NoHeader = true
	}
	if s := v.GetString("latency"); s != "" {
		job.Latency = s
	}
	if s := v.GetString("config"); s != "" {
		cfg, err := engine.LoadConfig(s)
		if err != nil {
			return err
		}
		job.Processing = cfg
	}
	return nil
}

func (job Job) latency() (time.Duration, error) {
	if job.Latency == "" {
		return engine.DefaultLatency, nil
	}
	d, err := time.ParseDuration(job.Latency)
	if err != nil {
		return 0, fmt.Errorf("latency: %w", err)
	}
	return d, nil
}

func (e Endpoint) format() (iox.Format, error) {
	f := iox.Format(e.Format)
	if f == "" {
		f = iox.FormatOf(e.Path)
	}
	switch f {
	case iox.CSV, iox.JSON, iox.JSONL, iox.Parquet:
		return f, nil
	case "":
		return "", fmt.Errorf("cannot tell the format of %q; set format explicitly", e.Path)
	default:
		return "", fmt.Errorf("unsupported format %q", f)
	}
}

func (e Endpoint) delimiter() rune {
	if e.Delimiter == "" {
		return 0
	}
	return []rune(e.Delimiter)[0]
}

func readDataset(e Endpoint) (p.Dataset, error) {
	f, err := e.format()
	if err != nil {
		return nil, err
	}
	switch f {
	case iox.CSV:
		return csvio.ReadFile(e.Path, csvio.ReaderOptions{HasHeader: !e.NoHeader, Delimiter: e.delimiter()})
	case iox.JSONL:
		return jsonio.ReadFile(e.Path, true)
	case iox.Parquet:
		return parquetio.ReadAll(e.Path)
	default:
		return jsonio.ReadFile(e.Path, false)
	}
}

func writeDataset(e Endpoint, ds p.Dataset) error {
	f, err := e.format()
	if err != nil {
		return err
	}
	switch f {
	case iox.CSV:
		return csvio.WriteAll(e.Path, ds, csvio.WriterOptions{Delimiter: e.delimiter()})
	case iox.JSONL:
		return jsonio.WriteAll(e.Path, ds, true)
	case iox.Parquet:
		return parquetio.WriteAll(e.Path, ds)
	default:
		return jsonio.WriteAll(e.Path, ds, false)
	}
}
