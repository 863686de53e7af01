package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// PCAConfig enables dimensionality reduction. Variance is a percentage in
// [0, 100]. Algorithm is "projection" (the default) or "eigen".
type PCAConfig struct {
	Variance  float64 `json:"variance" yaml:"variance" toml:"variance"`
	Algorithm string  `json:"algorithm,omitempty" yaml:"algorithm,omitempty" toml:"algorithm,omitempty"`
}

// ProcessingConfig selects the stages of a run. Empty or false fields skip
// their stage.
type ProcessingConfig struct {
	MissingValues     string     `json:"missingValues" yaml:"missingValues" toml:"missingValues"`
	Encoding          []string   `json:"encoding" yaml:"encoding" toml:"encoding"`
	Scaling           []string   `json:"scaling" yaml:"scaling" toml:"scaling"`
	PCA               *PCAConfig `json:"pca" yaml:"pca" toml:"pca"`
	TargetColumn      string     `json:"targetColumn" yaml:"targetColumn" toml:"targetColumn"`
	DuplicateHandling string     `json:"duplicateHandling" yaml:"duplicateHandling" toml:"duplicateHandling"`
	OutlierDetection  bool       `json:"outlierDetection" yaml:"outlierDetection" toml:"outlierDetection"`
	OutlierMethod     string     `json:"outlierMethod" yaml:"outlierMethod" toml:"outlierMethod"`
	FeatureSelection  bool       `json:"featureSelection" yaml:"featureSelection" toml:"featureSelection"`
	SelectionMethod   string     `json:"selectionMethod" yaml:"selectionMethod" toml:"selectionMethod"`
}

// Format names a config encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf picks the encoding from a file extension; unknown extensions
// are read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	default:
		return JSON
	}
}

// Decode unmarshals b into v using the given format.
func Decode(b []byte, f Format, v any) error {
	switch f {
	case YAML:
		return yaml.Unmarshal(b, v)
	case TOML:
		return toml.Unmarshal(b, v)
	case JSON, "":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	default:
		return fmt.Errorf("unsupported config format %q", f)
	}
}

func DecodeConfig(b []byte, f Format) (ProcessingConfig, error) {
	var cfg ProcessingConfig
	if err := Decode(b, f, &cfg); err != nil {
		return ProcessingConfig{}, fmt.Errorf("decode %s config: %w", f, err)
	}
	return cfg, nil
}

func LoadConfig(path string) (ProcessingConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return ProcessingConfig{}, err
	}
	return DecodeConfig(b, FormatOf(path))
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
