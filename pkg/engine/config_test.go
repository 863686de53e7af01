package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonCfg = `{"missingValues":"mean","encoding":["onehot"],"scaling":[],"pca":{"variance":95},
"targetColumn":"churn","duplicateHandling":"remove","outlierDetection":false,"outlierMethod":null,
"featureSelection":false,"selectionMethod":null}`

const yamlCfg = `
missingValues: mean
encoding: [onehot]
pca:
  variance: 95
targetColumn: churn
duplicateHandling: remove
`

const tomlCfg = `
missingValues = "mean"
encoding = ["onehot"]
targetColumn = "churn"
duplicateHandling = "remove"

[pca]
variance = 95.0
`

func TestDecodeConfigFormats(t *testing.T) {
	for name, tc := range map[string]struct {
		src string
		f   Format
	}{
		"json": {jsonCfg, JSON},
		"yaml": {yamlCfg, YAML},
		"toml": {tomlCfg, TOML},
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := DecodeConfig([]byte(tc.src), tc.f)
			require.NoError(t, err)
			assert.Equal(t, "mean", cfg.MissingValues)
			assert.Equal(t, []string{"onehot"}, cfg.Encoding)
			require.NotNil(t, cfg.PCA)
			assert.Equal(t, 95.0, cfg.PCA.Variance)
			assert.Equal(t, "churn", cfg.TargetColumn)
			assert.Equal(t, "remove", cfg.DuplicateHandling)
		})
	}
}

func TestDecodeConfigRejectsUnknownJSONFields(t *testing.T) {
	_, err := DecodeConfig([]byte(`{"scalng":["minmax"]}`), JSON)
	assert.Error(t, err)
}

func TestLoadConfigByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCfg), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "churn", cfg.TargetColumn)

	assert.Equal(t, TOML, FormatOf("x.TOML"))
	assert.Equal(t, JSON, FormatOf("x.conf"))
}
