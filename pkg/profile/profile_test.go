package profile

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

func sample() p.Dataset {
	return p.Dataset{
		p.RecordOf("age", 25, "city", "NY", "ok", true),
		p.RecordOf("age", nil, "city", "", "ok", false),
		p.RecordOf("age", 35, "city", "東京", "ok", nil),
		p.RecordOf("age", 40, "city", "LA", "ok", true),
	}
}

func TestReport(t *testing.T) {
	r := Report(sample())
	assert.Equal(t, 4, r.TotalRows)
	assert.Equal(t, []string{"age", "city", "ok"}, r.Columns)
	assert.Equal(t, map[string]int{"age": 1, "city": 1, "ok": 1}, r.MissingValuesCount)
	assert.Equal(t, 25.0, r.MissingValuesPercentage["age"])
	assert.Equal(t, map[string]int{"number": 3, "other": 1}, r.DataTypeCounts["age"])
	assert.Equal(t, map[string]int{"string": 3, "other": 1}, r.DataTypeCounts["city"])
	assert.Equal(t, map[string]int{"boolean": 3, "other": 1}, r.DataTypeCounts["ok"])
}

func TestReportJSONKeys(t *testing.T) {
	b, err := json.Marshal(Report(sample()))
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{"totalRows", "columns", "missingValuesCount", "missingValuesPercentage", "dataTypeCounts"} {
		assert.Contains(t, m, k)
	}
}

func TestCollectorMatchesReport(t *testing.T) {
	ds := sample()
	c := NewCollector(ds.Columns())
	for _, r := range ds {
		c.Consume(r)
	}
	assert.Equal(t, Report(ds), c.Report())
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, Report(sample())))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Quality report: 4 rows, 3 columns", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "column"))
	assert.Contains(t, lines[3], "city")
	assert.Contains(t, lines[3], "other=1 string=3")
}
