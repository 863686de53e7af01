package jsonio

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

func TestReadJSONL(t *testing.T) {
	src := "{\"a\":1,\"b\":\"x\"}\n\n{\"a\":null,\"b\":\"y\"}\n"
	ds, err := ReadJSONL(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.True(t, ds[1].Value("a").IsAbsent())
}

func TestReadJSONLValidation(t *testing.T) {
	_, err := ReadJSONL(strings.NewReader("{\"a\":1}\n{\"b\":2}\n"))
	var ve *p.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{`Row 2 is missing column "a".`}, ve.Reasons)

	_, err = ReadJSONL(strings.NewReader("{\"a\":\n"))
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	in := p.Dataset{p.RecordOf("z", 1, "a", "x", "m", true), p.RecordOf("z", 2.5, "a", nil, "m", false)}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, in, false))
	assert.Equal(t, `[{"z":1,"a":"x","m":true},{"z":2.5,"a":null,"m":false}]`+"\n", buf.String())

	out, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.True(t, out.Equal(in))
	assert.Equal(t, []string{"z", "a", "m"}, out.Columns())
}

func TestWriteAllJSONLGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl.gz")
	in := p.Dataset{p.RecordOf("a", 1), p.RecordOf("a", 2)}
	require.NoError(t, WriteAll(path, in, true))
	out, err := ReadFile(path, true)
	require.NoError(t, err)
	assert.True(t, out.Equal(in))
}
