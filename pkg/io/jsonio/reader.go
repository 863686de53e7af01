package jsonio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	iox "github.com/wdm0006/prepkit/pkg/io/ioutils"
	p "github.com/wdm0006/prepkit/pkg/prep"
	"github.com/wdm0006/prepkit/pkg/transform/validate"
)

// ReadJSON decodes a JSON array of flat objects. Shape problems are
// returned as *prep.ValidationError.
func ReadJSON(r io.Reader) (p.Dataset, error) {
	return validate.DecodeJSON(r)
}

// ReadJSONL decodes one flat object per line; blank lines are skipped.
func ReadJSONL(r io.Reader) (p.Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	var raws []json.RawMessage
	for line := 1; sc.Scan(); line++ {
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		if !json.Valid(b) {
			return nil, fmt.Errorf("jsonl line %d: invalid json", line)
		}
		raws = append(raws, append(json.RawMessage(nil), b...))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return validate.FromRaw(raws)
}

// ReadFile reads path (or stdin for "-") as JSON, or JSONL when jsonl is
// set. Gzip input is decompressed.
func ReadFile(path string, jsonl bool) (p.Dataset, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	if jsonl {
		return ReadJSONL(rc)
	}
	return ReadJSON(rc)
}
