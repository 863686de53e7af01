package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

// DecodeJSON reads an untyped JSON document and validates it as a dataset.
// Shape problems (non-array top level, non-object rows, nested cells) are
// reported together with the column checks of Dataset. Malformed JSON is
// returned as a plain error.
func DecodeJSON(r io.Reader) (p.Dataset, error) {
	var raws []json.RawMessage
	var top json.RawMessage
	if err := json.NewDecoder(r).Decode(&top); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if len(top) == 0 || top[0] != '[' {
		return nil, &p.ValidationError{Reasons: []string{"Data must be an array."}}
	}
	if err := json.Unmarshal(top, &raws); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return FromRaw(raws)
}

// FromRaw converts already split array elements into a validated dataset.
func FromRaw(raws []json.RawMessage) (p.Dataset, error) {
	ds := make(p.Dataset, 0, len(raws))
	var shape []string
	for i, raw := range raws {
		rec, bad, err := decodeRow(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		for _, c := range bad {
			shape = append(shape, fmt.Sprintf("Row %d column %q is not a scalar value.", i+1, c))
		}
		ds = append(ds, rec)
	}
	reasons := check(ds)
	reasons = append(reasons, shape...)
	if len(reasons) > 0 {
		return nil, &p.ValidationError{Reasons: reasons}
	}
	return ds, nil
}

// decodeRow yields the zero Record for anything that is not an object.
// Nested cells are kept as Absent so the column checks still see them.
func decodeRow(raw json.RawMessage) (p.Record, []string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return p.Record{}, nil, nil
	}
	rec := p.NewRecord()
	var bad []string
	err := p.DecodeObject(trimmed, func(col string, cell json.RawMessage) error {
		var v p.Value
		if err := v.UnmarshalJSON(cell); err != nil {
			bad = append(bad, col)
			v = p.Absent()
		}
		rec.Set(col, v)
		return nil
	})
	if err != nil {
		return p.Record{}, nil, err
	}
	return rec, bad, nil
}
