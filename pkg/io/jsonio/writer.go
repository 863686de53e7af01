package jsonio

import (
	"encoding/json"
	"io"

	iox "github.com/wdm0006/prepkit/pkg/io/ioutils"
	p "github.com/wdm0006/prepkit/pkg/prep"
)

// WriteJSON writes ds as one JSON array. Column order is kept.
func WriteJSON(w io.Writer, ds p.Dataset, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(ds)
}

// WriteJSONL writes one object per line.
func WriteJSONL(w io.Writer, ds p.Dataset) error {
	enc := json.NewEncoder(w)
	for _, r := range ds {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll writes ds to path (stdout for "-", gzip for .gz).
func WriteAll(path string, ds p.Dataset, jsonl bool) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if jsonl {
		err = WriteJSONL(out, ds)
	} else {
		err = WriteJSON(out, ds, true)
	}
	if err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
