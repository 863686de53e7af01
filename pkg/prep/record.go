package prep

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
)

// Record is one row: an ordered mapping from column name to Value.
// The zero Record holds no mapping at all and stands for a row that is
// not an object; use NewRecord for an empty row.
type Record struct {
	m *orderedmap.OrderedMap[string, Value]
}

func NewRecord() Record {
	return Record{m: orderedmap.NewOrderedMap[string, Value]()}
}

// RecordOf builds a record from alternating column/value arguments, e.g.
// RecordOf("age", 25, "city", "NY"). It panics on malformed input.
func RecordOf(kv ...any) Record {
	if len(kv)%2 != 0 {
		panic("prep.RecordOf: odd number of arguments")
	}
	r := NewRecord()
	for i := 0; i < len(kv); i += 2 {
		col, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("prep.RecordOf: column at %d is %T, want string", i, kv[i]))
		}
		v, ok := FromAny(kv[i+1])
		if !ok {
			panic(fmt.Sprintf("prep.RecordOf: column %s has non-scalar %T", col, kv[i+1]))
		}
		r.Set(col, v)
	}
	return r
}

// Valid reports whether the record is an object (possibly empty).
func (r Record) Valid() bool { return r.m != nil }

func (r Record) Len() int {
	if r.m == nil {
		return 0
	}
	return r.m.Len()
}

// Columns returns column names in insertion order.
func (r Record) Columns() []string {
	if r.m == nil {
		return nil
	}
	return r.m.Keys()
}

func (r Record) Get(col string) (Value, bool) {
	if r.m == nil {
		return Value{}, false
	}
	return r.m.Get(col)
}

// Value returns the cell for col, or Absent when the column is missing.
func (r Record) Value(col string) Value {
	v, _ := r.Get(col)
	return v
}

func (r Record) Has(col string) bool {
	_, ok := r.Get(col)
	return ok
}

// Set writes a cell. Existing columns keep their position; new ones are
// appended. Set mutates the record, so transforms call it on clones only.
func (r Record) Set(col string, v Value) {
	r.m.Set(col, v)
}

func (r Record) Delete(col string) {
	if r.m != nil {
		r.m.Delete(col)
	}
}

// Each visits cells in column order.
func (r Record) Each(fn func(col string, v Value)) {
	if r.m == nil {
		return
	}
	for el := r.m.Front(); el != nil; el = el.Next() {
		fn(el.Key, el.Value)
	}
}

// Clone returns an independent copy. Cloning the zero Record yields the
// zero Record.
func (r Record) Clone() Record {
	if r.m == nil {
		return Record{}
	}
	out := NewRecord()
	r.Each(func(col string, v Value) { out.m.Set(col, v) })
	return out
}

// Equal compares column sets and cells regardless of column order.
func (r Record) Equal(o Record) bool {
	if r.Valid() != o.Valid() || r.Len() != o.Len() {
		return false
	}
	eq := true
	r.Each(func(col string, v Value) {
		if !eq {
			return
		}
		ov, ok := o.Get(col)
		eq = ok && v.Equal(ov)
	})
	return eq
}

// Map returns the record as plain Go values.
func (r Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	r.Each(func(col string, v Value) { out[col] = v.Any() })
	return out
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	r.Each(func(col string, v Value) {
		if err != nil {
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		var kb, vb []byte
		if kb, err = json.Marshal(col); err != nil {
			return
		}
		if vb, err = v.MarshalJSON(); err != nil {
			return
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keeping its key order. null decodes to
// the zero Record; nested values are rejected.
func (r *Record) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*r = Record{}
		return nil
	}
	out := NewRecord()
	err := DecodeObject(b, func(col string, raw json.RawMessage) error {
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("column %q: %w", col, err)
		}
		out.Set(col, v)
		return nil
	})
	if err != nil {
		return err
	}
	*r = out
	return nil
}

// DecodeObject walks a JSON object in key order, handing each raw member
// to fn. It fails when b is not an object.
func DecodeObject(b []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
