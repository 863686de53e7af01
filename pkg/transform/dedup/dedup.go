// Package dedup collapses structurally equal records.
//
// Two records are duplicates when they hold the same columns with equal
// values, regardless of column order. The winner among duplicates depends
// on the policy:
//
//   - "remove", "keep_first": the earliest occurrence survives
//   - "keep_last": the latest occurrence survives, placed at the position
//     of the earliest one
//
// The empty policy leaves the dataset unchanged.
package dedup

import (
	"context"
	"encoding/binary"
	"math"
	"sort"

	"github.com/zeebo/xxh3"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

type Policy string

const (
	None      Policy = ""
	Remove    Policy = "remove"
	KeepFirst Policy = "keep_first"
	KeepLast  Policy = "keep_last"
)

func (pol Policy) Known() bool {
	switch pol {
	case None, Remove, KeepFirst, KeepLast:
		return true
	}
	return false
}

// Resolve returns a new dataset without duplicates. Unknown policies are
// treated like None.
func Resolve(ds p.Dataset, policy Policy) p.Dataset {
	if policy == None || !policy.Known() {
		return ds
	}
	out := make(p.Dataset, 0, len(ds))
	buckets := make(map[uint64][]int, len(ds))
	for _, r := range ds {
		h := Hash(r)
		idx := -1
		for _, i := range buckets[h] {
			if out[i].Equal(r) {
				idx = i
				break
			}
		}
		switch {
		case idx < 0:
			buckets[h] = append(buckets[h], len(out))
			out = append(out, r)
		case policy == KeepLast:
			out[idx] = r
		}
	}
	return out
}

// Hash digests a canonical encoding of r: columns sorted by name, every
// cell tagged with its kind. Equal records hash equally.
func Hash(r p.Record) uint64 {
	cols := r.Columns()
	sort.Strings(cols)
	buf := make([]byte, 0, 16*len(cols))
	var n [8]byte
	for _, c := range cols {
		binary.LittleEndian.PutUint64(n[:], uint64(len(c)))
		buf = append(buf, n[:]...)
		buf = append(buf, c...)
		v := r.Value(c)
		buf = append(buf, byte(v.Kind()))
		switch v.Kind() {
		case p.KindNumber:
			f, _ := v.Float()
			bits := math.Float64bits(f)
			if math.IsNaN(f) {
				bits = math.Float64bits(math.NaN())
			}
			if f == 0 {
				bits = 0
			}
			binary.LittleEndian.PutUint64(n[:], bits)
			buf = append(buf, n[:]...)
		case p.KindText:
			s, _ := v.Str()
			binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
			buf = append(buf, n[:]...)
			buf = append(buf, s...)
		case p.KindBool:
			if b, _ := v.Boolean(); b {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		}
	}
	return xxh3.Hash(buf)
}

// Resolver is the pipeline form of Resolve.
type Resolver struct{ Policy Policy }

func (t *Resolver) Name() string { return "deduplicate" }

func (t *Resolver) Apply(ctx context.Context, ds p.Dataset) (p.Dataset, error) {
	if !t.Policy.Known() {
		p.Warn(ctx, p.Unknown(t.Name(), "duplicateHandling", string(t.Policy)))
		return ds, nil
	}
	return Resolve(ds, t.Policy), nil
}
