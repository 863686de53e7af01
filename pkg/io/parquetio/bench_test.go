package parquetio

import (
	"path/filepath"
	"testing"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

func makeDataset(rows int) p.Dataset {
	ds := make(p.Dataset, rows)
	for i := range ds {
		ds[i] = p.RecordOf("a", float64(i%100), "b", float64(i%10))
	}
	return ds
}

func BenchmarkParquetWrite(b *testing.B) {
	ds := makeDataset(50000)
	path := filepath.Join(b.TempDir(), "bench.parquet")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := WriteAll(path, ds); err != nil {
			b.Fatal(err)
		}
	}
}
