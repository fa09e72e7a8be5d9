package fks

import (
	"fmt"
	"testing"
)

// Benchmarks compare Set.Find's one-hash/one-compare lookup against Go's
// builtin map, across sizes, in the teacher's benchmark style
// (_examples/cockroachdb-swiss/bench_test.go): one sub-benchmark per size,
// driven from a table rather than copy-pasted functions.
var benchSizes = []int{8, 64, 1024, 65536}

func BenchmarkSetFind(b *testing.B) {
	for _, n := range benchSizes {
		n := n
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			keys := make([]uint64, n)
			for i := range keys {
				keys[i] = uint64(i)
			}
			set, err := Build(keys, MixedUint64Hasher{})
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				set.Find(keys[i%n])
			}
		})
	}
}

func BenchmarkBuiltinMapFind(b *testing.B) {
	for _, n := range benchSizes {
		n := n
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := make(map[uint64]struct{}, n)
			keys := make([]uint64, n)
			for i := range keys {
				keys[i] = uint64(i)
				m[keys[i]] = struct{}{}
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = m[keys[i%n]]
			}
		})
	}
}

func BenchmarkBuild(b *testing.B) {
	for _, n := range benchSizes {
		n := n
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			keys := make([]uint64, n)
			for i := range keys {
				keys[i] = uint64(i)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Build(keys, MixedUint64Hasher{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
