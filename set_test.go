package fks

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func buildUint64Set(t *testing.T, n int) (*Set[uint64], []uint64) {
	t.Helper()
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = uint64(i)
	}
	set, err := Build(keys, MixedUint64Hasher{}, WithLambda[uint64](4))
	require.NoError(t, err)
	return set, keys
}

func TestSetScenarios(t *testing.T) {
	// The concrete scenarios table: empty, singleton, a small run, and a
	// larger run, each checked for total recall and no false positives
	// among near-miss probes.
	sizes := []int{0, 1, 8, 999}
	for _, n := range sizes {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			set, keys := buildUint64Set(t, n)
			require.Equal(t, n, set.Len())

			for _, k := range keys {
				got, ok := set.Find(k)
				require.True(t, ok, "key %d should be found", k)
				require.Equal(t, k, got)
			}
			for _, miss := range []uint64{uint64(n) + 1, uint64(n) + 1000} {
				_, ok := set.Find(miss)
				require.False(t, ok, "key %d should be absent", miss)
			}
		})
	}
}

func TestSetStringKeys(t *testing.T) {
	keys := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}
	set, err := Build(keys, NewStringHasher())
	require.NoError(t, err)

	for _, k := range keys {
		_, ok := set.Find(k)
		require.True(t, ok)
	}
	_, ok := set.Find("golf")
	require.False(t, ok)
}

func TestSetZeroValueKeyIsNotAFalsePositive(t *testing.T) {
	// Regression test for the sentinel-slot failure mode this
	// implementation avoids: a query equal to the zero value of T must
	// not spuriously hit just because it lands in an empty primary
	// bucket whose jump record happens to be the zero value too.
	keys := []uint64{5, 9, 13}
	set, err := Build(keys, MixedUint64Hasher{})
	require.NoError(t, err)

	_, ok := set.Find(0)
	require.False(t, ok)
}

func TestBuildRejectsDuplicateKeys(t *testing.T) {
	_, err := Build([]string{"a", "b", "a"}, NewStringHasher())
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestBuildRejectsHashCollision(t *testing.T) {
	_, err := Build([]string{"a", "b"}, constHasher{})
	require.ErrorIs(t, err, ErrHashCollision)
}

func TestBuildSucceedsAcrossALambdaRange(t *testing.T) {
	// Starting Build at each lambda of the retry sequence must produce a
	// correct set. Build still falls back to smaller lambdas when a start
	// value is infeasible, so this checks the result of each starting
	// point, not that every lambda succeeds on its own.
	keys := make([]uint64, 300)
	for i := range keys {
		keys[i] = uint64(i)
	}
	for _, lambda := range []uint{1, 2, 4, 8} {
		set, err := Build(keys, MixedUint64Hasher{}, WithLambda[uint64](lambda))
		require.NoError(t, err, "lambda=%d", lambda)
		require.Equal(t, len(keys), set.Len())
		for _, k := range keys {
			_, ok := set.Find(k)
			require.True(t, ok, "lambda=%d key=%d", lambda, k)
		}
	}
}

func TestBuildReturnsConstructionFailureWhenWidthCannotCoverLoad(t *testing.T) {
	// Capping the secondary width at 0 leaves room for only one key per
	// primary bucket under any parameters. Two keys that share every
	// primary bucket size this small input ever gets (their low bit
	// differs but nothing else does, and the size policy floors at 2
	// buckets for any n <= 2) cannot be built, and Build must report
	// ErrConstructionFailure rather than hang or panic.
	_, err := Build([]uint64{0, 1}, Uint64Hasher{},
		WithMaxSecondaryWidth[uint64](0),
	)
	require.ErrorIs(t, err, ErrConstructionFailure)
}

func TestBuildIsDeterministicForTheSameInput(t *testing.T) {
	keys := make([]uint64, 200)
	for i := range keys {
		keys[i] = uint64(i) * 7
	}
	hash := MixedUint64Hasher{}

	a, err := Build(keys, hash)
	require.NoError(t, err)
	b, err := Build(keys, hash)
	require.NoError(t, err)

	require.Empty(t, cmp.Diff(a.elements, b.elements))
	require.Empty(t, cmp.Diff(a.jumps, b.jumps, cmp.AllowUnexported(jumpRecord{})))
}

// countingEqual wraps Go's built-in == and counts calls, letting a test
// assert Find makes at most one equality compare per lookup.
type countingEqual[T comparable] struct {
	calls int
}

func (c *countingEqual[T]) Equal(a, b T) bool {
	c.calls++
	return a == b
}

func TestFindMakesAtMostOneEqualityCompare(t *testing.T) {
	keys := []uint64{1, 2, 3, 4, 5}
	counter := &countingEqual[uint64]{}
	set, err := Build(keys, MixedUint64Hasher{}, WithEqual[uint64](counter))
	require.NoError(t, err)

	counter.calls = 0
	set.Find(3)
	require.LessOrEqual(t, counter.calls, 1)

	counter.calls = 0
	set.Find(999)
	require.LessOrEqual(t, counter.calls, 1)
}

func TestAllVisitsEveryKeyExactlyOnce(t *testing.T) {
	set, keys := buildUint64Set(t, 500)
	seen := make(map[uint64]bool, len(keys))
	set.All(func(k uint64) bool {
		require.False(t, seen[k], "key %d visited twice", k)
		seen[k] = true
		return true
	})
	require.Len(t, seen, len(keys))
}

func TestAllStopsEarlyWhenYieldReturnsFalse(t *testing.T) {
	set, _ := buildUint64Set(t, 50)
	visited := 0
	set.All(func(uint64) bool {
		visited++
		return visited < 3
	})
	require.Equal(t, 3, visited)
}

func TestCapacityEqualsLenForThisVariant(t *testing.T) {
	set, _ := buildUint64Set(t, 77)
	require.Equal(t, set.Len(), set.Capacity())
}
