// Package fks implements a static perfect-hash set using the FKS
// (Fredman-Komlos-Szemeredi) two-level hashing scheme: keys are
// partitioned into primary buckets by the high bits of an externally
// supplied hash, and each bucket searches a family of secondary hash
// slices (a shift/width pair) until one is injective on the bucket and
// has a free run of slots in the shared element array. Once built, the
// set is immutable and every lookup costs exactly one hash, a small
// handful of table reads, and at most one equality compare.
//
// This is an associative container for membership testing only: there is
// no Put, Delete, or resize after Build. Concurrent readers need no
// synchronization because nothing mutates after construction.
//
// # Implementation
//
// The design follows Joaquin M Lopez Munoz's fks_perfect_set, an FKS
// perfect-hashing proof of concept for C++
// (https://bannalia.blogspot.com/2023/07/the-most-elegant-perfect-hashing.html).
// Where Go idiom and a general-purpose library diverge from that
// proof-of-concept's choices, that is called out inline.
//
// The element-array occupancy tracked during the build, and the
// persisted "this primary bucket received no keys" marker consulted by
// Find, are both backed by github.com/RoaringBitmap/roaring rather than a
// hand-rolled bitset.
package fks

import (
	"github.com/RoaringBitmap/roaring"
)

// Set is an immutable perfect-hash set over keys of type T. The zero
// value is not usable; construct one with Build.
type Set[T comparable] struct {
	hash Hasher[T]
	eq   Equaler[T]

	elements []T
	jumps    []jumpRecord
	// emptyBuckets marks which primary bucket indices received no keys
	// during the build. Find consults it before reading elements, so that
	// an empty bucket's zero-value jump record (which resolves to position
	// 0) never gets compared against whatever real key happens to occupy
	// slot 0 in the element array. This is the "parallel occupancy
	// bitmask" lookup variant described in SPEC_FULL.md, chosen over the
	// sentinel-slot variant because it is correct for any comparable T
	// (including one whose zero value is itself a plausible key, e.g. the
	// integer 0), not just types with a safe "never a real key" default.
	emptyBuckets *roaring.Bitmap
	sizeIdx      uint
}

// Build constructs a Set from keys using hash to compute hash words and
// opts to configure the load parameter, equality, and secondary-width
// cap. It returns ErrDuplicateKey or ErrHashCollision immediately (these
// are properties of the input and hash, not of lambda, so retrying a
// smaller lambda cannot fix them) and ErrConstructionFailure once the
// lambda retry sequence (lambda, lambda/2, lambda/4, ..., 0) is exhausted
// without a feasible assignment.
func Build[T comparable](keys []T, hash Hasher[T], opts ...Option[T]) (*Set[T], error) {
	cfg := defaultBuildConfig[T]()
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if cfg.lambda == 0 {
		cfg.lambda = 4
	}

	startLambda := cfg.lambda
	for lambda := cfg.lambda; lambda > 0; lambda /= 2 {
		set, err := construct(keys, hash, cfg.eq, lambda, cfg.maxWidth)
		if err == nil {
			return set, nil
		}
		if isFatalBuildError(err) {
			return nil, err
		}
	}
	return nil, constructionFailureError(len(keys), startLambda)
}

// construct runs a single build attempt at a fixed lambda. It returns
// ErrDuplicateKey/ErrHashCollision (fatal, not retryable at any lambda);
// a nil *Set and nil error is never returned: a feasibility failure at
// this lambda comes back as the sentinel errBuildInfeasible, translated by
// the caller into another retry.
func construct[T comparable](keys []T, hash Hasher[T], eq Equaler[T], lambda uint, maxWidth uint8) (*Set[T], error) {
	bk, err := bucketize(keys, hash, eq, lambda)
	if err != nil {
		return nil, err
	}

	n := uint64(len(keys))
	elements := make([]T, n)
	jumps := make([]jumpRecord, len(bk.heads))
	emptyBuckets := roaring.New()
	occ := newOccupancy()

	order := orderedBucketIndices(bk.heads)
	var hashes []uint64
	var keyIdx []int
	for rank, b := range order {
		size := bk.heads[b].size
		if size == 0 {
			// Buckets are visited largest-first; once one is empty, every
			// bucket remaining in the order is also empty.
			for _, empty := range order[rank:] {
				emptyBuckets.Add(uint32(empty))
			}
			break
		}

		hashes, keyIdx = bk.hashesOf(b, hashes[:0], keyIdx[:0])
		jump, ok := placeBucket(keys, keyIdx, hashes, occ, n, maxWidth, elements, make([]uint64, 0, size))
		if !ok {
			return nil, errBuildInfeasible
		}
		jumps[b] = jump
	}

	return &Set[T]{
		hash:         hash,
		eq:           eq,
		elements:     elements,
		jumps:        jumps,
		emptyBuckets: emptyBuckets,
		sizeIdx:      bk.sizeIdx,
	}, nil
}

// Find reports whether key is a member of the set and, if so, returns
// the stored key equal to it. Find never fails: absent keys simply
// report ok=false. The lookup costs one hash, a primary-bucket jump-table
// read, one occupancy check, and (for non-empty buckets) one equality
// compare against a single element-array slot.
func (s *Set[T]) Find(key T) (T, bool) {
	h := s.hash.Hash(key)
	b := primaryIndex(h, s.sizeIdx)
	if s.emptyBuckets.Contains(uint32(b)) {
		var zero T
		return zero, false
	}
	j := s.jumps[b]
	pos := elementPosition(h, j)
	stored := s.elements[pos]
	if !s.eq.Equal(key, stored) {
		var zero T
		return zero, false
	}
	return stored, true
}

// All calls yield once for each key in the set, in storage order (an
// artifact of bucket ordering and offset placement during Build, not
// insertion order). If yield returns false, All stops early.
func (s *Set[T]) All(yield func(key T) bool) {
	for _, key := range s.elements {
		if !yield(key) {
			return
		}
	}
}

// Len returns the number of keys in the set.
func (s *Set[T]) Len() int {
	return len(s.elements)
}

// Capacity returns the length of the underlying element array. For this
// implementation it always equals Len, since the element array is sized
// to exactly N and carries no dedicated sentinel slot (see emptyBuckets);
// Capacity is exposed for parity with implementations that do reserve
// extra slots.
func (s *Set[T]) Capacity() int {
	return len(s.elements)
}

// BucketCount returns the number of primary buckets backing the set.
func (s *Set[T]) BucketCount() int {
	return len(s.jumps)
}
