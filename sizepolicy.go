package fks

import "math/bits"

// wordBits is the width, in bits, of the hash words this package operates
// on. The specification assumes "unsigned machine integer (>= 64 bits)";
// this implementation standardizes on uint64 throughout.
const wordBits = 64

// log2Ceil returns ceil(log2(n)) for n >= 1, special-casing n <= 2 to 1 to
// match the source's pow2_upper_size_policy (which never wants a size
// index smaller than the one needed for 2 slots).
func log2Ceil(n uint) uint {
	if n <= 2 {
		return 1
	}
	return uint(bits.Len(n - 1))
}

// sizeIndex returns the size index k for a requested capacity n: the
// primary table has tableSize(k) = 2^(wordBits-k) buckets, and a hash's
// primary bucket is hash >> k. The floor on n is minSize (2 buckets).
func sizeIndex(n uint) uint {
	m := n
	if m < minSize {
		m = minSize
	}
	return wordBits - log2Ceil(m)
}

// minSize is the floor on the primary bucket count, per the size policy's
// min_size().
const minSize = 2

// tableSize returns the number of primary buckets for a given size index.
func tableSize(k uint) uint {
	return 1 << (wordBits - k)
}

// primaryIndex extracts the primary bucket index from a hash: the top
// bits, taken by shifting right by k. Using the high bits here, rather
// than the low bits, is what lets secondary parameter search draw shift
// and width from anywhere in the word without needing to avoid the
// primary slice.
func primaryIndex(h uint64, k uint) uint64 {
	return h >> k
}
