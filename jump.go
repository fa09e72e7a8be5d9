package fks

import "math/bits"

// defaultMaxSecondaryWidth is the canonical source's pragmatic upper bound
// on useful secondary-hash widths. SPEC_FULL.md leaves the literal
// underived but makes it an explicit, named, overridable constant (see
// WithMaxSecondaryWidth) rather than a silent magic number.
const defaultMaxSecondaryWidth uint8 = 56

// jumpRecord is the per-primary-bucket triple (base, shift, width) that
// parameterizes the secondary hash slice. The zero value intentionally
// yields elementPosition(h, jumpRecord{}) == 0 for any h, which is what
// lets every bucket start out (before it is searched) pointing harmlessly
// at element-array position 0.
type jumpRecord struct {
	base  uint64
	shift uint8
	width uint8
}

// secondaryOffset extracts the bucket-local slot offset from a hash:
// (h >> shift) & ((1 << width) - 1).
func secondaryOffset(h uint64, shift, width uint8) uint64 {
	mask := uint64(1)<<width - 1
	return (h >> shift) & mask
}

// elementPosition is the final element-array index for a query hash
// under a given jump record.
func elementPosition(h uint64, j jumpRecord) uint64 {
	return j.base + secondaryOffset(h, j.shift, j.width)
}

// minWidthForSize returns ceil(log2(s)): the narrowest width that can
// possibly make s hashes' offsets pairwise distinct, equal to
// popcount(nextPow2(s)-1).
func minWidthForSize(s int) uint8 {
	if s <= 1 {
		return 0
	}
	return uint8(bits.Len(uint(s - 1)))
}

type placementOutcome int

const (
	// placementPlaced means this (shift, width) pair was injective on the
	// bucket and a base was found making every resulting slot free; the
	// bucket is fully committed and the caller should move to the next
	// bucket.
	placementPlaced placementOutcome = iota
	// placementParametersUnusable means this (shift, width) pair produced
	// a collision among the bucket's own keys; try the next pair.
	placementParametersUnusable
	// placementNoSpaceForParameters means (shift, width) was injective but
	// no base placed every slot in free territory; try the next pair.
	placementNoSpaceForParameters
)

// tryPlace attempts one (shift, width) pair against bucket hashes hs. On
// success it claims the winning slots in occ and returns the base. offsets
// is reused scratch space owned by the caller, sized to len(hs).
func tryPlace(hs []uint64, shift, width uint8, occ *occupancy, m uint64, offsets []uint64) (placementOutcome, uint64) {
	offsets = offsets[:0]
	var maxOff uint64
	for _, h := range hs {
		off := secondaryOffset(h, shift, width)
		for _, seen := range offsets {
			if seen == off {
				return placementParametersUnusable, 0
			}
		}
		offsets = append(offsets, off)
		if off > maxOff {
			maxOff = off
		}
	}
	if maxOff >= m {
		return placementNoSpaceForParameters, 0
	}

	for base := uint64(0); base+maxOff < m; base++ {
		fits := true
		for _, off := range offsets {
			if occ.Contains(base + off) {
				fits = false
				break
			}
		}
		if !fits {
			continue
		}
		for _, off := range offsets {
			occ.Add(base + off)
		}
		return placementPlaced, base
	}
	return placementNoSpaceForParameters, 0
}

// placeBucket searches, in the deterministic order DESIGN.md records
// (shift outermost, width nested), for a (shift, width, base) triple that
// packs bucket keyIdx/hs into free slots of elements. On success it writes
// the keys into elements at their claimed positions and returns the
// winning jump record. offsets is scratch space sized to len(hs), reused
// across every (shift, width) trial this call makes.
func placeBucket[T any](
	keys []T, keyIdx []int, hs []uint64,
	occ *occupancy, m uint64, maxWidth uint8,
	elements []T, offsets []uint64,
) (jumpRecord, bool) {
	minWidth := minWidthForSize(len(hs))
	if maxWidth >= wordBits {
		maxWidth = wordBits - 1
	}

	for shift := uint8(0); uint(shift) < wordBits-uint(minWidth); shift++ {
		for width := minWidth; width <= maxWidth; width++ {
			outcome, base := tryPlace(hs, shift, width, occ, m, offsets)
			if outcome != placementPlaced {
				continue
			}
			j := jumpRecord{base: base, shift: shift, width: width}
			for i, h := range hs {
				elements[elementPosition(h, j)] = keys[keyIdx[i]]
			}
			return j, true
		}
	}
	return jumpRecord{}, false
}
