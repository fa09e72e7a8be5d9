package fks

import "github.com/RoaringBitmap/roaring"

// occupancy is a bitset over element-array positions. It is backed by a compressed roaring bitmap
// rather than a flat []bool or []uint64 word array: during the build,
// occupancy starts empty and fills in from position 0 upward as buckets
// are packed (see jump.go), so a compressed representation costs little
// early on and pays for itself on the sparse tail that a generous lambda
// can leave unfilled.
//
// occupancy does not support removal; the build only ever claims slots,
// never releases them (a committed bucket placement is final).
type occupancy struct {
	bm *roaring.Bitmap
}

func newOccupancy() *occupancy {
	return &occupancy{bm: roaring.New()}
}

// Contains reports whether position i is already claimed.
func (o *occupancy) Contains(i uint64) bool {
	return o.bm.Contains(uint32(i))
}

// Add claims position i.
func (o *occupancy) Add(i uint64) {
	o.bm.Add(uint32(i))
}

// Len returns the number of claimed positions.
func (o *occupancy) Len() int {
	return int(o.bm.GetCardinality())
}
