package fks

import "sort"

// noNext marks the end of a bucket's chain, playing the role of a null
// pointer without requiring one: nodes are addressed by index into a
// single arena sized to N, following the pattern remapping in SPEC_FULL.md
// (intrusive lists over raw pointers become intrusive lists over arena
// indices, giving O(1) append and single-pass duplicate detection with
// zero per-node heap allocation).
const noNext = -1

// bucketNode is one arena slot: the hash of the key at keyIndex, and the
// index of the next node in the same primary bucket's chain.
type bucketNode struct {
	keyIndex int
	hash     uint64
	next     int
}

// bucketHead is a primary bucket's chain head and running size.
type bucketHead struct {
	head int
	size int
}

// bucketing is the transient result of primary bucketing: which primary
// bucket each key landed in, and the chains needed to detect duplicates
// and hash collisions in the same pass.
type bucketing struct {
	sizeIdx uint
	heads   []bucketHead
	nodes   []bucketNode
}

// bucketize partitions keys into ceil(N/lambda)-sized-and-rounded primary
// buckets, detecting duplicate keys and hash collisions as it goes. It
// never allocates more than one node per key and one head per primary
// bucket.
func bucketize[T any](keys []T, hash Hasher[T], eq Equaler[T], lambda uint) (*bucketing, error) {
	n := uint(len(keys))
	target := n
	if lambda > 0 {
		target = (n + lambda - 1) / lambda
	}
	sizeIdx := sizeIndex(target)
	b := tableSize(sizeIdx)

	heads := make([]bucketHead, b)
	for i := range heads {
		heads[i].head = noNext
	}
	nodes := make([]bucketNode, n)

	for i, key := range keys {
		h := hash.Hash(key)
		p := primaryIndex(h, sizeIdx)
		head := &heads[p]

		for ni := head.head; ni != noNext; ni = nodes[ni].next {
			if nodes[ni].hash != h {
				continue
			}
			existing := keys[nodes[ni].keyIndex]
			if eq.Equal(existing, key) {
				return nil, duplicateKeyError(key)
			}
			return nil, hashCollisionError(h, existing, key)
		}

		nodes[i] = bucketNode{keyIndex: i, hash: h, next: head.head}
		head.head = i
		head.size++
	}

	return &bucketing{sizeIdx: sizeIdx, heads: heads, nodes: nodes}, nil
}

// orderedBucketIndices returns primary bucket indices sorted by size
// descending, ties broken by index ascending, the bucket ordering given
// in SPEC_FULL.md. Larger buckets impose the tightest
// constraints, so placing them first leaves the most room for the rest.
func orderedBucketIndices(heads []bucketHead) []int {
	idx := make([]int, len(heads))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		if heads[idx[a]].size != heads[idx[b]].size {
			return heads[idx[a]].size > heads[idx[b]].size
		}
		return idx[a] < idx[b]
	})
	return idx
}

// hashesOf collects the hash and original key index for every node in
// bucket i's chain, in arena (LIFO insertion) order. dstHashes and
// dstKeyIdx are reused scratch buffers; they are truncated and grown by
// append as needed, so the caller may pass nil.
func (bk *bucketing) hashesOf(i int, dstHashes []uint64, dstKeyIdx []int) ([]uint64, []int) {
	dstHashes = dstHashes[:0]
	dstKeyIdx = dstKeyIdx[:0]
	for ni := bk.heads[i].head; ni != noNext; ni = bk.nodes[ni].next {
		dstHashes = append(dstHashes, bk.nodes[ni].hash)
		dstKeyIdx = append(dstKeyIdx, bk.nodes[ni].keyIndex)
	}
	return dstHashes, dstKeyIdx
}
