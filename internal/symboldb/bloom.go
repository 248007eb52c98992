package symboldb

import "github.com/cespare/xxhash/v2"

// bloomDefaultSize is sized generously for the tens-of-thousands of
// symbols a full package set carries, keeping the false-positive rate
// low without costing meaningful memory.
const bloomDefaultSize = 1 << 20 // bits

// bloomFilter is a fast-negative prefilter in front of byNameCI: a
// miss here means the name is definitely absent, so GetByName can skip
// the map probe entirely. A hit still requires confirming against
// byNameCI since false positives are expected.
type bloomFilter struct {
	bits []uint64
	size uint64
}

func newBloomFilter(sizeBits uint64) *bloomFilter {
	return &bloomFilter{
		bits: make([]uint64, (sizeBits+63)/64),
		size: sizeBits,
	}
}

func (b *bloomFilter) add(nameLower string) {
	for _, h := range b.hashes(nameLower) {
		b.bits[h/64] |= 1 << (h % 64)
	}
}

func (b *bloomFilter) mightContain(nameLower string) bool {
	for _, h := range b.hashes(nameLower) {
		if b.bits[h/64]&(1<<(h%64)) == 0 {
			return false
		}
	}
	return true
}

// hashes derives two bit positions from one xxhash sum (the full sum
// and its high 32 bits, each reduced modulo the filter size), avoiding
// a second hash pass over the string.
func (b *bloomFilter) hashes(nameLower string) [2]uint64 {
	sum := xxhash.Sum64String(nameLower)
	h1 := sum % b.size
	h2 := (sum >> 32) % b.size
	return [2]uint64{h1, h2}
}
