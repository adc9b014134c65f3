package antireplay

import (
	"hash/fnv"
	"sync"

	"github.com/riobard/go-bloom"
)

const (
	defaultBloomCapacity = 1e6
	defaultBloomFPR      = 1e-6
	defaultBloomSlots    = 10
)

// BloomRing is a Filter backed by a ring of bloom filters. Old entries are
// forgotten slot by slot as new ones arrive, so its window is measured in
// entries rather than time.
type BloomRing struct {
	sync.Mutex
	ring *bloomRing
}

// NewBloomRing creates a ring holding about one million nonces.
func NewBloomRing() *BloomRing {
	return NewBloomRingWithCapacity(defaultBloomSlots, defaultBloomCapacity, defaultBloomFPR)
}

func NewBloomRingWithCapacity(slots, capacity int, falsePositiveRate float64) *BloomRing {
	return &BloomRing{ring: newBloomRing(slots, capacity, falsePositiveRate)}
}

// Check implements Filter.
func (b *BloomRing) Check(sum []byte) bool {
	b.Lock()
	defer b.Unlock()
	if b.ring.Test(sum) {
		return false
	}
	b.ring.Add(sum)
	return true
}

// double FNV is enough for bloom hashing of random nonces
func doubleFNV(b []byte) (uint64, uint64) {
	hx := fnv.New64()
	hx.Write(b)
	x := hx.Sum64()
	hy := fnv.New64a()
	hy.Write(b)
	y := hy.Sum64()
	return x, y
}

type bloomRing struct {
	slotCapacity int
	slotPosition int
	slotCount    int
	entryCounter int
	slots        []bloom.Filter
}

func newBloomRing(slot, capacity int, falsePositiveRate float64) *bloomRing {
	if slot < 1 {
		slot = 1
	}
	r := &bloomRing{
		slotCapacity: capacity / slot,
		slotCount:    slot,
		slots:        make([]bloom.Filter, slot),
	}
	if r.slotCapacity < 1 {
		r.slotCapacity = 1
	}
	for i := 0; i < slot; i++ {
		r.slots[i] = bloom.New(r.slotCapacity, falsePositiveRate, doubleFNV)
	}
	return r
}

func (r *bloomRing) Add(b []byte) {
	slot := r.slots[r.slotPosition]
	if r.entryCounter >= r.slotCapacity {
		r.slotPosition = (r.slotPosition + 1) % r.slotCount
		slot = r.slots[r.slotPosition]
		slot.Reset()
		r.entryCounter = 0
	}
	r.entryCounter++
	slot.Add(b)
}

func (r *bloomRing) Test(b []byte) bool {
	for _, s := range r.slots {
		if s.Test(b) {
			return true
		}
	}
	return false
}
