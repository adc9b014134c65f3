package antireplay

import (
	"sync"
	"time"

	cuckoo "github.com/seiflotfy/cuckoofilter"
)

const replayFilterCapacity = 100000

// ReplayFilter checks for replays with two cuckoo filters. Values live in the
// current pool for one interval and in the previous pool for another, so a
// value is remembered for at least one full interval.
type ReplayFilter struct {
	lock     sync.Mutex
	poolA    *cuckoo.Filter
	poolB    *cuckoo.Filter
	poolSwap bool
	lastSwap int64
	interval int64
}

// NewReplayFilter creates a new filter with specifying the expiration time interval in seconds.
func NewReplayFilter(interval int64) *ReplayFilter {
	return &ReplayFilter{
		poolA:    cuckoo.NewFilter(replayFilterCapacity),
		poolB:    cuckoo.NewFilter(replayFilterCapacity),
		lastSwap: time.Now().Unix(),
		interval: interval,
	}
}

// Interval in second for expiration time for duplicate records.
func (filter *ReplayFilter) Interval() int64 {
	return filter.interval
}

// Check implements Filter.
func (filter *ReplayFilter) Check(sum []byte) bool {
	filter.lock.Lock()
	defer filter.lock.Unlock()

	now := time.Now().Unix()
	if elapsed := now - filter.lastSwap; elapsed >= filter.interval {
		if filter.poolSwap {
			filter.poolA.Reset()
		} else {
			filter.poolB.Reset()
		}
		filter.poolSwap = !filter.poolSwap
		filter.lastSwap = now
	}

	current, previous := filter.poolA, filter.poolB
	if filter.poolSwap {
		current, previous = filter.poolB, filter.poolA
	}
	if previous.Lookup(sum) {
		return false
	}
	return current.InsertUnique(sum)
}
