package antireplay

import (
	"sync"
	"time"
)

// MapFilter remembers every value exactly, dropping all of them once per interval.
type MapFilter struct {
	lock      sync.Mutex
	pool      map[string]struct{}
	interval  int64
	lastClean int64
}

// NewMapFilter create a new filter with specifying the expiration time interval in seconds.
func NewMapFilter(interval int64) *MapFilter {
	return &MapFilter{
		pool:      make(map[string]struct{}),
		interval:  interval,
		lastClean: time.Now().Unix(),
	}
}

// Interval in second for expiration time for duplicate records.
func (filter *MapFilter) Interval() int64 {
	return filter.interval
}

// Check implements Filter.
func (filter *MapFilter) Check(sum []byte) bool {
	filter.lock.Lock()
	defer filter.lock.Unlock()

	now := time.Now().Unix()
	if now-filter.lastClean >= filter.interval {
		filter.pool = make(map[string]struct{})
		filter.lastClean = now
	}

	_, exists := filter.pool[string(sum)]
	filter.pool[string(sum)] = struct{}{}
	return !exists
}
