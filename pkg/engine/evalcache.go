package engine

import (
	"sync/atomic"

	. "github.com/corvidchess/corvid/pkg/common"
)

const (
	evalMask = uint64(0xFFFF)
	keyMask  = ^evalMask
	evalZero = 32768
)

// evalCache maps position keys to static evaluations.
// An entry keeps the upper 48 bits of the key and the eval in the lower 16.
type evalCache struct {
	entries []uint64
	mask    uint32
}

func newEvalCache(megabytes int) *evalCache {
	var c = &evalCache{}
	c.resize(megabytes)
	return c
}

func (c *evalCache) resize(megabytes int) {
	var size = roundPowerOfTwo(Max(1, megabytes) * 1024 * 1024 / 8)
	if size == len(c.entries) {
		return
	}
	c.entries = make([]uint64, size)
	c.mask = uint32(size - 1)
}

func (c *evalCache) clear() {
	for i := range c.entries {
		c.entries[i] = 0
	}
}

func (c *evalCache) get(key uint64) (int, bool) {
	var data = atomic.LoadUint64(&c.entries[uint32(key)&c.mask])
	if data != 0 && data&keyMask == key&keyMask {
		return int(data&evalMask) - evalZero, true
	}
	return 0, false
}

func (c *evalCache) put(key uint64, eval int) {
	eval = Clamp(eval, -evalZero+1, evalZero-1)
	atomic.StoreUint64(&c.entries[uint32(key)&c.mask], (key&keyMask)|uint64(eval+evalZero))
}
