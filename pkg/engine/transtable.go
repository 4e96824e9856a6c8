package engine

import (
	"math/bits"
	"sync/atomic"
	"unsafe"

	. "github.com/corvidchess/corvid/pkg/common"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

// ages wrap at this value
const ageCycle = 1 << 11

// roundPowerOfTwo returns the largest power of two not above size.
func roundPowerOfTwo(size int) int {
	if size < 1 {
		return 1
	}
	return 1 << (bits.Len(uint(size)) - 1)
}

type transEntry struct {
	busy  atomic.Bool
	check uint32 // upper half of the key
	move  Move
	age   uint16
	value int16
	depth int8
	bound uint8
}

const transEntrySize = int(unsafe.Sizeof(transEntry{}))

// TransTable is the hash table shared by all search threads. A slot that is
// being written by another thread is skipped rather than waited on.
// Clear and Resize must not overlap a search.
type TransTable struct {
	megabytes int
	entries   []transEntry
	age       uint16
	mask      uint32
}

func NewTransTable(megabytes int) *TransTable {
	var tt = &TransTable{}
	tt.Resize(megabytes)
	return tt
}

func (tt *TransTable) Size() int {
	return tt.megabytes
}

// Resize reallocates the table when the size changes. The old entries are dropped.
func (tt *TransTable) Resize(megabytes int) {
	megabytes = Max(1, megabytes)
	if megabytes == tt.megabytes && tt.entries != nil {
		return
	}
	var n = roundPowerOfTwo(megabytes << 20 / transEntrySize)
	tt.entries = nil
	tt.entries = make([]transEntry, n)
	tt.mask = uint32(n - 1)
	tt.megabytes = megabytes
	tt.age = 0
}

// NewSearch ages the table so entries of older searches are replaced first.
func (tt *TransTable) NewSearch() {
	tt.age = (tt.age + 1) % ageCycle
}

// Clear zeroes the entries in place.
func (tt *TransTable) Clear() {
	tt.age = 0
	clear(tt.entries)
}

// Usage returns the permille of sampled entries written in the current search.
func (tt *TransTable) Usage() int {
	var sample = tt.entries[:Min(1000, len(tt.entries))]
	if len(sample) == 0 {
		return 0
	}
	var used = 0
	for i := range sample {
		if sample[i].bound != 0 && sample[i].age == tt.age {
			used++
		}
	}
	return used * 1000 / len(sample)
}

func (tt *TransTable) slot(key uint64) *transEntry {
	return &tt.entries[uint32(key)&tt.mask]
}

// Read looks key up and refreshes the age of a hit.
func (tt *TransTable) Read(key uint64) (depth, value, bound int, move Move, ok bool) {
	var e = tt.slot(key)
	if !e.busy.CompareAndSwap(false, true) {
		return
	}
	if e.bound != 0 && e.check == uint32(key>>32) {
		e.age = tt.age
		depth, value, bound, move, ok = int(e.depth), int(e.value), int(e.bound), e.move, true
	}
	e.busy.Store(false)
	return
}

// Update stores a search result. The same position is overwritten unless the
// stored result is much deeper; another position only when it is stale or
// shallower.
func (tt *TransTable) Update(key uint64, depth, value, bound int, move Move) {
	var e = tt.slot(key)
	if !e.busy.CompareAndSwap(false, true) {
		return
	}
	var check = uint32(key >> 32)
	var replace bool
	if e.check == check {
		replace = bound == boundExact || depth >= int(e.depth)-3
	} else {
		replace = e.age != tt.age || depth >= int(e.depth)
	}
	if replace {
		e.check = check
		e.move = move
		e.age = tt.age
		e.value = int16(value)
		e.depth = int8(depth)
		e.bound = uint8(bound)
	}
	e.busy.Store(false)
}
