// Package fat owns the in-memory File Allocation Table and its
// persistence: allocating and freeing block chains, and walking them.
package fat

import (
	"encoding/binary"
	"errors"

	"github.com/blockvol/blockfs/internal/blockdev"
)

// Reserved block numbers and sentinel FAT values, fixed by the on-disk
// layout (spec.md §3).
const (
	RootBlock = 0
	FATBlock  = 1

	Free int16 = 0
	EOF  int16 = -1
)

// ErrNoSpace is returned by AllocateOne when no free block remains.
var ErrNoSpace = errors.New("fat: no free block available")

// Allocator holds the FAT in memory. It is the single source of truth
// for block allocation state; every allocating operation in the
// filesystem layer goes through one Allocator instance.
type Allocator struct {
	entries []int16
}

// New creates a fresh Allocator sized for blockCount blocks, already
// reset to the just-formatted state (see Reset).
func New(blockCount int) *Allocator {
	a := &Allocator{entries: make([]int16, blockCount)}
	a.Reset()
	return a
}

// Reset reinitializes the table to the just-formatted state: blocks 0
// and 1 are FAT_EOF (reserved, never allocated to user data), every
// other block is FAT_FREE.
func (a *Allocator) Reset() {
	for i := range a.entries {
		if i == RootBlock || i == FATBlock {
			a.entries[i] = EOF
		} else {
			a.entries[i] = Free
		}
	}
}

// Load reads the serialized FAT from dev's FATBlock into a new Allocator
// sized for dev's full geometry.
func Load(dev blockdev.Device) (*Allocator, error) {
	a := &Allocator{entries: make([]int16, dev.BlockCount())}
	buf := make([]byte, dev.BlockSize())
	if err := dev.ReadBlock(FATBlock, buf); err != nil {
		return nil, err
	}
	a.decode(buf)
	return a, nil
}

// Persist writes the in-memory FAT back to dev's FATBlock. Every
// operation that mutates allocation state calls Persist before
// returning success.
func (a *Allocator) Persist(dev blockdev.Device) error {
	buf := make([]byte, dev.BlockSize())
	a.encode(buf)
	return dev.WriteBlock(FATBlock, buf)
}

func (a *Allocator) encode(buf []byte) {
	for i, v := range a.entries {
		off := i * 2
		if off+2 > len(buf) {
			break
		}
		binary.LittleEndian.PutUint16(buf[off:], uint16(v))
	}
}

func (a *Allocator) decode(buf []byte) {
	n := len(buf) / 2
	if n > len(a.entries) {
		n = len(a.entries)
	}
	for i := 0; i < n; i++ {
		a.entries[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}
}

// AllocateOne scans ascending from index 2 for the first FAT_FREE slot,
// marks it FAT_EOF, and returns its index. This lowest-free-first policy
// is observable and required for test determinism (spec.md §4.2).
func (a *Allocator) AllocateOne() (int, error) {
	for i := 2; i < len(a.entries); i++ {
		if a.entries[i] == Free {
			a.entries[i] = EOF
			return i, nil
		}
	}
	return 0, ErrNoSpace
}

// Link sets the successor of block `from` to `to` in the chain.
func (a *Allocator) Link(from, to int) {
	a.entries[from] = int16(to)
}

// FreeChain walks the chain from start, setting each visited slot to
// FAT_FREE, stopping at FAT_EOF.
func (a *Allocator) FreeChain(start int) {
	block := start
	for block != int(EOF) && block >= 0 && block < len(a.entries) {
		next := a.entries[block]
		a.entries[block] = Free
		if next == EOF {
			break
		}
		block = int(next)
	}
}

// FreeBlocks frees each block in blocks individually, without chain
// traversal — used to roll back a partial allocation that failed
// mid-chain (spec.md §9's two-phase allocate-then-commit recommendation).
func (a *Allocator) FreeBlocks(blocks []int) {
	for _, b := range blocks {
		if b >= 0 && b < len(a.entries) {
			a.entries[b] = Free
		}
	}
}

// ChainNext returns the successor of block, and false if block is
// FAT_EOF (end of chain).
func (a *Allocator) ChainNext(block int) (next int, ok bool) {
	v := a.entries[block]
	if v == EOF {
		return 0, false
	}
	return int(v), true
}

// Free reports whether i is free.
func (a *Allocator) Free(i int) bool { return a.entries[i] == Free }

// Len returns the number of entries (== the device's block count).
func (a *Allocator) Len() int { return len(a.entries) }

// Walk returns the full chain of block numbers starting at start,
// following successors until FAT_EOF. Used by invariant checks and tests
// (spec.md §8's chain well-formedness property).
func (a *Allocator) Walk(start int) []int {
	chain := []int{start}
	seen := map[int]bool{start: true}
	block := start
	for {
		next, ok := a.ChainNext(block)
		if !ok {
			break
		}
		if seen[next] {
			break // defensive: never happens under the documented invariants
		}
		seen[next] = true
		chain = append(chain, next)
		block = next
	}
	return chain
}
