package vkg

import (
	"fmt"
)

// Allocation is a range within a pool handed out by an allocator
type Allocation struct {
	Offset uint64
	Size   uint64
}

func (a *Allocation) String() string {
	return fmt.Sprintf("[%d %d]", a.Offset, a.Size)
}

// end is the first offset past the allocation
func (a *Allocation) end() uint64 {
	return a.Offset + a.Size
}

type IAllocator interface {
	Free(a *Allocation)
	Allocate(size uint64, align uint64) *Allocation
}

// LinearAllocator places allocations first fit in a pool of Size bytes. It
// keeps its allocations ordered by offset, freed ranges are reused.
type LinearAllocator struct {
	Size   uint64
	allocs []*Allocation
}

func makeAlignUp(a uint64, align uint64) uint64 {
	if align <= 1 {
		return a
	}
	if m := a % align; m != 0 {
		return a - m + align
	}
	return a
}

// Free returns fa to the pool, freeing an unknown allocation is a no-op
func (p *LinearAllocator) Free(fa *Allocation) {
	for i, a := range p.allocs {
		if a == fa {
			p.allocs = append(p.allocs[:i], p.allocs[i+1:]...)
			return
		}
	}
}

// Allocate returns the first range of size bytes aligned to align which fits,
// or nil when the pool is exhausted
func (p *LinearAllocator) Allocate(size uint64, align uint64) *Allocation {
	if size == 0 || size > p.Size {
		return nil
	}

	// the gap before each allocation, then the tail of the pool
	var start uint64
	for i, a := range p.allocs {
		if fits(start, a.Offset, size) {
			na := &Allocation{Offset: start, Size: size}
			p.allocs = append(p.allocs[:i], append([]*Allocation{na}, p.allocs[i:]...)...)
			return na
		}
		start = makeAlignUp(a.end(), align)
	}

	if !fits(start, p.Size, size) {
		return nil
	}
	na := &Allocation{Offset: start, Size: size}
	p.allocs = append(p.allocs, na)
	return na
}

func fits(lo, hi, size uint64) bool {
	return lo <= hi && hi-lo >= size
}

// Used returns the number of bytes currently allocated
func (p *LinearAllocator) Used() uint64 {
	var n uint64
	for _, a := range p.allocs {
		n += a.Size
	}
	return n
}

func (p *LinearAllocator) String() string {
	return fmt.Sprintf("%v", p.allocs)
}
