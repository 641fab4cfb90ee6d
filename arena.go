package gfx

import (
	"fmt"
)

// Handle addresses an entry in an Arena. The generation guards against a
// handle outliving the entry it was issued for.
type Handle struct {
	index uint32
	gen   uint32
}

// Valid reports whether the handle was ever issued, the zero Handle is never valid
func (h Handle) Valid() bool {
	return h.gen != 0
}

func (h Handle) String() string {
	return fmt.Sprintf("[%d:%d]", h.index, h.gen)
}

// ErrStaleHandle is returned when a handle refers to an entry which has been released
var ErrStaleHandle = fmt.Errorf("stale or invalid resource handle")

type slot[T any] struct {
	value T
	gen   uint32
	refs  int32
	live  bool
}

// Arena owns backend resources of a single kind. Entries are reference counted,
// once the last reference is released the entry is queued as garbage and its
// slot becomes reusable after the garbage has been collected.
type Arena[T any] struct {
	slots   []slot[T]
	free    []uint32
	garbage []uint32
}

// Insert stores a value and returns a handle holding one reference to it
func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.gen++
	s.value = v
	s.refs = 1
	s.live = true
	return Handle{index: idx, gen: s.gen}
}

func (a *Arena[T]) lookup(h Handle) (*slot[T], error) {
	if !h.Valid() || int(h.index) >= len(a.slots) {
		return nil, ErrStaleHandle
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, ErrStaleHandle
	}
	return s, nil
}

// Get returns the value behind a handle
func (a *Arena[T]) Get(h Handle) (T, error) {
	s, err := a.lookup(h)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.value, nil
}

// Retain adds a reference to the entry
func (a *Arena[T]) Retain(h Handle) error {
	s, err := a.lookup(h)
	if err != nil {
		return err
	}
	s.refs++
	return nil
}

// Release drops a reference, the last release turns the entry into garbage
func (a *Arena[T]) Release(h Handle) error {
	s, err := a.lookup(h)
	if err != nil {
		return err
	}
	s.refs--
	if s.refs == 0 {
		s.live = false
		a.garbage = append(a.garbage, h.index)
	}
	return nil
}

// Len returns the number of live entries
func (a *Arena[T]) Len() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].live {
			n++
		}
	}
	return n
}

// Collect hands every garbage entry to destroy and makes its slot reusable
func (a *Arena[T]) Collect(destroy func(T)) int {
	n := len(a.garbage)
	for _, idx := range a.garbage {
		s := &a.slots[idx]
		if destroy != nil {
			destroy(s.value)
		}
		var zero T
		s.value = zero
		a.free = append(a.free, idx)
	}
	a.garbage = a.garbage[:0]
	return n
}

// Drain destroys every entry regardless of its reference count, it is used
// when the owning device is torn down.
func (a *Arena[T]) Drain(destroy func(T)) {
	a.Collect(destroy)
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			if destroy != nil {
				destroy(s.value)
			}
			s.live = false
			s.refs = 0
			var zero T
			s.value = zero
			a.free = append(a.free, uint32(i))
		}
	}
}

// Buffer is a handle to a vertex or index buffer
type Buffer struct{ Handle }

// ShaderResourceView is a handle to a texture view readable by shaders
type ShaderResourceView struct{ Handle }

// Sampler is a handle to a texture sampler
type Sampler struct{ Handle }

// RenderTargetView is a handle to a color target which can be cleared and drawn into
type RenderTargetView struct{ Handle }

// PipelineState is a handle to a compiled pipeline
type PipelineState struct{ Handle }
