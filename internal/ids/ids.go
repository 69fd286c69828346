// Package ids allocates effect identifiers. Each virtual controller context
// owns one allocator, keeping the engine free of process-wide mutable state.
package ids

import (
	"sync/atomic"

	"github.com/senna-k/ffbsim/internal/effect"
)

// Allocator hands out monotonically increasing effect identifiers starting
// at 1. It is safe for concurrent use.
type Allocator struct {
	next atomic.Uint32
}

func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns a fresh identifier, unique within this allocator.
func (a *Allocator) Next() effect.ID {
	return effect.ID(a.next.Add(1))
}
