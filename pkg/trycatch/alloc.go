package trycatch

import (
	"errors"
	"fmt"
)

// ErrPayloadTooLarge is returned by HeapAllocator when a payload exceeds
// MaxPayload.
var ErrPayloadTooLarge = errors.New("exception payload exceeds allocator limit")

// Allocator accounts for exception payload storage. Allocate is called before
// a payload is created and may refuse it; Free is called exactly once for
// every successful Allocate.
type Allocator interface {
	Allocate(size uintptr) error
	Free(size uintptr)
}

// AllocStats is a snapshot of HeapAllocator accounting.
type AllocStats struct {
	Allocs    uint64
	Frees     uint64
	Live      int64
	LiveBytes int64
}

// HeapAllocator backs payloads with the Go heap. A zero MaxPayload means no
// limit.
type HeapAllocator struct {
	MaxPayload uintptr

	stats AllocStats
}

// Allocate implements Allocator.
func (a *HeapAllocator) Allocate(size uintptr) error {
	if a.MaxPayload > 0 && size > a.MaxPayload {
		return fmt.Errorf("%w: %d > %d bytes", ErrPayloadTooLarge, size, a.MaxPayload)
	}
	a.stats.Allocs++
	a.stats.Live++
	a.stats.LiveBytes += int64(size)
	return nil
}

// Free implements Allocator.
func (a *HeapAllocator) Free(size uintptr) {
	a.stats.Frees++
	a.stats.Live--
	a.stats.LiveBytes -= int64(size)
}

// Stats returns the current accounting snapshot.
func (a *HeapAllocator) Stats() AllocStats {
	return a.stats
}
