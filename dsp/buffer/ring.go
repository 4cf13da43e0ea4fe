package buffer

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrOverflow is returned when a push would exceed the ring capacity.
var ErrOverflow = errors.New("buffer: ring overflow")

// Ring is a single-producer/single-consumer circular sample queue.
//
// Push, PushSlice and Free belong to the producer; Pop, PopSlice, Peek and
// Available belong to the consumer. Cursors grow monotonically and are
// reduced modulo the capacity on access, so capacity must be a power of two.
type Ring struct {
	buf  []float64
	mask uint64

	// write is only stored by the producer, read only by the consumer.
	write atomic.Uint64
	read  atomic.Uint64
}

// NewRing returns a zero-filled ring with the given power-of-two capacity.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("buffer: ring capacity must be a positive power of two: %d", capacity)
	}

	return &Ring{buf: make([]float64, capacity), mask: uint64(capacity - 1)}, nil
}

// NewRingWithStorage builds a ring on caller-owned storage without copying.
// len(storage) must be a positive power of two. The ring owns storage from
// then on; the caller must not touch it.
func NewRingWithStorage(storage []float64) (*Ring, error) {
	n := len(storage)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("buffer: ring storage length must be a positive power of two: %d", n)
	}

	return &Ring{buf: storage, mask: uint64(n - 1)}, nil
}

// Cap returns the fixed capacity in samples.
func (r *Ring) Cap() int { return len(r.buf) }

// Available returns the number of samples ready to be read.
func (r *Ring) Available() int {
	return int(r.write.Load() - r.read.Load())
}

// Free returns the number of samples that can be pushed without overflow.
func (r *Ring) Free() int {
	return len(r.buf) - r.Available()
}

// Push appends one sample. It returns ErrOverflow when the ring is full and
// leaves the ring unchanged.
func (r *Ring) Push(v float64) error {
	w := r.write.Load()
	if w-r.read.Load() >= uint64(len(r.buf)) {
		return ErrOverflow
	}

	r.buf[w&r.mask] = v
	r.write.Store(w + 1)

	return nil
}

// PushSlice appends all of src or nothing.
func (r *Ring) PushSlice(src []float64) error {
	w := r.write.Load()
	used := w - r.read.Load()
	if used+uint64(len(src)) > uint64(len(r.buf)) {
		return ErrOverflow
	}

	for i, v := range src {
		r.buf[(w+uint64(i))&r.mask] = v
	}

	r.write.Store(w + uint64(len(src)))

	return nil
}

// Pop removes and returns the oldest sample. ok is false when empty.
func (r *Ring) Pop() (v float64, ok bool) {
	rd := r.read.Load()
	if rd == r.write.Load() {
		return 0, false
	}

	v = r.buf[rd&r.mask]
	r.read.Store(rd + 1)

	return v, true
}

// PopSlice fills dst with the oldest len(dst) samples. It reads nothing and
// returns false when fewer than len(dst) samples are available.
func (r *Ring) PopSlice(dst []float64) bool {
	rd := r.read.Load()
	if r.write.Load()-rd < uint64(len(dst)) {
		return false
	}

	for i := range dst {
		dst[i] = r.buf[(rd+uint64(i))&r.mask]
	}

	r.read.Store(rd + uint64(len(dst)))

	return true
}

// Peek returns the sample i positions past the read cursor without consuming.
func (r *Ring) Peek(i int) (float64, bool) {
	rd := r.read.Load()
	if i < 0 || uint64(i) >= r.write.Load()-rd {
		return 0, false
	}

	return r.buf[(rd+uint64(i))&r.mask], true
}

// Reset discards all content and zeroes storage. Both producer and consumer
// must be quiescent.
func (r *Ring) Reset() {
	for i := range r.buf {
		r.buf[i] = 0
	}

	r.read.Store(0)
	r.write.Store(0)
}
