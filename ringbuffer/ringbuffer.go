// Package ringbuffer implements a single-producer, single-consumer
// lock-free byte queue sized to connect a PTY reader goroutine to a UI
// goroutine without either one blocking on a mutex.
package ringbuffer

import "sync/atomic"

// cacheLinePad fills out the remainder of a 64-byte cache line after a
// uint64 counter, so producer and consumer counters never share a line.
type cacheLinePad [64 - 8]byte

// RingBuffer is a bounded SPSC byte queue. One goroutine may call Write;
// a different (but only one) goroutine may call Read/Peek/Skip. Capacity
// is rounded up to the next power of two, and one slot is always left
// empty so a full buffer can be distinguished from an empty one.
type RingBuffer struct {
	capacity uint64
	mask     uint64
	buf      []byte

	head     atomic.Uint64
	_        cacheLinePad
	tail     atomic.Uint64
	_        cacheLinePad
}

// New creates a ring buffer able to hold at least capacity-1 bytes
// (capacity is rounded up to a power of two internally). A capacity of
// zero is treated as 1.
func New(capacity int) *RingBuffer {
	c := nextPowerOfTwo(capacity)
	return &RingBuffer{
		capacity: c,
		mask:     c - 1,
		buf:      make([]byte, c),
	}
}

func nextPowerOfTwo(n int) uint64 {
	if n <= 0 {
		return 1
	}
	v := uint64(n) - 1
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}

// Write copies as much of data as fits into the buffer without
// overwriting unread bytes, returning the number of bytes actually
// written. Producer-side only.
func (r *RingBuffer) Write(data []byte) int {
	head := r.head.Load()
	tail := r.tail.Load()

	avail := r.availableToWrite(head, tail)
	toWrite := len(data)
	if uint64(toWrite) > avail {
		toWrite = int(avail)
	}
	if toWrite == 0 {
		return 0
	}

	headIdx := head & r.mask
	firstChunk := toWrite
	if uint64(firstChunk) > r.capacity-headIdx {
		firstChunk = int(r.capacity - headIdx)
	}
	secondChunk := toWrite - firstChunk

	copy(r.buf[headIdx:], data[:firstChunk])
	if secondChunk > 0 {
		copy(r.buf[0:], data[firstChunk:toWrite])
	}

	r.head.Store(head + uint64(toWrite))
	return toWrite
}

// Read copies up to len(data) unread bytes into data, consuming them.
// Consumer-side only.
func (r *RingBuffer) Read(data []byte) int {
	tail := r.tail.Load()
	head := r.head.Load()

	avail := r.availableToRead(head, tail)
	toRead := len(data)
	if uint64(toRead) > avail {
		toRead = int(avail)
	}
	if toRead == 0 {
		return 0
	}

	tailIdx := tail & r.mask
	firstChunk := toRead
	if uint64(firstChunk) > r.capacity-tailIdx {
		firstChunk = int(r.capacity - tailIdx)
	}
	secondChunk := toRead - firstChunk

	copy(data[:firstChunk], r.buf[tailIdx:])
	if secondChunk > 0 {
		copy(data[firstChunk:toRead], r.buf[0:])
	}

	r.tail.Store(tail + uint64(toRead))
	return toRead
}

// Peek copies up to len(data) unread bytes into data without consuming
// them. Consumer-side only.
func (r *RingBuffer) Peek(data []byte) int {
	tail := r.tail.Load()
	head := r.head.Load()

	avail := r.availableToRead(head, tail)
	toPeek := len(data)
	if uint64(toPeek) > avail {
		toPeek = int(avail)
	}
	if toPeek == 0 {
		return 0
	}

	tailIdx := tail & r.mask
	firstChunk := toPeek
	if uint64(firstChunk) > r.capacity-tailIdx {
		firstChunk = int(r.capacity - tailIdx)
	}
	secondChunk := toPeek - firstChunk

	copy(data[:firstChunk], r.buf[tailIdx:])
	if secondChunk > 0 {
		copy(data[firstChunk:toPeek], r.buf[0:])
	}
	return toPeek
}

// Skip discards up to count unread bytes, returning how many were
// actually discarded. Consumer-side only.
func (r *RingBuffer) Skip(count int) int {
	tail := r.tail.Load()
	head := r.head.Load()

	avail := r.availableToRead(head, tail)
	toSkip := count
	if toSkip < 0 {
		toSkip = 0
	}
	if uint64(toSkip) > avail {
		toSkip = int(avail)
	}
	if toSkip > 0 {
		r.tail.Store(tail + uint64(toSkip))
	}
	return toSkip
}

// Size returns the number of bytes currently available to read.
func (r *RingBuffer) Size() int {
	head := r.head.Load()
	tail := r.tail.Load()
	return int(r.availableToRead(head, tail))
}

// Available returns the number of bytes that can be written before the
// buffer is full.
func (r *RingBuffer) Available() int {
	head := r.head.Load()
	tail := r.tail.Load()
	return int(r.availableToWrite(head, tail))
}

// IsEmpty reports whether the buffer currently holds no unread bytes.
func (r *RingBuffer) IsEmpty() bool { return r.Size() == 0 }

// IsFull reports whether the buffer has no room left to write.
func (r *RingBuffer) IsFull() bool { return r.Available() == 0 }

// Capacity returns the maximum number of bytes the buffer can hold at
// once (one slot less than the power-of-two-rounded allocation).
func (r *RingBuffer) Capacity() int { return int(r.capacity - 1) }

// Clear discards all unread data. Not safe to call concurrently with
// Write/Read from the producer/consumer goroutines.
func (r *RingBuffer) Clear() {
	r.head.Store(0)
	r.tail.Store(0)
}

func (r *RingBuffer) availableToRead(head, tail uint64) uint64 {
	return head - tail
}

func (r *RingBuffer) availableToWrite(head, tail uint64) uint64 {
	return (r.capacity - 1) - (head - tail)
}
