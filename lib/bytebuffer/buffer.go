// Package bytebuffer implements the single growable read/write region that
// sits beneath the binary encoder/decoder and the LZ4 framing layer.
//
// A Buffer tracks three offsets into one contiguous backing array:
// read <= flush <= write. Bytes written are invisible to readers until
// Flush moves flush up to write; ConfirmRead advances read and compacts
// the backing array once read crosses half its length, so the array never
// grows without bound from one side while shrinking on the other.
package bytebuffer

import "sync"

const defaultWindow = 4096

// pool recycles backing arrays across buffers the way the teacher's
// writebuffer.chunkPool recycles write chunks.
var pool = sync.Pool{}

// Buffer is a single-writer, single-reader growable byte region.
type Buffer struct {
	buf                     []byte
	readPos, flushPos, writePos int
	maxSize                 int
}

// New returns a Buffer with the given initial capacity. A positive maxSize
// stops the doubling: a grow whose doubled capacity would exceed maxSize
// allocates exactly the bytes needed instead. maxSize is not a hard limit;
// the buffer still grows past it when a write needs the room.
func New(initialSize, maxSize int) *Buffer {
	var buf []byte
	if c, ok := pool.Get().([]byte); ok && cap(c) >= initialSize {
		buf = c[:initialSize]
	} else {
		buf = make([]byte, initialSize)
	}
	return &Buffer{buf: buf, maxSize: maxSize}
}

// GetMemory returns a writable window of at least hint bytes (or a default
// window when hint is zero). The window never shrinks while outstanding:
// callers must ConfirmWrite before calling GetMemory again.
func (b *Buffer) GetMemory(hint int) []byte {
	if hint <= 0 {
		hint = defaultWindow
	}
	if avail := len(b.buf) - b.writePos; avail < hint {
		b.grow(hint)
	}
	return b.buf[b.writePos:]
}

func (b *Buffer) grow(hint int) {
	needed := b.writePos + hint
	newCap := len(b.buf)
	if newCap == 0 {
		newCap = defaultWindow
	}
	for newCap < needed {
		newCap *= 2
	}
	if b.maxSize > 0 && newCap > b.maxSize {
		newCap = needed
	}
	next := make([]byte, newCap)
	copy(next, b.buf[:b.writePos])
	b.buf = next
}

// ConfirmWrite advances write by n; n must not exceed the length of the
// window last returned by GetMemory.
func (b *Buffer) ConfirmWrite(n int) {
	b.writePos += n
}

// Flush makes bytes written so far visible to readers.
func (b *Buffer) Flush() {
	b.flushPos = b.writePos
}

// Read exposes the bytes in [read, flush).
func (b *Buffer) Read() []byte {
	return b.buf[b.readPos:b.flushPos]
}

// ConfirmRead advances read by n and compacts the backing array once read
// has consumed at least half of it, so unread-but-flushed bytes never pin
// an ever-growing prefix of discarded ones.
func (b *Buffer) ConfirmRead(n int) {
	b.readPos += n
	if b.readPos > 0 && b.readPos >= len(b.buf)/2 {
		b.compact()
	}
}

func (b *Buffer) compact() {
	remaining := b.writePos - b.readPos
	copy(b.buf, b.buf[b.readPos:b.writePos])
	b.flushPos -= b.readPos
	b.writePos = remaining
	b.readPos = 0
}

// Discard drops everything between flush and write, used when an encoder
// fails mid-write and the partial bytes must never reach a reader.
func (b *Buffer) Discard() {
	b.writePos = b.flushPos
}

// Len returns the number of bytes available to Read.
func (b *Buffer) Len() int {
	return b.flushPos - b.readPos
}

// Release returns the backing array to the pool. The Buffer must not be
// used afterwards.
func (b *Buffer) Release() {
	pool.Put(b.buf[:0])
	b.buf, b.readPos, b.flushPos, b.writePos = nil, 0, 0, 0
}
