package buf

import (
	"io"
	"sync"

	"github.com/xtls/xrelay/common/errors"
)

const (
	// Size of a regular buffer.
	Size = 8192
)

var ErrBufferFull = errors.New("buffer is full")

var pool = sync.Pool{
	New: func() interface{} {
		return make([]byte, Size)
	},
}

// Buffer is a recyclable allocation of a byte array. Buffer.Release() recycles
// the buffer into an internal buffer pool, in order to recreate a buffer more
// quickly.
type Buffer struct {
	v     []byte
	start int32
	end   int32
}

// New creates a Buffer with 0 length and 8K capacity.
func New() *Buffer {
	b, ok := pool.Get().([]byte)
	if !ok || cap(b) < Size {
		b = make([]byte, Size)
	}
	return &Buffer{v: b[:Size:Size]}
}

// Release recycles the buffer into an internal buffer pool.
// The used range is zeroed since it may have held plaintext.
func (b *Buffer) Release() {
	if b == nil || b.v == nil {
		return
	}
	p := b.v
	clear(p[b.start:b.end])
	b.v = nil
	b.Clear()
	pool.Put(p) // nolint: staticcheck
}

// Clear clears the content of the buffer, results an empty buffer with Len() = 0.
func (b *Buffer) Clear() {
	b.start = 0
	b.end = 0
}

// Bytes returns the content bytes of this Buffer.
func (b *Buffer) Bytes() []byte {
	return b.v[b.start:b.end]
}

// Extend increases the buffer size by n bytes, and returns the extended part.
// It panics if n is negative or exceeds the available capacity.
func (b *Buffer) Extend(n int32) []byte {
	end := b.end + n
	if n < 0 || end > int32(len(b.v)) {
		panic("extending out of bound")
	}
	ext := b.v[b.end:end]
	b.end = end
	return ext
}

// Len returns the length of the buffer content.
func (b *Buffer) Len() int32 {
	if b == nil {
		return 0
	}
	return b.end - b.start
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Write implements Write method in io.Writer.
func (b *Buffer) Write(data []byte) (int, error) {
	n := copy(b.v[b.end:], data)
	b.end += int32(n)
	if n < len(data) {
		return n, ErrBufferFull
	}
	return n, nil
}

// ReadFrom reads once from reader into at most size bytes of free space.
// A size of zero or more than the free space means all of it.
func (b *Buffer) ReadFrom(reader io.Reader, size int32) (int32, error) {
	free := int32(len(b.v)) - b.end
	if size <= 0 || size > free {
		size = free
	}
	n, err := reader.Read(b.v[b.end : b.end+size])
	b.end += int32(n)
	return int32(n), err
}
