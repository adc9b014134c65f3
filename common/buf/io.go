package buf

import (
	"io"
)

// ReadChunk performs a single read of at most size bytes from reader. The
// returned buffer may hold data even when err is not nil, and must be
// released by the caller in either case. Errors are tagged as read errors.
func ReadChunk(reader io.Reader, size int32) (*Buffer, error) {
	b := New()
	_, err := b.ReadFrom(reader, size)
	if err != nil {
		return b, readError{err}
	}
	return b, nil
}

// WriteChunk writes all of b to writer. Anything less than a full write is
// an error, reported as io.ErrShortWrite if the writer did not give one.
func WriteChunk(writer io.Writer, b []byte) error {
	n, err := writer.Write(b)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return writeError{err}
	}
	return nil
}
