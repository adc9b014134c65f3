package buf

import (
	"github.com/xtls/xrelay/common/signal"
)

type dataHandler func(*Buffer)

// CopyHandler runs the copy options on every chunk moved between endpoints.
type CopyHandler struct {
	onData []dataHandler
}

// SizeCounter is for counting bytes copied by a relay.
type SizeCounter struct {
	Size int64
}

// CopyOption is an option for copying data.
type CopyOption func(*CopyHandler)

// NewCopyHandler applies options to a new handler.
func NewCopyHandler(options ...CopyOption) *CopyHandler {
	handler := new(CopyHandler)
	for _, option := range options {
		option(handler)
	}
	return handler
}

// Handle notifies every option of b.
func (h *CopyHandler) Handle(b *Buffer) {
	for _, handler := range h.onData {
		handler(b)
	}
}

// UpdateActivity is a CopyOption to update activity on each data copy operation.
func UpdateActivity(timer signal.ActivityUpdater) CopyOption {
	return func(handler *CopyHandler) {
		handler.onData = append(handler.onData, func(*Buffer) {
			timer.Update()
		})
	}
}

// CountSize is a CopyOption that sums the total size of data copied into the given SizeCounter.
func CountSize(sc *SizeCounter) CopyOption {
	return func(handler *CopyHandler) {
		handler.onData = append(handler.onData, func(b *Buffer) {
			sc.Size += int64(b.Len())
		})
	}
}

type readError struct {
	error
}

func (e readError) Error() string {
	return e.error.Error()
}

func (e readError) Unwrap() error {
	return e.error
}

// IsReadError returns true if the error comes from reading.
func IsReadError(err error) bool {
	_, ok := err.(readError)
	return ok
}

type writeError struct {
	error
}

func (e writeError) Error() string {
	return e.error.Error()
}

func (e writeError) Unwrap() error {
	return e.error
}

// IsWriteError returns true if the error comes from writing.
func IsWriteError(err error) bool {
	_, ok := err.(writeError)
	return ok
}
