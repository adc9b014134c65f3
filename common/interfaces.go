package common

import "github.com/xtls/xrelay/common/errors"

// Closable is the interface for objects that can release its resources.
type Closable interface {
	// Close release all resources used by this object, including goroutines.
	Close() error
}

// Close closes the obj if it is a Closable.
func Close(obj interface{}) error {
	if c, ok := obj.(Closable); ok {
		return c.Close()
	}
	return nil
}

// CloseIfExists call obj.Close() if obj is not nil.
func CloseIfExists(obj interface{}) error {
	if obj != nil {
		return Close(obj)
	}
	return nil
}

// Runnable is the interface for objects that can start to work and stop on demand.
type Runnable interface {
	// Start starts the runnable object. Upon the method returning nil, the object begins to function properly.
	Start() error

	Closable
}

// CloseAll closes every given object and combines the errors.
func CloseAll(objs ...interface{}) error {
	var errs []error
	for _, obj := range objs {
		if err := CloseIfExists(obj); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Combine(errs...)
}
