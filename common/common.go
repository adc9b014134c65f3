// Package common contains common utilities that are shared among other packages.
// See each sub-package for detail.
package common

// Must panics if err is not nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must2 panics if the second parameter is not nil, otherwise returns the first parameter.
func Must2[T any](v T, err error) T {
	Must(err)
	return v
}
