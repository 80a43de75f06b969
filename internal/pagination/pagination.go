// Package pagination implements the page/size window contract used by bulk
// listing endpoints: a zero-indexed slice [page*size, page*size+size) over a
// stable ordering, plus an independently estimated total count.
package pagination

import (
	"errors"
	"strconv"
)

const (
	// DefaultPage is the page used when the caller omits the page parameter
	DefaultPage = 0
	// MaxPageSize caps the window size, and is the default when the caller
	// omits the size parameter
	MaxPageSize = 100
)

var (
	// ErrInvalidPage indicates a page value that is not a non-negative integer
	ErrInvalidPage = errors.New("page must be a non-negative integer")
	// ErrInvalidSize indicates a size value that is not a positive integer
	ErrInvalidSize = errors.New("size must be a positive integer")
)

// Window describes one page of an ordered collection
type Window struct {
	Page int
	Size int
}

// Offset returns the number of items to skip before the window starts
func (w Window) Offset() int {
	return w.Page * w.Size
}

// Limit returns the maximum number of items in the window
func (w Window) Limit() int {
	return w.Size
}

// ParseQuery validates raw page/size query values into a Window. Missing
// values fall back to the documented defaults (page 0, size MaxPageSize);
// malformed or out-of-domain values are rejected rather than silently
// producing unbounded windows. Sizes above MaxPageSize are clamped.
func ParseQuery(pageValue, sizeValue string) (Window, error) {
	w := Window{Page: DefaultPage, Size: MaxPageSize}

	if pageValue != "" {
		page, err := strconv.Atoi(pageValue)
		if err != nil || page < 0 {
			return Window{}, ErrInvalidPage
		}
		w.Page = page
	}

	if sizeValue != "" {
		size, err := strconv.Atoi(sizeValue)
		if err != nil || size < 1 {
			return Window{}, ErrInvalidSize
		}
		if size > MaxPageSize {
			size = MaxPageSize
		}
		w.Size = size
	}

	return w, nil
}
