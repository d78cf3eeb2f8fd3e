package listview

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPageSize matches InvalidPageSizeError via errors.Is.
	ErrInvalidPageSize = errors.New("listview: page size must be at least 1")
	// ErrInvalidPage matches InvalidPageError via errors.Is.
	ErrInvalidPage = errors.New("listview: page must be at least 1")
	// ErrInvalidLimit is returned by TopN when n is negative.
	ErrInvalidLimit = errors.New("listview: limit must not be negative")
)

// InvalidPageSizeError reports a page size below 1.
type InvalidPageSizeError struct {
	Size int
}

func (e *InvalidPageSizeError) Error() string {
	return fmt.Sprintf("listview: invalid page size %d (must be >= 1)", e.Size)
}

// Is lets callers test against ErrInvalidPageSize.
func (e *InvalidPageSizeError) Is(target error) bool {
	return target == ErrInvalidPageSize
}

// InvalidPageError reports a non-positive page number requested in StrictPage mode.
type InvalidPageError struct {
	Page int
}

func (e *InvalidPageError) Error() string {
	return fmt.Sprintf("listview: invalid page %d (must be >= 1)", e.Page)
}

// Is lets callers test against ErrInvalidPage.
func (e *InvalidPageError) Is(target error) bool {
	return target == ErrInvalidPage
}
