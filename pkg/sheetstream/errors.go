package sheetstream

import (
	"errors"
	"fmt"
)

// ErrNoSheets indicates a workbook was written with no sheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// ErrDuplicateSheet indicates two sheets share a name.
var ErrDuplicateSheet = errors.New("duplicate sheet name")

// WriteError represents a failure while writing one package part.
type WriteError struct {
	Part string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error in part %q: %v", e.Part, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewWriteError creates a new WriteError.
func NewWriteError(part string, err error) *WriteError {
	return &WriteError{Part: part, Err: err}
}
