package model

import "fmt"

// SummaryError is attached to a summary file that could not be turned into
// a run record.
type SummaryError struct {
	Category string
	File     string
	Err      error
}

func (e *SummaryError) Error() string {
	return fmt.Sprintf("%s/%s: %v", e.Category, e.File, e.Err)
}

func (e *SummaryError) Unwrap() error {
	return e.Err
}
