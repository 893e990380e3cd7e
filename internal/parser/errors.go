package parser

import "fmt"

// NormalizationError reports a structural problem with one uploaded file:
// malformed filename, unreadable workbook, or missing date column. Value-level
// problems (bad numbers, unparseable dates) never raise it.
type NormalizationError struct {
	Filename string
	Reason   string
	Err      error
}

func (e *NormalizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("normalize %s: %s: %v", e.Filename, e.Reason, e.Err)
	}
	return fmt.Sprintf("normalize %s: %s", e.Filename, e.Reason)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}
