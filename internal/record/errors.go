package record

import "fmt"

// ParseError reports a line that looked structured but could not be decoded.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse record: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
