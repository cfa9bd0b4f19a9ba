package collector

import (
	"errors"
	"fmt"
)

var (
	ErrUpstream               = errors.New("upstream error")
	ErrMalformedResponse      = errors.New("malformed response")
	ErrUnrecognizedDateFormat = errors.New("unrecognized date format")
	ErrInvalidLimit           = errors.New("limit must be at least 1")
	ErrEmptyHistory           = errors.New("provider returned no history")
)

// UpstreamError reports a non-success status from the provider.
type UpstreamError struct {
	Source     string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d, body: %s", e.Source, e.StatusCode, e.Body)
}

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
