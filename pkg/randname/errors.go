package randname

import "errors"

var (
	// ErrExhaustedAttempts is returned when the retry budget runs out
	// without finding a free base id.
	ErrExhaustedAttempts = errors.New("exhausted attempts to allocate a unique name")
)
