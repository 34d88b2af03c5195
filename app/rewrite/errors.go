package rewrite

import (
	"errors"
	"fmt"
)

// Error is a typed rewrite failure. Transient errors (timeouts, rate
// limits, upstream 5xx) qualify for bounded retry; permanent errors
// (bad credentials, malformed requests) fail the article immediately.
type Error struct {
	Transient bool
	Status    int
	Msg       string
}

func (e *Error) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	if e.Status != 0 {
		return fmt.Sprintf("rewrite failed (%s, status %d): %s", kind, e.Status, e.Msg)
	}
	return fmt.Sprintf("rewrite failed (%s): %s", kind, e.Msg)
}

// IsTransient reports whether err is a rewrite failure worth retrying.
func IsTransient(err error) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Transient
	}
	return false
}
