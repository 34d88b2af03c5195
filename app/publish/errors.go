package publish

import "fmt"

// Kind classifies publish failures for the run summary.
type Kind string

const (
	KindAuth    Kind = "auth"
	KindQuota   Kind = "quota"
	KindPayload Kind = "payload"
	KindOther   Kind = "other"
)

// Error is a typed publish failure. The orchestrator records it and
// moves on; publishes are never retried within a run.
type Error struct {
	Kind   Kind
	Status int
	Msg    string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("publish failed (%s, status %d): %s", e.Kind, e.Status, e.Msg)
	}
	return fmt.Sprintf("publish failed (%s): %s", e.Kind, e.Msg)
}

func kindForStatus(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case status == 429:
		return KindQuota
	case status >= 400 && status < 500:
		return KindPayload
	default:
		return KindOther
	}
}
