package waiter

import "errors"

// Terminal failure kinds. The waiter never retries; every anomaly aborts
// the wait and surfaces one of these via errors.Is.
var (
	ErrUsage         = errors.New("invalid options")
	ErrNotFound      = errors.New("outage not found")
	ErrOutageChanged = errors.New("outage changed while waiting")
	ErrAlreadyEnded  = errors.New("outage already ended")
)
