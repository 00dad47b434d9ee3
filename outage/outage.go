package outage

import "time"

// Outage is a scheduled maintenance window. End is nil when the window has
// no defined end.
type Outage struct {
	ID    int64
	Title string
	Start time.Time
	End   *time.Time
}

// Equal compares all fields structurally. The waiter relies on this to
// detect records edited while it was sleeping, so pointer identity is not
// good enough.
func (o *Outage) Equal(other *Outage) bool {
	if o == nil || other == nil {
		return o == other
	}

	if o.ID != other.ID || o.Title != other.Title || !o.Start.Equal(other.Start) {
		return false
	}

	if (o.End == nil) != (other.End == nil) {
		return false
	}

	return o.End == nil || o.End.Equal(*other.End)
}

// HasEnded reports whether the window's end boundary has passed. The end
// instant itself counts as ended; a window without an end never ends.
func (o *Outage) HasEnded(now time.Time) bool {
	return o.End != nil && !now.Before(*o.End)
}

// IsOngoing reports whether now falls inside [Start, End). The start
// instant counts as ongoing.
func (o *Outage) IsOngoing(now time.Time) bool {
	return !o.Start.After(now) && !o.HasEnded(now)
}

// Countdown is the time left until the window opens. Only meaningful when
// positive.
func (o *Outage) Countdown(now time.Time) time.Duration {
	return o.Start.Sub(now)
}
