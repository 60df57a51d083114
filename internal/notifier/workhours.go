package notifier

import "time"

// WorkHours describes the local-time window [Start, End) during which
// notifications may be sent. A window with Start == End never suppresses.
type WorkHours struct {
	Start    int // hour, 0-23
	End      int // hour, 1-24
	Location *time.Location
}

// Contains reports whether t falls inside the window.
func (w WorkHours) Contains(t time.Time) bool {
	if w.Start == w.End {
		return true
	}
	if w.Location != nil {
		t = t.In(w.Location)
	}
	h := t.Hour()
	if w.Start < w.End {
		return h >= w.Start && h < w.End
	}
	// Window crossing midnight, e.g. 22-6
	return h >= w.Start || h < w.End
}
