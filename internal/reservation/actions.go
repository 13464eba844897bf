package reservation

import (
	"fmt"
	"time"

	"parkingportal/internal/entities"
)

type Action string

const (
	Approve  Action = "approve"
	CheckIn  Action = "check-in"
	CheckOut Action = "check-out"
	Cancel   Action = "cancel"
	MarkPaid Action = "mark-paid"
)

var allActions = []Action{Approve, CheckIn, CheckOut, Cancel, MarkPaid}

func ParseAction(s string) (Action, error) {
	for _, a := range allActions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Allowed reports whether an admin may run a on r, given its bucket b at now.
func (c Classifier) Allowed(r entities.Reservation, b Bucket, a Action, now time.Time) bool {
	switch a {
	case Approve:
		return (b == Ongoing || b == Incoming) && !r.IsApproved
	case CheckIn:
		return b == Ongoing && r.IsApproved && !r.HasArrived && !r.IsCancelled
	case CheckOut:
		return (b == Ongoing || b == Past) && r.HasArrived && !r.HasExited && r.IsPaid
	case Cancel:
		if b != Incoming || !r.IsApproved || r.IsCancelled || r.HasExited {
			return false
		}
		iv, err := c.Interval(r)
		return err == nil && now.Before(iv.Start)
	case MarkPaid:
		return (b == Ongoing || b == Incoming) && r.IsApproved && !r.IsPaid && !r.IsCancelled
	}
	return false
}

// Actions lists the admin actions visible for r at now, in display order.
func (c Classifier) Actions(r entities.Reservation, now time.Time) []Action {
	return c.actionsIn(r, c.Bucket(r, now), now)
}

func (c Classifier) actionsIn(r entities.Reservation, b Bucket, now time.Time) []Action {
	out := []Action{}
	for _, a := range allActions {
		if c.Allowed(r, b, a, now) {
			out = append(out, a)
		}
	}
	return out
}

// Apply sets the flag a successful action moves forward.
func Apply(r *entities.Reservation, a Action) {
	switch a {
	case Approve:
		r.IsApproved = true
	case CheckIn:
		r.HasArrived = true
	case CheckOut:
		r.HasArrived = true
		r.HasExited = true
	case Cancel:
		r.IsCancelled = true
	case MarkPaid:
		r.IsPaid = true
	}
}

// CanSelfCancel reports whether the owner may still cancel r.
func (c Classifier) CanSelfCancel(r entities.Reservation, now time.Time) bool {
	if r.IsCancelled || r.HasExited {
		return false
	}
	iv, err := c.Interval(r)
	return err == nil && now.Before(iv.Start)
}
