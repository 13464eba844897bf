// Package reservation derives display buckets, permitted admin actions and
// user-facing labels from backend reservation records.
package reservation

import (
	"fmt"
	"strings"
	"time"

	"parkingportal/internal/entities"
	"parkingportal/internal/utils"
)

type Bucket string

const (
	Ongoing   Bucket = "ongoing"
	Incoming  Bucket = "incoming"
	Past      Bucket = "past"
	Cancelled Bucket = "cancelled"
)

func ParseBucket(s string) (Bucket, error) {
	switch b := Bucket(strings.ToLower(strings.TrimSpace(s))); b {
	case Ongoing, Incoming, Past, Cancelled:
		return b, nil
	case "":
		return Ongoing, nil
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Interval is the half-open window [Start, End) a reservation occupies.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Classifier interprets reservation dates and times in Loc.
type Classifier struct {
	Loc *time.Location
}

func NewClassifier(loc *time.Location) Classifier {
	if loc == nil {
		loc = time.Local
	}
	return Classifier{Loc: loc}
}

func (c Classifier) Interval(r entities.Reservation) (Interval, error) {
	start, err := utils.ParseStart(r.Date, r.Time, c.Loc)
	if err != nil {
		return Interval{}, err
	}
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(r.DurationHours) * time.Hour),
	}, nil
}

// Bucket classifies r at now. The first matching rule wins: cancelled, then
// ongoing, incoming, past. A record whose start cannot be parsed is past.
func (c Classifier) Bucket(r entities.Reservation, now time.Time) Bucket {
	if r.IsCancelled {
		return Cancelled
	}
	iv, err := c.Interval(r)
	if err != nil {
		return Past
	}
	switch {
	case iv.Contains(now) && !r.HasExited:
		return Ongoing
	case now.Before(iv.Start):
		return Incoming
	default:
		return Past
	}
}

// Matches is a case-insensitive substring test over the user name, plate
// number and slot type. An empty query matches everything.
func Matches(r entities.Reservation, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{r.User.Name, r.PlateNumber, r.SlotType.Name} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
