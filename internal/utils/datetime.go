package utils

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseStart combines a YYYY-MM-DD date and an HH:MM or HH:MM:SS time in loc.
func ParseStart(date, clock string, loc *time.Location) (time.Time, error) {
	clock = strings.TrimSpace(clock)
	layout := "15:04:05"
	if strings.Count(clock, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.ParseInLocation(DateLayout+" "+layout, strings.TrimSpace(date)+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start %q %q: %w", date, clock, err)
	}
	return t, nil
}

// FormatStart renders a start instant the way confirmation messages show it.
func FormatStart(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 at 03:04 PM")
}
