package utils

import (
	"testing"
	"time"
)

func TestParseStartAcceptsBothClockLayouts(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	a, err := ParseStart("2024-06-21", "10:00", loc)
	if err != nil {
		t.Fatalf("HH:MM: %v", err)
	}
	b, err := ParseStart("2024-06-21", "10:00:00", loc)
	if err != nil {
		t.Fatalf("HH:MM:SS: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("expected equal instants, got %s and %s", a, b)
	}
	if a.UTC().Hour() != 2 {
		t.Fatalf("expected 02:00 UTC, got %s", a.UTC())
	}
}

func TestParseStartRejectsGarbage(t *testing.T) {
	if _, err := ParseStart("21/06/2024", "10:00", time.UTC); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNormalizePlate(t *testing.T) {
	if got := NormalizePlate("  abc   1234 "); got != "ABC 1234" {
		t.Fatalf("got %q", got)
	}
}
