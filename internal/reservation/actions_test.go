package reservation

import (
	"reflect"
	"testing"
)

func TestApproveVisibleOnlyForUnapprovedCurrentOrFuture(t *testing.T) {
	cls := NewClassifier(manila)
	now := at("10:30")

	incoming := record("11:00", 2)
	if got := cls.Actions(incoming, now); !reflect.DeepEqual(got, []Action{Approve}) {
		t.Fatalf("incoming unapproved actions = %v", got)
	}

	past := record("08:00", 1)
	if got := cls.Actions(past, now); len(got) != 0 {
		t.Fatalf("past unapproved actions = %v", got)
	}
}

func TestActionsForApprovedRecords(t *testing.T) {
	cls := NewClassifier(manila)
	now := at("10:30")

	incoming := record("11:00", 2)
	incoming.IsApproved = true
	if got := cls.Actions(incoming, now); !reflect.DeepEqual(got, []Action{Cancel, MarkPaid}) {
		t.Fatalf("approved incoming = %v", got)
	}

	ongoing := record("10:00", 2)
	ongoing.IsApproved = true
	if got := cls.Actions(ongoing, now); !reflect.DeepEqual(got, []Action{CheckIn, MarkPaid}) {
		t.Fatalf("approved ongoing = %v", got)
	}

	ongoing.HasArrived, ongoing.IsPaid = true, true
	if got := cls.Actions(ongoing, now); !reflect.DeepEqual(got, []Action{CheckOut}) {
		t.Fatalf("arrived paid ongoing = %v", got)
	}

	overstayed := record("08:00", 1)
	overstayed.IsApproved, overstayed.HasArrived, overstayed.IsPaid = true, true, true
	if got := cls.Actions(overstayed, now); !reflect.DeepEqual(got, []Action{CheckOut}) {
		t.Fatalf("overstayed = %v", got)
	}

	unpaidArrived := record("10:00", 2)
	unpaidArrived.IsApproved, unpaidArrived.HasArrived = true, true
	if got := cls.Actions(unpaidArrived, now); !reflect.DeepEqual(got, []Action{MarkPaid}) {
		t.Fatalf("check-out must wait for payment, got %v", got)
	}
}

func TestCancelledRecordsHaveNoActions(t *testing.T) {
	cls := NewClassifier(manila)
	r := record("11:00", 2)
	r.IsCancelled = true
	if got := cls.Actions(r, at("10:30")); len(got) != 0 {
		t.Fatalf("actions = %v", got)
	}
}

func TestSelfCancel(t *testing.T) {
	cls := NewClassifier(manila)
	now := at("10:30")

	if !cls.CanSelfCancel(record("11:00", 1), now) {
		t.Fatalf("future reservation should be cancellable")
	}
	if cls.CanSelfCancel(record("10:00", 2), now) {
		t.Fatalf("started reservation should not be cancellable")
	}
	r := record("11:00", 1)
	r.IsCancelled = true
	if cls.CanSelfCancel(r, now) {
		t.Fatalf("cancelled reservation should not be cancellable")
	}
}

func TestParseAction(t *testing.T) {
	if a, err := ParseAction("check-in"); err != nil || a != CheckIn {
		t.Fatalf("got %s, %v", a, err)
	}
	if _, err := ParseAction("delete"); err == nil {
		t.Fatalf("expected error")
	}
}
