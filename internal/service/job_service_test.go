package service

import (
	"context"
	"testing"
	"time"

	"parkingportal/internal/db"
)

type fakeJobRepo struct {
	expired []string
	deleted []string
}

func (f *fakeJobRepo) GetExpiredSessionKeys(context.Context) ([]string, error) {
	return f.expired, nil
}

func (f *fakeJobRepo) DeleteSessions(_ context.Context, keys []string) error {
	f.deleted = append(f.deleted, keys...)
	return nil
}

func TestSweepClearsAbandonedState(t *testing.T) {
	now := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
	repo := &fakeJobRepo{expired: []string{"gone"}}
	pending := newMemPending()
	_ = pending.Save(context.Background(), db.PendingReservation{SessionKey: "old", CreatedAt: now.Add(-3 * time.Hour)})
	_ = pending.Save(context.Background(), db.PendingReservation{SessionKey: "new", CreatedAt: now.Add(-time.Minute)})

	wizards := NewWizardStore()
	wizards.now = func() time.Time { return now }
	kept, _ := wizards.Create("alive", testOrigin())
	expiredOwner, _ := wizards.Create("gone", testOrigin())
	wizards.now = func() time.Time { return now.Add(-2 * time.Hour) }
	idle, _ := wizards.Create("alive", testOrigin())

	svc := NewJobService(repo, pending, wizards, nil, 2*time.Hour, time.Hour)
	svc.now = func() time.Time { return now }

	if err := svc.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if pending.has("old") || !pending.has("new") {
		t.Fatalf("pending = %v", pending.slots)
	}
	if !wizards.Exists("alive", kept.ID()) {
		t.Fatalf("active wizard should survive")
	}
	if wizards.Exists("alive", idle.ID()) || wizards.Exists("gone", expiredOwner.ID()) {
		t.Fatalf("idle and expired-session wizards should be dropped")
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "gone" {
		t.Fatalf("deleted = %v", repo.deleted)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	svc := NewJobService(&fakeJobRepo{}, newMemPending(), NewWizardStore(), nil, time.Hour, time.Hour)
	if _, err := svc.Start("not a schedule"); err == nil {
		t.Fatalf("expected error")
	}
}
