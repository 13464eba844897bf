package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type JobRepository interface {
	GetExpiredSessionKeys(ctx context.Context) ([]string, error)
	DeleteSessions(ctx context.Context, keys []string) error
}

type PendingSweeper interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// JobService runs the periodic cleanup of abandoned portal state.
type JobService struct {
	Repo       JobRepository
	Pending    PendingSweeper
	Wizards    *WizardStore
	Admin      *AdminService
	PendingTTL time.Duration
	WizardTTL  time.Duration
	now        func() time.Time
}

func NewJobService(repo JobRepository, pending PendingSweeper, wizards *WizardStore, admin *AdminService, pendingTTL, wizardTTL time.Duration) *JobService {
	return &JobService{
		Repo:       repo,
		Pending:    pending,
		Wizards:    wizards,
		Admin:      admin,
		PendingTTL: pendingTTL,
		WizardTTL:  wizardTTL,
		now:        time.Now,
	}
}

// Start schedules Sweep on spec (standard cron syntax or @every) and returns
// the running scheduler.
func (s *JobService) Start(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Sweep(ctx); err != nil {
			log.Printf("Cron Job: sweep failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule sweep %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}

func (s *JobService) Sweep(ctx context.Context) error {
	log.Println("Cron Job: sweeping abandoned portal state...")
	now := s.now()

	n, err := s.Pending.DeleteOlderThan(ctx, now.Add(-s.PendingTTL))
	if err != nil {
		return fmt.Errorf("cron job: failed to delete abandoned pending reservations: %w", err)
	}
	if n > 0 {
		log.Printf("Cron Job: deleted %d abandoned pending reservations.", n)
	}

	if w := s.Wizards.Sweep(now.Add(-s.WizardTTL)); w > 0 {
		log.Printf("Cron Job: discarded %d idle booking wizards.", w)
	}
	if s.Admin != nil {
		if b := s.Admin.SweepBoards(now.Add(-s.WizardTTL)); b > 0 {
			log.Printf("Cron Job: dropped %d stale admin boards.", b)
		}
	}

	keys, err := s.Repo.GetExpiredSessionKeys(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to get expired sessions: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	for _, key := range keys {
		s.Wizards.DeleteOwner(key)
		if s.Admin != nil {
			s.Admin.EndSession(ctx, key)
		}
	}
	if err := s.Repo.DeleteSessions(ctx, keys); err != nil {
		return fmt.Errorf("cron job: failed to delete expired sessions: %w", err)
	}
	log.Printf("Cron Job: removed %d expired sessions.", len(keys))
	return nil
}
