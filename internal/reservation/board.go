package reservation

import (
	"sync"
	"time"

	"parkingportal/internal/entities"
)

// Row is one reservation as shown on an admin tab.
type Row struct {
	entities.Reservation
	Bucket  Bucket    `json:"bucket"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Actions []Action  `json:"actions"`
}

// Board caches the admin reservation list between requests so actions can
// flip flags locally instead of re-fetching every record.
type Board struct {
	mu       sync.Mutex
	cls      Classifier
	records  []entities.Reservation
	loadedAt time.Time
}

func NewBoard(cls Classifier) *Board {
	return &Board{cls: cls}
}

func (b *Board) Replace(records []entities.Reservation, at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append([]entities.Reservation(nil), records...)
	b.loadedAt = at
}

func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.loadedAt.IsZero()
}

func (b *Board) LoadedAt() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadedAt
}

// Get returns a copy of the cached record.
func (b *Board) Get(id int) (entities.Reservation, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.records {
		if r.ID == id {
			return r, true
		}
	}
	return entities.Reservation{}, false
}

// Tab returns the records in bucket that match query, search first.
func (b *Board) Tab(bucket Bucket, query string, now time.Time) []Row {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := []Row{}
	for _, r := range b.records {
		if !Matches(r, query) {
			continue
		}
		if b.cls.Bucket(r, now) != bucket {
			continue
		}
		rows = append(rows, b.row(r, bucket, now))
	}
	return rows
}

func (b *Board) row(r entities.Reservation, bucket Bucket, now time.Time) Row {
	row := Row{Reservation: r, Bucket: bucket, Actions: b.cls.actionsIn(r, bucket, now)}
	if iv, err := b.cls.Interval(r); err == nil {
		row.Start, row.End = iv.Start, iv.End
	}
	return row
}

// Allowed checks a against the cached record. ok is false when id is not cached.
func (b *Board) Allowed(id int, a Action, now time.Time) (allowed, ok bool) {
	r, ok := b.Get(id)
	if !ok {
		return false, false
	}
	return b.cls.Allowed(r, b.cls.Bucket(r, now), a, now), true
}

// Apply flips the flag for a on the cached record after the backend accepted it.
func (b *Board) Apply(id int, a Action) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.records {
		if b.records[i].ID == id {
			Apply(&b.records[i], a)
			return true
		}
	}
	return false
}
