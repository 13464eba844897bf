package reservation

import (
	"sort"
	"time"

	"parkingportal/internal/entities"
)

// UserRow is a reservation as listed in the owner's account area.
type UserRow struct {
	entities.Reservation
	Status       string    `json:"status"`
	Approval     string    `json:"approval"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	CanCancel    bool      `json:"can_cancel"`
	ReceiptReady bool      `json:"receipt_ready"`
}

func StatusLabel(r entities.Reservation) string {
	switch {
	case r.IsCancelled:
		return "Cancelled"
	case r.HasExited:
		return "Exited"
	case r.HasArrived:
		return "Arrived"
	}
	return "Upcoming"
}

func ApprovalLabel(r entities.Reservation) string {
	if r.IsApproved {
		return "Approved"
	}
	return "Pending Approval"
}

// UserRows labels and sorts the owner's reservations: active ones first,
// then newest start first.
func (c Classifier) UserRows(records []entities.Reservation, now time.Time) []UserRow {
	rows := make([]UserRow, 0, len(records))
	for _, r := range records {
		row := UserRow{
			Reservation:  r,
			Status:       StatusLabel(r),
			Approval:     ApprovalLabel(r),
			CanCancel:    c.CanSelfCancel(r, now),
			ReceiptReady: !r.IsCancelled,
		}
		if iv, err := c.Interval(r); err == nil {
			row.Start, row.End = iv.Start, iv.End
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ai, aj := active(rows[i].Reservation), active(rows[j].Reservation)
		if ai != aj {
			return ai
		}
		return rows[i].Start.After(rows[j].Start)
	})
	return rows
}

func active(r entities.Reservation) bool {
	return !r.IsCancelled && !r.HasExited
}
