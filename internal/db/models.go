package db

import "time"

// PendingReservation is the single transient slot a browser session holds while
// it is away on an external checkout page.
type PendingReservation struct {
	SessionKey string
	WizardID   string
	Payload    []byte
	CreatedAt  time.Time
}

type PortalSession struct {
	Key          string
	UserID       int
	Username     string
	Email        string
	FullName     string
	IsSuperuser  bool
	IsStaff      bool
	AccessToken  string
	RefreshToken string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}
