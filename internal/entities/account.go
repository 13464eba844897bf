package entities

type Profile struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type ProfileUpdate struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

type PasswordChange struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type Notification struct {
	ID          int    `json:"id"`
	Message     string `json:"message"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
	Reservation *int   `json:"reservation,omitempty"`
}

// Envelope is the {success, message, data} wrapper used by the account endpoints.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

type UnreadCount struct {
	Success     bool `json:"success"`
	UnreadCount int  `json:"unread_count"`
}
