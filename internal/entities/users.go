package entities

import "strings"

type AdminUser struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsActive   bool   `json:"is_active"`
	DateJoined string `json:"date_joined"`
}

func (u AdminUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type UserIDRequest struct {
	UserID int `json:"user_id"`
}
