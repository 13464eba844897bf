package service

import (
	"context"

	"parkingportal/internal/backend"
	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/session"
)

type AccountBackend interface {
	Profile(ctx context.Context, creds backend.Credentials) (*entities.Profile, error)
	UpdateProfile(ctx context.Context, creds backend.Credentials, in entities.ProfileUpdate) error
	ChangePassword(ctx context.Context, creds backend.Credentials, in entities.PasswordChange) error
	UnreadNotifications(ctx context.Context, creds backend.Credentials) ([]entities.Notification, error)
	UnreadCount(ctx context.Context, creds backend.Credentials) (int, error)
	MarkAllNotificationsRead(ctx context.Context, creds backend.Credentials) error
}

type AccountService struct {
	Backend AccountBackend
}

func NewAccountService(be AccountBackend) *AccountService {
	return &AccountService{Backend: be}
}

func (s *AccountService) Profile(ctx context.Context, sess *session.Context) (*entities.Profile, error) {
	return s.Backend.Profile(ctx, sess)
}

func (s *AccountService) UpdateProfile(ctx context.Context, sess *session.Context, in entities.ProfileUpdate) error {
	if in.FirstName == "" && in.LastName == "" && in.Username == "" {
		return apperrors.NewValidationError("", "nothing to update")
	}
	if err := s.Backend.UpdateProfile(ctx, sess, in); err != nil {
		return err
	}
	if in.Username != "" {
		sess.User.Username = in.Username
	}
	return nil
}

func (s *AccountService) ChangePassword(ctx context.Context, sess *session.Context, in entities.PasswordChange) error {
	if in.OldPassword == "" {
		return apperrors.NewValidationError("old_password", "is required")
	}
	if len(in.NewPassword) < 8 {
		return apperrors.NewValidationError("new_password", "must be at least 8 characters")
	}
	return s.Backend.ChangePassword(ctx, sess, in)
}

func (s *AccountService) Notifications(ctx context.Context, sess *session.Context) ([]entities.Notification, error) {
	return s.Backend.UnreadNotifications(ctx, sess)
}

func (s *AccountService) UnreadCount(ctx context.Context, sess *session.Context) (int, error) {
	return s.Backend.UnreadCount(ctx, sess)
}

func (s *AccountService) MarkAllRead(ctx context.Context, sess *session.Context) error {
	return s.Backend.MarkAllNotificationsRead(ctx, sess)
}
