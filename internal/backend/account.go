package backend

import (
	"context"
	"net/http"

	"parkingportal/internal/entities"
)

func (c *Client) Profile(ctx context.Context, creds Credentials) (*entities.Profile, error) {
	var resp entities.Envelope[entities.Profile]
	if err := c.doAuthed(ctx, creds, http.MethodGet, "/user/profile/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) UpdateProfile(ctx context.Context, creds Credentials, in entities.ProfileUpdate) error {
	return c.doAuthed(ctx, creds, http.MethodPut, "/user/update/", in, nil)
}

func (c *Client) ChangePassword(ctx context.Context, creds Credentials, in entities.PasswordChange) error {
	return c.doAuthed(ctx, creds, http.MethodPut, "/user/change-password/", in, nil)
}

func (c *Client) UnreadNotifications(ctx context.Context, creds Credentials) ([]entities.Notification, error) {
	var resp entities.Envelope[[]entities.Notification]
	if err := c.doAuthed(ctx, creds, http.MethodGet, "/notifications/unread/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) UnreadCount(ctx context.Context, creds Credentials) (int, error) {
	var resp entities.UnreadCount
	if err := c.doAuthed(ctx, creds, http.MethodGet, "/notifications/count/", nil, &resp); err != nil {
		return 0, err
	}
	return resp.UnreadCount, nil
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context, creds Credentials) error {
	return c.doAuthed(ctx, creds, http.MethodPatch, "/notifications/mark-all-read/", nil, nil)
}
