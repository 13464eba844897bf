package backend

import (
	"context"
	"net/http"

	"parkingportal/internal/entities"
)

func (c *Client) DashboardSummary(ctx context.Context, creds Credentials) (*entities.DashboardSummary, error) {
	var out entities.DashboardSummary
	if err := c.doAuthed(ctx, creds, http.MethodGet, "/admin/dashboard/summary/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Users(ctx context.Context, creds Credentials) ([]entities.AdminUser, error) {
	var out []entities.AdminUser
	if err := c.doAuthed(ctx, creds, http.MethodGet, "/users/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ActivateUser(ctx context.Context, creds Credentials, id int) error {
	return c.doAuthed(ctx, creds, http.MethodPost, "/admin/activate-user/", entities.UserIDRequest{UserID: id}, nil)
}

func (c *Client) DeactivateUser(ctx context.Context, creds Credentials, id int) error {
	return c.doAuthed(ctx, creds, http.MethodPost, "/admin/deactivate-user/", entities.UserIDRequest{UserID: id}, nil)
}
