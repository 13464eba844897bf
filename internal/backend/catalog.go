package backend

import (
	"context"
	"fmt"
	"net/http"

	"parkingportal/internal/entities"
)

func (c *Client) Locations(ctx context.Context) ([]entities.Location, error) {
	var out []entities.Location
	if _, err := c.doJSON(ctx, http.MethodGet, "/locations/", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LocationsAndVehicles(ctx context.Context) (*entities.LocationsAndVehicles, error) {
	var out entities.LocationsAndVehicles
	if _, err := c.doJSON(ctx, http.MethodGet, "/data/locations-vehicles/", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateLocation(ctx context.Context, creds Credentials, in entities.LocationInput) error {
	return c.doAuthed(ctx, creds, http.MethodPost, "/locations/create/", in, nil)
}

func (c *Client) UpdateLocation(ctx context.Context, creds Credentials, id int, in entities.LocationInput) error {
	return c.doAuthed(ctx, creds, http.MethodPut, fmt.Sprintf("/locations/update/%d/", id), in, nil)
}

func (c *Client) DeleteLocation(ctx context.Context, creds Credentials, id int) error {
	return c.doAuthed(ctx, creds, http.MethodDelete, fmt.Sprintf("/locations/delete/%d/", id), nil, nil)
}
