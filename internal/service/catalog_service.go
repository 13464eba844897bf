package service

import (
	"context"
	"strings"

	"parkingportal/internal/backend"
	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/session"
)

type CatalogBackend interface {
	Locations(ctx context.Context) ([]entities.Location, error)
	LocationsAndVehicles(ctx context.Context) (*entities.LocationsAndVehicles, error)
	CreateLocation(ctx context.Context, creds backend.Credentials, in entities.LocationInput) error
	UpdateLocation(ctx context.Context, creds backend.Credentials, id int, in entities.LocationInput) error
	DeleteLocation(ctx context.Context, creds backend.Credentials, id int) error
}

type CatalogService struct {
	Backend CatalogBackend
}

func NewCatalogService(be CatalogBackend) *CatalogService {
	return &CatalogService{Backend: be}
}

func (s *CatalogService) Locations(ctx context.Context) ([]entities.Location, error) {
	return s.Backend.Locations(ctx)
}

// Options feeds the search form that starts a booking.
func (s *CatalogService) Options(ctx context.Context) (*entities.LocationsAndVehicles, error) {
	return s.Backend.LocationsAndVehicles(ctx)
}

func validateLocation(in entities.LocationInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("name", "is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return apperrors.NewValidationError("address", "is required")
	}
	for _, p := range in.SlotPricings {
		if p.SlotTypeID <= 0 || p.VehicleTypeID <= 0 {
			return apperrors.NewValidationError("slot_pricings", "slot and vehicle type are required")
		}
		if p.RatePerHour.IsNegative() || p.AvailableSlots < 0 {
			return apperrors.NewValidationError("slot_pricings", "rate and available slots cannot be negative")
		}
	}
	return nil
}

func (s *CatalogService) CreateLocation(ctx context.Context, sess *session.Context, in entities.LocationInput) error {
	if err := validateLocation(in); err != nil {
		return err
	}
	return s.Backend.CreateLocation(ctx, sess, in)
}

func (s *CatalogService) UpdateLocation(ctx context.Context, sess *session.Context, id int, in entities.LocationInput) error {
	if err := validateLocation(in); err != nil {
		return err
	}
	return s.Backend.UpdateLocation(ctx, sess, id, in)
}

func (s *CatalogService) DeleteLocation(ctx context.Context, sess *session.Context, id int) error {
	return s.Backend.DeleteLocation(ctx, sess, id)
}
