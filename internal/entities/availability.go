package entities

import "github.com/shopspring/decimal"

type AvailabilityRequest struct {
	LocationID    int    `json:"location_id"`
	VehicleTypeID int    `json:"vehicle_type_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// SlotAvailability is one slot type offered at a location for the requested hour.
type SlotAvailability struct {
	SlotTypeID     int             `json:"slot_type_id,omitempty"`
	SlotType       string          `json:"slot_type"`
	RatePerHour    decimal.Decimal `json:"rate_per_hour"`
	AvailableSlots int             `json:"available_slots"`
	Type           string          `json:"type"`
	Description    string          `json:"description"`
}

type AvailabilityResponse struct {
	Results []SlotAvailability `json:"results"`
}
