package entities

import "github.com/shopspring/decimal"

type VehicleType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type SlotPricing struct {
	SlotType        string          `json:"slot_type"`
	SlotDescription string          `json:"slot_description"`
	VehicleType     string          `json:"vehicle_type"`
	RatePerHour     decimal.Decimal `json:"rate_per_hour"`
	AvailableSlots  int             `json:"available_slots"`
}

type Location struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	SlotPricings []SlotPricing `json:"slot_pricings,omitempty"`
}

type LocationsAndVehicles struct {
	Locations    []Location    `json:"locations"`
	VehicleTypes []VehicleType `json:"vehicle_types"`
}

type SlotPricingInput struct {
	SlotTypeID     int             `json:"slot_type_id"`
	VehicleTypeID  int             `json:"vehicle_type_id"`
	RatePerHour    decimal.Decimal `json:"rate_per_hour"`
	AvailableSlots int             `json:"available_slots"`
}

type LocationInput struct {
	Name         string             `json:"name"`
	Address      string             `json:"address"`
	SlotPricings []SlotPricingInput `json:"slot_pricings"`
}
