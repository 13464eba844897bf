package entities

import (
	"bytes"
	"encoding/json"
)

// Label is a related object (location, slot type, vehicle type, user). The admin
// listing sends these as plain strings, the self listing as nested objects.
type Label struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Email       string `json:"email,omitempty"`
}

func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = Label{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label{Name: s}
		return nil
	}

	var obj struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Username    string `json:"username"`
		Address     string `json:"address"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Email       string `json:"email"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*l = Label{
		ID:          obj.ID,
		Name:        obj.Name,
		Address:     obj.Address,
		Description: obj.Description,
		Type:        obj.Type,
		Email:       obj.Email,
	}
	if l.Name == "" {
		l.Name = obj.Username
	}
	return nil
}

type Reservation struct {
	ID            int    `json:"id"`
	User          Label  `json:"user"`
	Location      Label  `json:"location"`
	SlotType      Label  `json:"slot_type"`
	VehicleType   Label  `json:"vehicle_type"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	DurationHours int    `json:"duration_hours"`
	PlateNumber   string `json:"plate_number"`
	VehicleMake   string `json:"vehicle_make"`
	VehicleModel  string `json:"vehicle_model"`
	Color         string `json:"color"`
	ModeOfPayment string `json:"mode_of_payment"`
	IsApproved    bool   `json:"is_approved"`
	IsPaid        bool   `json:"is_paid"`
	HasArrived    bool   `json:"has_arrived"`
	HasExited     bool   `json:"has_exited"`
	IsCancelled   bool   `json:"is_cancelled"`
}
