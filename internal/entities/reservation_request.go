package entities

// ReservationRequest is the flat creation payload. Related objects are sent as ids.
type ReservationRequest struct {
	Location      int    `json:"location"`
	SlotType      int    `json:"slot_type"`
	VehicleType   int    `json:"vehicle_type"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	DurationHours int    `json:"duration_hours"`
	PlateNumber   string `json:"plate_number"`
	VehicleMake   string `json:"vehicle_make"`
	VehicleModel  string `json:"vehicle_model"`
	Color         string `json:"color"`
	ModeOfPayment string `json:"mode_of_payment"`
	IsPaid        bool   `json:"is_paid"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
