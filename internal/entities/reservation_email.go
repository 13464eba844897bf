package entities

type ReservationEmailData struct {
	UserName       string
	UserEmail      string
	UserPhone      string
	LocationName   string
	SlotType       string
	VehiclePlate   string
	VehicleModel   string
	StartFormatted string
	DurationHours  int
	Total          string
	Currency       string
	ModeOfPayment  string
	CurrentYear    int
}
