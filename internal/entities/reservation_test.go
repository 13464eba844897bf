package entities

import (
	"encoding/json"
	"testing"
)

func TestReservationDecodesAdminStringLabels(t *testing.T) {
	raw := `{"id":7,"user":"jdoe","location":"North Lot - 12 Main St","slot_type":"Covered","vehicle_type":"Car",
		"date":"2024-06-21","time":"10:00:00","duration_hours":2,"plate_number":"ABC-1234","is_approved":true}`

	var r Reservation
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.User.Name != "jdoe" || r.SlotType.Name != "Covered" || r.Location.Name != "North Lot - 12 Main St" {
		t.Fatalf("unexpected labels %+v", r)
	}
	if !r.IsApproved || r.DurationHours != 2 {
		t.Fatalf("unexpected flags %+v", r)
	}
}

func TestReservationDecodesNestedLabels(t *testing.T) {
	raw := `{"id":8,"user":{"id":3,"username":"jdoe","email":"j@example.com"},
		"location":{"id":1,"name":"North Lot","address":"12 Main St"},
		"slot_type":{"id":2,"name":"covered","description":"Roofed","type":"Covered"},
		"vehicle_type":{"id":1,"name":"Car"},"date":"2024-06-21","time":"10:00"}`

	var r Reservation
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.User.Name != "jdoe" || r.User.Email != "j@example.com" {
		t.Fatalf("user label = %+v", r.User)
	}
	if r.Location.Address != "12 Main St" || r.SlotType.ID != 2 {
		t.Fatalf("nested labels = %+v %+v", r.Location, r.SlotType)
	}
}

func TestLabelNull(t *testing.T) {
	var r Reservation
	if err := json.Unmarshal([]byte(`{"id":1,"user":null}`), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.User.Name != "" {
		t.Fatalf("expected empty user label")
	}
}
