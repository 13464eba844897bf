package service

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"strings"

	"parkingportal/internal/config"
	"parkingportal/internal/entities"
)

var reservationEmailTmpl = template.Must(template.New("reservation_email").Parse(`<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #1f2937;">
<h2>Your parking reservation has been received</h2>
<p>Hello {{.UserName}},</p>
<p>Your reservation is now waiting for approval. Here are the details:</p>
<table cellpadding="4">
<tr><td><b>Location</b></td><td>{{.LocationName}}</td></tr>
<tr><td><b>Slot</b></td><td>{{.SlotType}}</td></tr>
<tr><td><b>Vehicle</b></td><td>{{.VehicleModel}} ({{.VehiclePlate}})</td></tr>
<tr><td><b>Start</b></td><td>{{.StartFormatted}}</td></tr>
<tr><td><b>Duration</b></td><td>{{.DurationHours}} hour(s)</td></tr>
<tr><td><b>Total</b></td><td>{{.Currency}} {{.Total}}</td></tr>
<tr><td><b>Payment</b></td><td>{{.ModeOfPayment}}</td></tr>
</table>
<p style="font-size: 12px; color: #6b7280;">&copy; {{.CurrentYear}} Parking Portal</p>
</body></html>`))

type SenderService struct {
	cfg config.NotifyConfig
}

func NewSenderService(cfg config.NotifyConfig) *SenderService {
	return &SenderService{cfg: cfg}
}

// ReservationCreated sends the booking confirmation by email and, when a
// phone number is known, by SMS. Delivery runs in the background and failures
// are only logged; the reservation already exists.
func (s *SenderService) ReservationCreated(data entities.ReservationEmailData) {
	subject, plain, html, err := renderReservationEmail(data)
	if err != nil {
		log.Printf("ALERT: could not render confirmation email for %s: %v", data.VehiclePlate, err)
	}

	if data.UserEmail != "" {
		go func() {
			if err := SendEmailWithSendGrid(s.cfg, data.UserEmail, data.UserName, subject, plain, html); err != nil {
				logDelivery("email", data.UserEmail, err)
			}
		}()
	}
	if data.UserPhone != "" {
		go func() {
			if err := SendSMS(s.cfg, data.UserPhone, reservationSMS(data)); err != nil {
				logDelivery("SMS", data.UserPhone, err)
			}
		}()
	}
}

func logDelivery(channel, to string, err error) {
	if errors.Is(err, ErrNotifierDisabled) {
		log.Printf("Skipping confirmation %s to %s: %v", channel, to, err)
		return
	}
	log.Printf("ALERT: confirmation %s to %s failed: %v", channel, to, err)
}

func renderReservationEmail(data entities.ReservationEmailData) (subject, plain, html string, err error) {
	subject = fmt.Sprintf("Parking reservation at %s on %s", data.LocationName, data.StartFormatted)
	plain = fmt.Sprintf(
		"Hello %s,\n\nYour parking reservation has been received and is waiting for approval.\n\n"+
			"Location: %s\nSlot: %s\nVehicle: %s (Plate: %s)\nStart: %s\nDuration: %d hour(s)\nTotal: %s %s\nPayment: %s\n\n"+
			"Parking Portal %d",
		data.UserName, data.LocationName, data.SlotType, data.VehicleModel, data.VehiclePlate,
		data.StartFormatted, data.DurationHours, data.Currency, data.Total, data.ModeOfPayment, data.CurrentYear,
	)

	var buf bytes.Buffer
	if err = reservationEmailTmpl.Execute(&buf, data); err != nil {
		return subject, plain, "", err
	}
	return subject, plain, buf.String(), nil
}

func reservationSMS(data entities.ReservationEmailData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Parking Portal: reservation for %s received.\n", data.VehiclePlate)
	fmt.Fprintf(&b, "%s, %s.\n", data.LocationName, data.StartFormatted)
	b.WriteString("We will notify you once it is approved.")
	return b.String()
}
