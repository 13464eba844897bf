package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"parkingportal/internal/entities"
	"parkingportal/internal/reservation"

	"github.com/phpdave11/gofpdf"
)

// BuildReceiptPDF renders a one-page reservation receipt.
func BuildReceiptPDF(r entities.Reservation, iv reservation.Interval, issued time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Parking Reservation Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PARKING RESERVATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Reservation #%d", r.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Issued: "+issued.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	lines := [][2]string{
		{"Location", label(r.Location)},
		{"Slot type", safe(r.SlotType.Name, "-")},
		{"Vehicle type", safe(r.VehicleType.Name, "-")},
		{"Vehicle", safe(strings.TrimSpace(r.VehicleMake+" "+r.VehicleModel), "-") + " (" + safe(r.Color, "-") + ")"},
		{"Plate number", safe(r.PlateNumber, "-")},
		{"Start", formatWhen(iv.Start, r.Date+" "+r.Time)},
		{"End", formatWhen(iv.End, "-")},
		{"Duration", fmt.Sprintf("%d hour(s)", r.DurationHours)},
		{"Payment", safe(r.ModeOfPayment, "-")},
		{"Paid", yesNo(r.IsPaid)},
		{"Status", reservation.StatusLabel(r) + ", " + reservation.ApprovalLabel(r)},
	}
	for _, l := range lines {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(40, 7, l[0])
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 7, l[1])
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Present this receipt and your plate number at the entrance. Reservations are subject to approval.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RESERVATION_%d_%s.pdf", r.ID, safeFilenamePart(r.PlateNumber))
	return buf.Bytes(), filename, nil
}

func label(l entities.Label) string {
	if l.Address != "" {
		return l.Name + ", " + l.Address
	}
	return safe(l.Name, "-")
}

func formatWhen(t time.Time, fallback string) string {
	if t.IsZero() {
		return fallback
	}
	return t.Format("Mon, 02 Jan 2006 15:04")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
