package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"smartparking/internal/catalog"
	"smartparking/internal/domain/models"
	"smartparking/internal/ledger"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a one-page PDF receipt for a booking.
type ReceiptService struct {
	Catalog  *catalog.Catalog
	Ledger   ledger.Store
	Location *time.Location
}

type receiptData struct {
	Booking      models.Booking
	LocationName string
	ZoneLabel    string
}

// Generate returns the PDF bytes and a download filename.
func (s ReceiptService) Generate(ctx context.Context, customerID string) ([]byte, string, error) {
	b, err := s.Ledger.Get(ctx, ledger.NormalizeCustomerID(customerID))
	if err != nil {
		return nil, "", err
	}
	d := receiptData{Booking: b, LocationName: b.LocationID, ZoneLabel: b.ZoneID}
	if loc, err := s.Catalog.Location(b.LocationID); err == nil && loc.Name != "" {
		d.LocationName = loc.Name
	}
	if z, err := s.Catalog.Zone(b.LocationID, b.ZoneID); err == nil {
		d.ZoneLabel = z.Label
	}
	return buildReceiptPDF(d, s.Location)
}

func buildReceiptPDF(d receiptData, loc *time.Location) ([]byte, string, error) {
	if loc == nil {
		loc = time.Local
	}
	b := d.Booking

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Parking Receipt "+b.CustomerID, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "SMART PARKING HUB")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Booking receipt")
	pdf.Ln(10)

	lines := []string{
		fmt.Sprintf("Customer ID    : %s", b.CustomerID),
		fmt.Sprintf("Name           : %s", safe(b.Name)),
		fmt.Sprintf("Vehicle        : %s (%s)", safe(b.VehicleNumber), b.VehicleType),
		fmt.Sprintf("Location       : %s", safe(d.LocationName)),
		fmt.Sprintf("Zone           : %s", safe(d.ZoneLabel)),
		fmt.Sprintf("Date           : %s", b.BookingDate),
		fmt.Sprintf("Time slot      : %s", b.TimeWindow),
		fmt.Sprintf("Seat           : %s", b.SeatNumber),
		fmt.Sprintf("Status         : %s", b.Status),
		fmt.Sprintf("Booked at      : %s", b.CreatedAt.In(loc).Format("2006-01-02 15:04")),
	}
	if b.CancelledAt.Valid {
		lines = append(lines, fmt.Sprintf("Cancelled at   : %s", b.CancelledAt.Time.In(loc).Format("2006-01-02 15:04")))
	}
	pdf.SetFont("Courier", "", 10)
	for _, s := range lines {
		pdf.Cell(0, 6, s)
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Amount: Rs. %d", b.Amount))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Keep your Customer ID safe. It is required to cancel this booking.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("RECEIPT_%s.pdf", b.CustomerID), nil
}

// safe keeps the core PDF fonts happy: they only cover Latin-1.
func safe(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, s)
}
