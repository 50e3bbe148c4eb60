package models

import (
	"strings"
	"time"

	"smartparking/internal/domain"

	"gopkg.in/guregu/null.v4"
)

// Booking is the ledger record. Amount is fixed when the booking becomes
// ACTIVE and is not touched by cancellation.
type Booking struct {
	CustomerID    string             `json:"customer_id"`
	Name          string             `json:"name"`
	VehicleNumber string             `json:"vehicle_number"`
	VehicleType   domain.VehicleType `json:"vehicle_type"`
	LocationID    string             `json:"location"`
	ZoneID        string             `json:"zone"`
	BookingDate   string             `json:"booking_date"`
	TimeWindow    string             `json:"time_slot"`
	SeatNumber    string             `json:"seat_number"`
	Status        domain.Status      `json:"status"`
	Amount        int64              `json:"amount"`
	CreatedAt     time.Time          `json:"created_at"`
	CancelledAt   null.Time          `json:"cancelled_at"`
}

// Key returns the reservation key the booking occupies while ACTIVE.
func (b Booking) Key() ReservationKey {
	return ReservationKey{
		LocationID:  b.LocationID,
		ZoneID:      b.ZoneID,
		Date:        b.BookingDate,
		Window:      b.TimeWindow,
		VehicleType: b.VehicleType,
		Seat:        b.SeatNumber,
	}
}

func (b Booking) Active() bool { return b.Status == domain.StatusActive }

// Slot identifies one (location, zone, date, window, vehicle type) cell; the
// seat universe of a slot is derived from zone capacity.
type Slot struct {
	LocationID  string
	ZoneID      string
	Date        string
	Window      string
	VehicleType domain.VehicleType
}

// ReservationKey is the uniqueness domain of the ledger: at most one ACTIVE
// booking per key.
type ReservationKey struct {
	LocationID  string
	ZoneID      string
	Date        string
	Window      string
	VehicleType domain.VehicleType
	Seat        string
}

func (s Slot) Key(seat string) ReservationKey {
	return ReservationKey{
		LocationID:  s.LocationID,
		ZoneID:      s.ZoneID,
		Date:        s.Date,
		Window:      s.Window,
		VehicleType: s.VehicleType,
		Seat:        seat,
	}
}

func (k ReservationKey) Slot() Slot {
	return Slot{
		LocationID:  k.LocationID,
		ZoneID:      k.ZoneID,
		Date:        k.Date,
		Window:      k.Window,
		VehicleType: k.VehicleType,
	}
}

// String is the canonical flat form of the key, used as the unique column
// value in SQL storage and in log lines.
func (k ReservationKey) String() string {
	return strings.Join([]string{k.LocationID, k.ZoneID, k.Date, k.Window, string(k.VehicleType), k.Seat}, "|")
}

// BookingFilter selects ACTIVE bookings. Empty fields match anything.
type BookingFilter struct {
	LocationID  string
	ZoneID      string
	Date        string
	Window      string
	VehicleType domain.VehicleType
}

func (s Slot) Filter() BookingFilter {
	return BookingFilter{
		LocationID:  s.LocationID,
		ZoneID:      s.ZoneID,
		Date:        s.Date,
		Window:      s.Window,
		VehicleType: s.VehicleType,
	}
}

// Match reports whether b satisfies every non-empty field of f.
func (f BookingFilter) Match(b Booking) bool {
	if f.LocationID != "" && f.LocationID != b.LocationID {
		return false
	}
	if f.ZoneID != "" && f.ZoneID != b.ZoneID {
		return false
	}
	if f.Date != "" && f.Date != b.BookingDate {
		return false
	}
	if f.Window != "" && f.Window != b.TimeWindow {
		return false
	}
	if f.VehicleType != "" && f.VehicleType != b.VehicleType {
		return false
	}
	return true
}
