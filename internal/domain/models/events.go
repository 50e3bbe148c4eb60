package models

import "time"

type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
)

// BookingEvent is emitted after a ledger commit for internal consumers
// (broker, audit log). It carries the customer id, so it must not reach
// public subscribers; use Public for those.
type BookingEvent struct {
	Type        EventType `json:"type"`
	CustomerID  string    `json:"customer_id"`
	LocationID  string    `json:"location"`
	ZoneID      string    `json:"zone"`
	BookingDate string    `json:"booking_date"`
	TimeWindow  string    `json:"time_slot"`
	VehicleType string    `json:"vehicle_type"`
	SeatNumber  string    `json:"seat_number"`
	Amount      int64     `json:"amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewBookingEvent(t EventType, b Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:        t,
		CustomerID:  b.CustomerID,
		LocationID:  b.LocationID,
		ZoneID:      b.ZoneID,
		BookingDate: b.BookingDate,
		TimeWindow:  b.TimeWindow,
		VehicleType: string(b.VehicleType),
		SeatNumber:  b.SeatNumber,
		Amount:      b.Amount,
		OccurredAt:  at.UTC(),
	}
}

// SeatEvent is the public form of a BookingEvent for anonymous live seat
// maps. It names the seat that changed and nothing that identifies or
// authorises the booking: the customer id is a cancellation credential.
type SeatEvent struct {
	Type        EventType `json:"type"`
	LocationID  string    `json:"location"`
	ZoneID      string    `json:"zone"`
	BookingDate string    `json:"booking_date"`
	TimeWindow  string    `json:"time_slot"`
	VehicleType string    `json:"vehicle_type"`
	SeatNumber  string    `json:"seat_number"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e BookingEvent) Public() SeatEvent {
	return SeatEvent{
		Type:        e.Type,
		LocationID:  e.LocationID,
		ZoneID:      e.ZoneID,
		BookingDate: e.BookingDate,
		TimeWindow:  e.TimeWindow,
		VehicleType: e.VehicleType,
		SeatNumber:  e.SeatNumber,
		OccurredAt:  e.OccurredAt,
	}
}
