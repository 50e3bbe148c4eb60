package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"smartparking/internal/catalog"
	"smartparking/internal/domain"
	"smartparking/internal/domain/models"
	"smartparking/internal/ledger"
	"smartparking/internal/pricing"
	"smartparking/internal/utils"
)

const (
	publishTimeout = 3 * time.Second

	// Limits match the parking_bookings column widths.
	maxNameLen          = 120
	maxVehicleNumberLen = 32
)

// BookingRequest is a booking in the REQUESTED state: raw client input that
// has not been validated yet.
type BookingRequest struct {
	Name          string `json:"name"`
	VehicleNumber string `json:"vehicle_number"`
	VehicleType   string `json:"vehicle_type"`
	LocationID    string `json:"location"`
	BookingDate   string `json:"booking_date"`
	ZoneID        string `json:"zone"`
	TimeSlot      string `json:"time_slot"`
	SeatNumber    string `json:"seat_number"`
}

// BookingService drives a booking from REQUESTED to ACTIVE and from ACTIVE
// to CANCELLED. All validation happens before the ledger is touched, so the
// only contended step is Store.Reserve.
type BookingService struct {
	Catalog   *catalog.Catalog
	Ledger    ledger.Store
	Price     pricing.Func
	Events    EventPublisher
	Clock     Clock
	RequestID string
}

func (s BookingService) price() pricing.Func {
	if s.Price != nil {
		return s.Price
	}
	return pricing.Default()
}

// Book validates req, prices it once and reserves its key.
func (s BookingService) Book(ctx context.Context, req BookingRequest) (models.Booking, error) {
	b, window, err := s.validate(req)
	if err != nil {
		return models.Booking{}, err
	}
	b.Amount = s.price()(b.VehicleType, window.Length)

	created, err := s.Ledger.Reserve(ctx, b)
	if err != nil {
		if domain.IsConflict(err) {
			utils.LogEvent(s.RequestID, "booking", "conflict", "key="+b.Key().String())
		} else {
			utils.LogError(s.RequestID, "booking", "reserve", err)
		}
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "book",
		fmt.Sprintf("customer_id=%s key=%s amount=%d", created.CustomerID, created.Key(), created.Amount))
	s.publish(ctx, models.EventBookingConfirmed, created)
	return created, nil
}

func (s BookingService) validate(req BookingRequest) (models.Booking, models.Window, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Booking{}, models.Window{}, domain.InvalidInput("name", "is required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return models.Booking{}, models.Window{}, domain.InvalidInput("name", fmt.Sprintf("must be at most %d characters", maxNameLen))
	}
	vehicleNumber := strings.TrimSpace(req.VehicleNumber)
	if utils.CompactUpper(vehicleNumber) == "" {
		return models.Booking{}, models.Window{}, domain.InvalidInput("vehicle_number", "is required")
	}
	if utf8.RuneCountInString(vehicleNumber) > maxVehicleNumberLen {
		return models.Booking{}, models.Window{}, domain.InvalidInput("vehicle_number", fmt.Sprintf("must be at most %d characters", maxVehicleNumberLen))
	}
	vehicle, ok := domain.ParseVehicleType(req.VehicleType)
	if !ok {
		return models.Booking{}, models.Window{}, domain.InvalidInput("vehicle_type", "must be BIKE or CAR")
	}

	locationID := strings.TrimSpace(req.LocationID)
	zone, err := s.Catalog.Zone(locationID, req.ZoneID)
	if err != nil {
		return models.Booking{}, models.Window{}, err
	}
	window, err := s.Catalog.Window(locationID, zone.ID, req.TimeSlot)
	if err != nil {
		return models.Booking{}, models.Window{}, err
	}
	date, err := s.Clock.Future(req.BookingDate)
	if err != nil {
		return models.Booking{}, models.Window{}, err
	}
	seat, err := catalog.ParseSeat(zone, vehicle, req.SeatNumber)
	if err != nil {
		return models.Booking{}, models.Window{}, err
	}

	return models.Booking{
		Name:          name,
		VehicleNumber: vehicleNumber,
		VehicleType:   vehicle,
		LocationID:    locationID,
		ZoneID:        zone.ID,
		BookingDate:   date,
		TimeWindow:    window.Label,
		SeatNumber:    seat,
		Status:        domain.StatusRequested,
	}, window, nil
}

// Cancel releases the seat held by customerID.
func (s BookingService) Cancel(ctx context.Context, customerID string) (models.Booking, error) {
	id := ledger.NormalizeCustomerID(customerID)
	if id == "" {
		return models.Booking{}, domain.InvalidInput("customer_id", "is required")
	}
	b, err := s.Ledger.Cancel(ctx, id)
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "cancel_rejected", fmt.Sprintf("customer_id=%s kind=%s", id, domain.KindOf(err)))
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("customer_id=%s key=%s", b.CustomerID, b.Key()))
	s.publish(ctx, models.EventBookingCancelled, b)
	return b, nil
}

// CancelMatching is the older cancellation contract keyed on customer id,
// name and vehicle number together.
//
// Deprecated: use Cancel. A detail mismatch is reported as NotFound.
func (s BookingService) CancelMatching(ctx context.Context, customerID, name, vehicleNumber string) (models.Booking, error) {
	id := ledger.NormalizeCustomerID(customerID)
	if id == "" {
		return models.Booking{}, domain.InvalidInput("customer_id", "is required")
	}
	current, err := s.Ledger.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if !utils.SameText(current.Name, name) || utils.CompactUpper(current.VehicleNumber) != utils.CompactUpper(vehicleNumber) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: id}
	}
	return s.Cancel(ctx, id)
}

func (s BookingService) Lookup(ctx context.Context, customerID string) (models.Booking, error) {
	id := ledger.NormalizeCustomerID(customerID)
	if id == "" {
		return models.Booking{}, domain.InvalidInput("customer_id", "is required")
	}
	return s.Ledger.Get(ctx, id)
}

func (s BookingService) publish(ctx context.Context, t models.EventType, b models.Booking) {
	if s.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.Events.Publish(ctx, models.NewBookingEvent(t, b, s.Clock.now())); err != nil {
		utils.LogError(s.RequestID, "events", string(t), err)
	}
}
