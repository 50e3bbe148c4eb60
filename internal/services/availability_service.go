package services

import (
	"context"
	"strings"

	"smartparking/internal/catalog"
	"smartparking/internal/domain"
	"smartparking/internal/domain/models"
	"smartparking/internal/ledger"
)

type SeatQuery struct {
	LocationID  string
	ZoneID      string
	TimeWindow  string
	VehicleType string
	Date        string
}

// AvailabilityService derives seat state from the catalog and the ledger on
// every call. Nothing is cached between calls.
type AvailabilityService struct {
	Catalog *catalog.Catalog
	Ledger  ledger.Store
	Clock   Clock
}

// Seats lists every seat of the slot in ordinal order with its booked flag.
// The booked set comes from one ledger read, so a single answer is
// internally consistent.
func (s AvailabilityService) Seats(ctx context.Context, q SeatQuery) ([]models.SeatStatus, error) {
	locationID := strings.TrimSpace(q.LocationID)
	zone, err := s.Catalog.Zone(locationID, q.ZoneID)
	if err != nil {
		return nil, err
	}
	window, err := s.Catalog.Window(locationID, zone.ID, q.TimeWindow)
	if err != nil {
		return nil, err
	}
	date, err := s.Clock.NotPast(q.Date)
	if err != nil {
		return nil, err
	}
	vehicle, ok := domain.ParseVehicleType(q.VehicleType)
	if !ok {
		return nil, domain.InvalidInput("vehicle_type", "must be BIKE or CAR")
	}

	slot := models.Slot{LocationID: locationID, ZoneID: zone.ID, Date: date, Window: window.Label, VehicleType: vehicle}
	active, err := s.Ledger.ListActive(ctx, slot.Filter())
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(active))
	for _, b := range active {
		booked[b.SeatNumber] = true
	}

	labels := catalog.SeatLabels(zone, vehicle)
	out := make([]models.SeatStatus, 0, len(labels))
	for _, label := range labels {
		out = append(out, models.SeatStatus{SeatNumber: label, IsBooked: booked[label]})
	}
	return out, nil
}

// IsBooked answers for a single reservation key.
func (s AvailabilityService) IsBooked(ctx context.Context, key models.ReservationKey) (bool, error) {
	_, found, err := s.Ledger.FindActive(ctx, key)
	return found, err
}

// Summary counts free seat-windows per location on date; an empty date
// means today.
func (s AvailabilityService) Summary(ctx context.Context, rawDate string) ([]models.LocationAvailability, error) {
	if strings.TrimSpace(rawDate) == "" {
		rawDate = s.Clock.Today()
	}
	date, err := s.Clock.NotPast(rawDate)
	if err != nil {
		return nil, err
	}

	locations := s.Catalog.ListLocations()
	out := make([]models.LocationAvailability, 0, len(locations))
	for _, loc := range locations {
		zones, err := s.Catalog.ListZones(loc.ID)
		if err != nil {
			return nil, err
		}
		free := map[domain.VehicleType]int{}
		for _, z := range zones {
			windows, err := s.Catalog.WindowsFor(loc.ID, z.ID)
			if err != nil {
				return nil, err
			}
			for v, n := range z.Capacity {
				free[v] += n * len(windows)
			}
		}
		active, err := s.Ledger.ListActive(ctx, models.BookingFilter{LocationID: loc.ID, Date: date})
		if err != nil {
			return nil, err
		}
		for _, b := range active {
			free[b.VehicleType]--
		}
		out = append(out, models.LocationAvailability{
			LocationID:           loc.ID,
			Location:             loc.Name,
			Date:                 date,
			AvailableCars:        free[domain.VehicleCar],
			AvailableTwoWheelers: free[domain.VehicleBike],
		})
	}
	return out, nil
}
