package models

import (
	"time"

	"smartparking/internal/domain"
)

// Location is a parking site. Immutable after catalog load.
type Location struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Zones []Zone `json:"-"`
}

// Zone partitions each day into equal windows of WindowHours and holds a
// seat capacity per vehicle type.
type Zone struct {
	ID          string                        `json:"zone"`
	Label       string                        `json:"label"`
	WindowHours int                           `json:"-"`
	Capacity    map[domain.VehicleType]int    `json:"-"`
	SeatPrefix  map[domain.VehicleType]string `json:"-"`
}

// Window is one interval of a zone's daily partition.
type Window struct {
	Label  string
	Start  time.Duration
	Length time.Duration
}

// SeatStatus is one row of an availability answer.
type SeatStatus struct {
	SeatNumber string `json:"seat_number"`
	IsBooked   bool   `json:"is_booked"`
}

// LocationAvailability counts free seat-windows of a location on one date.
type LocationAvailability struct {
	LocationID           string `json:"location_id"`
	Location             string `json:"location"`
	Date                 string `json:"date"`
	AvailableCars        int    `json:"available_cars"`
	AvailableTwoWheelers int    `json:"available_two_wheelers"`
}
