package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"smartparking/internal/domain"
	"smartparking/internal/domain/models"
)

const defaultSeatPrefix = "A"

// SeatPrefix returns the label prefix of a zone's seats for a vehicle type.
func SeatPrefix(z models.Zone, v domain.VehicleType) string {
	if p := strings.TrimSpace(z.SeatPrefix[v]); p != "" {
		return strings.ToUpper(p)
	}
	return defaultSeatPrefix
}

// SeatLabel is prefix followed by the 1-based ordinal.
func SeatLabel(z models.Zone, v domain.VehicleType, ordinal int) string {
	return SeatPrefix(z, v) + strconv.Itoa(ordinal)
}

// SeatLabels generates the seat universe of (zone, vehicle type) as ordinals
// 1..capacity. Seats are never stored; this is the only source of them.
func SeatLabels(z models.Zone, v domain.VehicleType) []string {
	n := z.Capacity[v]
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, SeatLabel(z, v, i))
	}
	return out
}

// ParseSeat accepts a seat label ("A3", any case) or a bare ordinal ("3")
// and returns the canonical label.
func ParseSeat(z models.Zone, v domain.VehicleType, raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", domain.InvalidSeat(raw, "is required")
	}
	capacity := z.Capacity[v]
	if capacity <= 0 {
		return "", domain.InvalidSeat(raw, fmt.Sprintf("zone %s has no %s seats", z.ID, v))
	}
	digits := strings.TrimPrefix(s, SeatPrefix(z, v))
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return "", domain.InvalidSeat(raw, "is not a seat of this zone")
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > capacity {
		return "", domain.InvalidSeat(raw, fmt.Sprintf("is outside 1..%d", capacity))
	}
	return SeatLabel(z, v, n), nil
}
