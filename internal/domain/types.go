package domain

import "strings"

// VehicleType scopes a seat universe within a zone.
type VehicleType string

const (
	VehicleBike VehicleType = "BIKE"
	VehicleCar  VehicleType = "CAR"
)

// VehicleTypes lists supported vehicle types in display order.
var VehicleTypes = []VehicleType{VehicleCar, VehicleBike}

// ParseVehicleType normalizes user input; ok is false for anything other
// than BIKE or CAR.
func ParseVehicleType(s string) (VehicleType, bool) {
	switch VehicleType(strings.ToUpper(strings.TrimSpace(s))) {
	case VehicleBike:
		return VehicleBike, true
	case VehicleCar:
		return VehicleCar, true
	}
	return "", false
}

// Status is the persisted booking state. REQUESTED only exists while a
// booking is being validated and is never stored.
type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
)
