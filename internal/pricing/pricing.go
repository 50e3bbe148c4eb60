// Package pricing computes the amount charged for a booking. The policy is
// a pure function of vehicle type and window length.
package pricing

import (
	"time"

	"smartparking/internal/domain"
)

// Func prices one seat for one window.
type Func func(vehicle domain.VehicleType, window time.Duration) int64

// Rate is the price of one window for each vehicle type.
type Rate struct {
	Car  int64
	Bike int64
}

func (r Rate) For(v domain.VehicleType) int64 {
	if v == domain.VehicleBike {
		return r.Bike
	}
	return r.Car
}

// Table maps window length in whole hours to a rate. Lengths missing from the
// table are charged per started hour at the Hourly rate.
type Table struct {
	Windows map[int]Rate
	Hourly  Rate
}

// DefaultTable is the tariff of the built-in zones, in rupees.
func DefaultTable() Table {
	return Table{
		Windows: map[int]Rate{
			3:  {Car: 50, Bike: 25},
			6:  {Car: 80, Bike: 40},
			8:  {Car: 100, Bike: 60},
			12: {Car: 120, Bike: 75},
			24: {Car: 150, Bike: 90},
		},
		Hourly: Rate{Car: 17, Bike: 9},
	}
}

func (t Table) Price(vehicle domain.VehicleType, window time.Duration) int64 {
	if window <= 0 {
		return 0
	}
	hours := int(window / time.Hour)
	if window%time.Hour == 0 {
		if r, ok := t.Windows[hours]; ok {
			return r.For(vehicle)
		}
	} else {
		hours++
	}
	return int64(hours) * t.Hourly.For(vehicle)
}

// Func adapts the table to the Func signature.
func (t Table) Func() Func { return t.Price }

// Default is DefaultTable().Func().
func Default() Func { return DefaultTable().Func() }
