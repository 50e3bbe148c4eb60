package catalog

import (
	"smartparking/internal/domain"
	"smartparking/internal/domain/models"
)

type zoneSeed struct {
	id, label string
	hours     int
}

// Default zones leave SeatPrefix unset, so every seat is "A" + ordinal.
// A catalog file can still configure per-zone prefixes.
var defaultZones = []zoneSeed{
	{"zone1", "Zone 1 (3-Hour Slots)", 3},
	{"zone2", "Zone 2 (6-Hour Slots)", 6},
	{"zone3", "Zone 3 (8-Hour Slots)", 8},
	{"zone4", "Zone 4 (12-Hour Slots)", 12},
	{"zone5", "Zone 5 (24-Hour Slot)", 24},
}

const defaultCapacity = 10

// DefaultLocations is the built-in catalog: five Coimbatore sites sharing the
// same five zones.
func DefaultLocations() []models.Location {
	sites := []models.Location{
		{ID: "gandhipuram", Name: "Gandhipuram"},
		{ID: "singanallur", Name: "Singanallur"},
		{ID: "ukkadam", Name: "Ukkadam"},
		{ID: "ganapathy", Name: "Ganapathy"},
		{ID: "rs-puram", Name: "RS Puram"},
	}
	for i := range sites {
		for _, z := range defaultZones {
			sites[i].Zones = append(sites[i].Zones, models.Zone{
				ID:          z.id,
				Label:       z.label,
				WindowHours: z.hours,
				Capacity: map[domain.VehicleType]int{
					domain.VehicleCar:  defaultCapacity,
					domain.VehicleBike: defaultCapacity,
				},
			})
		}
	}
	return sites
}

// Default builds the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultLocations())
	if err != nil {
		panic("catalog: invalid default catalog: " + err.Error())
	}
	return c
}
