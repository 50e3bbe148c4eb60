package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"smartparking/internal/domain"
	"smartparking/internal/domain/models"
)

type fileCatalog struct {
	Locations []fileLocation `json:"locations"`
}

type fileLocation struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Zones []fileZone `json:"zones"`
}

type fileZone struct {
	ID          string            `json:"zone"`
	Label       string            `json:"label"`
	WindowHours int               `json:"window_hours"`
	Capacity    map[string]int    `json:"capacity"`
	SeatPrefix  map[string]string `json:"seat_prefix"`
}

// LoadFile reads a JSON catalog of the form
//
//	{"locations":[{"id":"l1","name":"L1","zones":[{"zone":"zone1","label":"Zone 1",
//	  "window_hours":3,"capacity":{"CAR":10,"BIKE":8},"seat_prefix":{"BIKE":"A"}}]}]}
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a JSON catalog.
func Parse(raw []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(fc.Locations) == 0 {
		return nil, fmt.Errorf("catalog has no locations")
	}
	locations := make([]models.Location, 0, len(fc.Locations))
	for _, fl := range fc.Locations {
		loc := models.Location{ID: fl.ID, Name: fl.Name}
		for _, fz := range fl.Zones {
			z := models.Zone{
				ID:          fz.ID,
				Label:       fz.Label,
				WindowHours: fz.WindowHours,
				Capacity:    make(map[domain.VehicleType]int, len(fz.Capacity)),
				SeatPrefix:  make(map[domain.VehicleType]string, len(fz.SeatPrefix)),
			}
			for k, n := range fz.Capacity {
				z.Capacity[domain.VehicleType(k)] = n
			}
			for k, p := range fz.SeatPrefix {
				z.SeatPrefix[domain.VehicleType(k)] = p
			}
			loc.Zones = append(loc.Zones, z)
		}
		locations = append(locations, loc)
	}
	return New(locations)
}
