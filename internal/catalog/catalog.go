// Package catalog holds the static description of locations, zones, their
// daily window partition and seat capacity. A Catalog is read-only after New
// and safe for concurrent use.
package catalog

import (
	"fmt"
	"strings"

	"smartparking/internal/domain"
	"smartparking/internal/domain/models"
)

type zoneEntry struct {
	zone    models.Zone
	windows []models.Window
	byLabel map[string]int
}

type locationEntry struct {
	location models.Location
	zones    []*zoneEntry
	byZone   map[string]*zoneEntry
}

type Catalog struct {
	locations []*locationEntry
	byID      map[string]*locationEntry
}

// New validates and copies locations into a Catalog.
func New(locations []models.Location) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*locationEntry, len(locations))}
	for _, loc := range locations {
		id := strings.TrimSpace(loc.ID)
		if id == "" {
			return nil, fmt.Errorf("location %q: empty id", loc.Name)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("location %s: duplicate id", id)
		}
		le := &locationEntry{
			location: models.Location{ID: id, Name: strings.TrimSpace(loc.Name)},
			byZone:   make(map[string]*zoneEntry, len(loc.Zones)),
		}
		for _, z := range loc.Zones {
			ze, err := newZoneEntry(z)
			if err != nil {
				return nil, fmt.Errorf("location %s: %w", id, err)
			}
			if _, dup := le.byZone[ze.zone.ID]; dup {
				return nil, fmt.Errorf("location %s: duplicate zone %s", id, ze.zone.ID)
			}
			le.zones = append(le.zones, ze)
			le.byZone[ze.zone.ID] = ze
		}
		c.locations = append(c.locations, le)
		c.byID[id] = le
	}
	return c, nil
}

func newZoneEntry(z models.Zone) (*zoneEntry, error) {
	id := strings.TrimSpace(z.ID)
	if id == "" {
		return nil, fmt.Errorf("zone %q: empty id", z.Label)
	}
	windows, err := ExpandWindows(z.WindowHours)
	if err != nil {
		return nil, fmt.Errorf("zone %s: %w", id, err)
	}
	out := models.Zone{
		ID:          id,
		Label:       strings.TrimSpace(z.Label),
		WindowHours: z.WindowHours,
		Capacity:    make(map[domain.VehicleType]int, len(z.Capacity)),
		SeatPrefix:  make(map[domain.VehicleType]string, len(z.SeatPrefix)),
	}
	if out.Label == "" {
		out.Label = id
	}
	for v, n := range z.Capacity {
		vt, ok := domain.ParseVehicleType(string(v))
		if !ok {
			return nil, fmt.Errorf("zone %s: unknown vehicle type %q", id, v)
		}
		if n < 1 {
			return nil, fmt.Errorf("zone %s: %s capacity must be at least 1", id, vt)
		}
		out.Capacity[vt] = n
	}
	for v, p := range z.SeatPrefix {
		vt, ok := domain.ParseVehicleType(string(v))
		if !ok {
			return nil, fmt.Errorf("zone %s: unknown vehicle type %q", id, v)
		}
		out.SeatPrefix[vt] = strings.ToUpper(strings.TrimSpace(p))
	}
	ze := &zoneEntry{zone: out, windows: windows, byLabel: make(map[string]int, len(windows))}
	for i, w := range windows {
		ze.byLabel[w.Label] = i
	}
	return ze, nil
}

// ListLocations returns every location in catalog order, without zones.
func (c *Catalog) ListLocations() []models.Location {
	out := make([]models.Location, 0, len(c.locations))
	for _, le := range c.locations {
		out = append(out, le.location)
	}
	return out
}

func (c *Catalog) Location(id string) (models.Location, error) {
	le, err := c.location(id)
	if err != nil {
		return models.Location{}, err
	}
	return le.location, nil
}

func (c *Catalog) ListZones(locationID string) ([]models.Zone, error) {
	le, err := c.location(locationID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Zone, 0, len(le.zones))
	for _, ze := range le.zones {
		out = append(out, copyZone(ze.zone))
	}
	return out, nil
}

func (c *Catalog) Zone(locationID, zoneID string) (models.Zone, error) {
	ze, err := c.zone(locationID, zoneID)
	if err != nil {
		return models.Zone{}, err
	}
	return copyZone(ze.zone), nil
}

// WindowsFor returns the ordered window partition of a zone. The result is a
// copy, so callers may iterate it again or retain it.
func (c *Catalog) WindowsFor(locationID, zoneID string) ([]models.Window, error) {
	ze, err := c.zone(locationID, zoneID)
	if err != nil {
		return nil, err
	}
	return append([]models.Window(nil), ze.windows...), nil
}

// Window resolves a label against the zone partition; unknown labels yield
// an InvalidWindow validation error.
func (c *Catalog) Window(locationID, zoneID, label string) (models.Window, error) {
	ze, err := c.zone(locationID, zoneID)
	if err != nil {
		return models.Window{}, err
	}
	i, ok := ze.byLabel[strings.TrimSpace(label)]
	if !ok {
		return models.Window{}, domain.InvalidWindow(label)
	}
	return ze.windows[i], nil
}

func (c *Catalog) location(id string) (*locationEntry, error) {
	id = strings.TrimSpace(id)
	le, ok := c.byID[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "location", ID: id}
	}
	return le, nil
}

func (c *Catalog) zone(locationID, zoneID string) (*zoneEntry, error) {
	le, err := c.location(locationID)
	if err != nil {
		return nil, err
	}
	zoneID = strings.TrimSpace(zoneID)
	ze, ok := le.byZone[zoneID]
	if !ok {
		return nil, domain.NotFoundError{Resource: "zone", ID: zoneID}
	}
	return ze, nil
}

func copyZone(z models.Zone) models.Zone {
	out := z
	out.Capacity = make(map[domain.VehicleType]int, len(z.Capacity))
	for k, v := range z.Capacity {
		out.Capacity[k] = v
	}
	out.SeatPrefix = make(map[domain.VehicleType]string, len(z.SeatPrefix))
	for k, v := range z.SeatPrefix {
		out.SeatPrefix[k] = v
	}
	return out
}
