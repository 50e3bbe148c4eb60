package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"smartparking/internal/domain"
	"smartparking/internal/domain/models"

	"gopkg.in/guregu/null.v4"
)

var errIDTaken = errors.New("customer id already taken")

var _ Store = (*Memory)(nil)

// Memory is an in-process Store. One RWMutex guards both indexes; critical
// sections are a map lookup plus a map write.
type Memory struct {
	mu     sync.RWMutex
	active map[models.ReservationKey]string
	byID   map[string]*models.Booking
	order  []string

	newID IDFunc
	now   func() time.Time
}

type Option func(*Memory)

func WithIDFunc(f IDFunc) Option {
	return func(m *Memory) { m.newID = f }
}

func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		active: make(map[models.ReservationKey]string),
		byID:   make(map[string]*models.Booking),
		newID:  NewCustomerID,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Reserve(ctx context.Context, b models.Booking) (models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return models.Booking{}, err
	}
	key := b.Key()
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := m.newID()
		if err != nil {
			return models.Booking{}, domain.InternalError{Msg: "generate customer id", Err: err}
		}
		created, err := m.commit(id, b, key)
		if errors.Is(err, errIDTaken) {
			continue
		}
		return created, err
	}
	return models.Booking{}, domain.InternalError{Msg: "could not allocate a unique customer id"}
}

func (m *Memory) commit(id string, b models.Booking, key models.ReservationKey) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.active[key]; taken {
		return models.Booking{}, domain.ConflictError{
			Resource: "seat",
			Msg:      fmt.Sprintf("seat %s is already booked for this time slot", key.Seat),
		}
	}
	if _, dup := m.byID[id]; dup {
		return models.Booking{}, errIDTaken
	}

	b.CustomerID = id
	b.Status = domain.StatusActive
	b.CreatedAt = m.now().UTC()
	b.CancelledAt = null.Time{}

	rec := b
	m.byID[id] = &rec
	m.active[key] = id
	m.order = append(m.order, id)
	return rec, nil
}

func (m *Memory) Cancel(ctx context.Context, customerID string) (models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return models.Booking{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[customerID]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: customerID}
	}
	if rec.Status == domain.StatusCancelled {
		return models.Booking{}, domain.AlreadyCancelledError{CustomerID: customerID}
	}
	rec.Status = domain.StatusCancelled
	rec.CancelledAt = null.TimeFrom(m.now().UTC())
	if key := rec.Key(); m.active[key] == customerID {
		delete(m.active, key)
	}
	return *rec, nil
}

func (m *Memory) FindActive(ctx context.Context, key models.ReservationKey) (models.Booking, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Booking{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.active[key]
	if !ok {
		return models.Booking{}, false, nil
	}
	return *m.byID[id], true, nil
}

func (m *Memory) Get(ctx context.Context, customerID string) (models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return models.Booking{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.byID[customerID]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: customerID}
	}
	return *rec, nil
}

// ListActive returns copies of matching ACTIVE bookings in creation order,
// taken under a single read lock.
func (m *Memory) ListActive(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Booking{}
	for _, id := range m.order {
		rec := m.byID[id]
		if rec.Active() && f.Match(*rec) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// Snapshot copies the full history, cancelled bookings included.
func (m *Memory) Snapshot() []models.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Booking, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.byID[id])
	}
	return out
}

// Restore replaces the ledger content. It fails without modifying the ledger
// when ids repeat or two ACTIVE bookings share a key.
func (m *Memory) Restore(bookings []models.Booking) error {
	active := make(map[models.ReservationKey]string, len(bookings))
	byID := make(map[string]*models.Booking, len(bookings))
	order := make([]string, 0, len(bookings))
	for i := range bookings {
		rec := bookings[i]
		if rec.CustomerID == "" {
			return fmt.Errorf("restore: booking %d has no customer id", i)
		}
		if _, dup := byID[rec.CustomerID]; dup {
			return fmt.Errorf("restore: duplicate customer id %s", rec.CustomerID)
		}
		switch rec.Status {
		case domain.StatusActive:
			key := rec.Key()
			if other, taken := active[key]; taken {
				return fmt.Errorf("restore: %s and %s are both active for %s", other, rec.CustomerID, key)
			}
			active[key] = rec.CustomerID
		case domain.StatusCancelled:
		default:
			return fmt.Errorf("restore: booking %s has status %q", rec.CustomerID, rec.Status)
		}
		byID[rec.CustomerID] = &rec
		order = append(order, rec.CustomerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.active, m.byID, m.order = active, byID, order
	return nil
}

// Len reports the number of bookings held, cancelled ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}
