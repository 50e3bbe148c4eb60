// Package ledger is the authoritative store of bookings. A Store guarantees
// that at most one ACTIVE booking exists per reservation key and that the
// check-and-set in Reserve is atomic with respect to other Reserve calls.
package ledger

import (
	"context"
	"crypto/rand"
	"strings"

	"smartparking/internal/domain/models"
)

type Store interface {
	// Reserve stores b as ACTIVE under a fresh customer id, or fails with
	// domain.ConflictError when its key already has an ACTIVE booking.
	Reserve(ctx context.Context, b models.Booking) (models.Booking, error)
	// Cancel moves an ACTIVE booking to CANCELLED and returns it.
	Cancel(ctx context.Context, customerID string) (models.Booking, error)
	FindActive(ctx context.Context, key models.ReservationKey) (models.Booking, bool, error)
	Get(ctx context.Context, customerID string) (models.Booking, error)
	ListActive(ctx context.Context, f models.BookingFilter) ([]models.Booking, error)
}

// IDFunc produces customer ids. Stores retry when an id is already taken.
type IDFunc func() (string, error)

const (
	customerIDPrefix = "CUST-"
	customerIDLength = 12
	// 32 symbols, no 0/O or 1/I, so each random byte maps without bias.
	customerIDAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

	maxIDAttempts = 5
)

// NewCustomerID returns "CUST-" followed by 12 symbols from crypto/rand.
func NewCustomerID() (string, error) {
	buf := make([]byte, customerIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, customerIDLength)
	for i, b := range buf {
		out[i] = customerIDAlphabet[int(b)%len(customerIDAlphabet)]
	}
	return customerIDPrefix + string(out), nil
}

// NormalizeCustomerID trims and upper-cases user supplied ids.
func NormalizeCustomerID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
