package services

import (
	"context"
	"errors"

	"smartparking/internal/domain/models"
)

// EventPublisher receives booking events after the ledger has committed.
// Publishing failures never change the outcome of a booking.
type EventPublisher interface {
	Publish(ctx context.Context, ev models.BookingEvent) error
}

// Publishers fans an event out to every publisher and joins their errors.
type Publishers []EventPublisher

func (ps Publishers) Publish(ctx context.Context, ev models.BookingEvent) error {
	var errs []error
	for _, p := range ps {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
