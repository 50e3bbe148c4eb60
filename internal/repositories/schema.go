package repositories

import (
	"context"
	"fmt"
)

// BookingsTable is the MySQL table behind BookingRepository.
const BookingsTable = "parking_bookings"

// active_key holds ReservationKey.String() while the booking is ACTIVE and
// NULL afterwards; the UNIQUE index is what makes Reserve race-free across
// processes.
const createBookingsTable = `
CREATE TABLE IF NOT EXISTS parking_bookings (
	customer_id    VARCHAR(32)  NOT NULL,
	name           VARCHAR(120) NOT NULL,
	vehicle_number VARCHAR(32)  NOT NULL,
	vehicle_type   VARCHAR(8)   NOT NULL,
	location_id    VARCHAR(64)  NOT NULL,
	zone_id        VARCHAR(64)  NOT NULL,
	booking_date   CHAR(10)     NOT NULL,
	time_window    VARCHAR(32)  NOT NULL,
	seat_number    VARCHAR(16)  NOT NULL,
	status         VARCHAR(16)  NOT NULL,
	amount         BIGINT       NOT NULL,
	created_at     DATETIME(6)  NOT NULL,
	cancelled_at   DATETIME(6)  NULL,
	active_key     VARCHAR(255) NULL,
	PRIMARY KEY (customer_id),
	UNIQUE KEY uq_parking_bookings_active_key (active_key),
	KEY idx_parking_bookings_slot (location_id, zone_id, booking_date, time_window, vehicle_type, status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the bookings table when missing.
func (r BookingRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db().ExecContext(ctx, createBookingsTable); err != nil {
		return fmt.Errorf("create %s: %w", BookingsTable, err)
	}
	return nil
}
