package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "smartparking/internal/config"
	"smartparking/internal/domain"
	"smartparking/internal/domain/models"
	"smartparking/internal/ledger"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/guregu/null.v4"
)

const (
	mysqlDuplicateEntry = 1062
	idAttempts          = 5

	bookingColumns = `customer_id, name, vehicle_number, vehicle_type, location_id, zone_id,
		booking_date, time_window, seat_number, status, amount, created_at, cancelled_at`
)

// BookingRepository is the MySQL implementation of ledger.Store.
type BookingRepository struct {
	DB    *sql.DB
	NewID ledger.IDFunc
	Now   func() time.Time
}

var _ ledger.Store = BookingRepository{}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepository) newID() (string, error) {
	if r.NewID != nil {
		return r.NewID()
	}
	return ledger.NewCustomerID()
}

func (r BookingRepository) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

func (r BookingRepository) Reserve(ctx context.Context, b models.Booking) (models.Booking, error) {
	key := b.Key()
	b.Status = domain.StatusActive
	b.CreatedAt = r.now()
	b.CancelledAt = null.Time{}

	for attempt := 0; attempt < idAttempts; attempt++ {
		id, err := r.newID()
		if err != nil {
			return models.Booking{}, domain.InternalError{Msg: "generate customer id", Err: err}
		}
		_, err = r.db().ExecContext(ctx, `
			INSERT INTO parking_bookings (`+bookingColumns+`, active_key)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?)`,
			id, b.Name, b.VehicleNumber, string(b.VehicleType), b.LocationID, b.ZoneID,
			b.BookingDate, b.TimeWindow, b.SeatNumber, string(b.Status), b.Amount, b.CreatedAt,
			key.String(),
		)
		if err == nil {
			b.CustomerID = id
			return b, nil
		}
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			if strings.Contains(me.Message, "PRIMARY") {
				continue
			}
			return models.Booking{}, domain.ConflictError{
				Resource: "seat",
				Msg:      fmt.Sprintf("seat %s is already booked for this time slot", b.SeatNumber),
				Err:      err,
			}
		}
		return models.Booking{}, domain.InternalError{Msg: "insert booking", Err: err}
	}
	return models.Booking{}, domain.InternalError{Msg: "could not allocate a unique customer id"}
}

func (r BookingRepository) Cancel(ctx context.Context, customerID string) (models.Booking, error) {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "begin cancel", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	row := tx.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM parking_bookings WHERE customer_id = ? FOR UPDATE`, customerID)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: customerID}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "load booking", Err: err}
	}
	if b.Status == domain.StatusCancelled {
		return models.Booking{}, domain.AlreadyCancelledError{CustomerID: customerID}
	}

	at := r.now()
	if _, err := tx.ExecContext(ctx,
		`UPDATE parking_bookings SET status = ?, cancelled_at = ?, active_key = NULL WHERE customer_id = ?`,
		string(domain.StatusCancelled), at, customerID,
	); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "cancel booking", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "commit cancel", Err: err}
	}
	committed = true

	b.Status = domain.StatusCancelled
	b.CancelledAt = null.TimeFrom(at)
	return b, nil
}

func (r BookingRepository) FindActive(ctx context.Context, key models.ReservationKey) (models.Booking, bool, error) {
	row := r.db().QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM parking_bookings WHERE active_key = ? LIMIT 1`, key.String())
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, false, nil
	}
	if err != nil {
		return models.Booking{}, false, domain.InternalError{Msg: "find active booking", Err: err}
	}
	return b, true, nil
}

func (r BookingRepository) Get(ctx context.Context, customerID string) (models.Booking, error) {
	row := r.db().QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM parking_bookings WHERE customer_id = ? LIMIT 1`, customerID)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: customerID}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "load booking", Err: err}
	}
	return b, nil
}

func (r BookingRepository) ListActive(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	where := []string{"status = ?"}
	args := []any{string(domain.StatusActive)}
	add := func(col, val string) {
		if val != "" {
			where = append(where, col+" = ?")
			args = append(args, val)
		}
	}
	add("location_id", f.LocationID)
	add("zone_id", f.ZoneID)
	add("booking_date", f.Date)
	add("time_window", f.Window)
	add("vehicle_type", string(f.VehicleType))

	rows, err := r.db().QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM parking_bookings WHERE `+strings.Join(where, " AND ")+
			` ORDER BY created_at, customer_id`, args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "list active bookings", Err: err}
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan booking", Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "list active bookings", Err: err}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(s rowScanner) (models.Booking, error) {
	var (
		b                   models.Booking
		vehicleType, status string
	)
	err := s.Scan(
		&b.CustomerID, &b.Name, &b.VehicleNumber, &vehicleType, &b.LocationID, &b.ZoneID,
		&b.BookingDate, &b.TimeWindow, &b.SeatNumber, &status, &b.Amount, &b.CreatedAt, &b.CancelledAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.VehicleType = domain.VehicleType(vehicleType)
	b.Status = domain.Status(status)
	return b, nil
}
