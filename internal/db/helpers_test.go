package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHasTable(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery("information_schema.tables").
		WithArgs("parking_bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("parking_bookings"))
	mock.ExpectQuery("information_schema.tables").
		WithArgs("missing").
		WillReturnError(errors.New("no rows"))

	ctx := context.Background()
	if !HasTable(ctx, conn, "parking_bookings") {
		t.Fatalf("expected parking_bookings to exist")
	}
	if HasTable(ctx, conn, "missing") {
		t.Fatalf("query error must read as absent")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
