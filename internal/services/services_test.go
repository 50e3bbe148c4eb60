package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"smartparking/internal/catalog"
	"smartparking/internal/domain"
	"smartparking/internal/domain/models"
	"smartparking/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]models.Location{{
		ID:   "L1",
		Name: "Lot One",
		Zones: []models.Zone{
			{
				ID:          "zone1",
				Label:       "Zone 1 (3-Hour Slots)",
				WindowHours: 3,
				Capacity:    map[domain.VehicleType]int{domain.VehicleBike: 8, domain.VehicleCar: 4},
			},
			{
				ID:          "zone5",
				Label:       "Zone 5 (24-Hour Slot)",
				WindowHours: 24,
				Capacity:    map[domain.VehicleType]int{domain.VehicleCar: 2},
			},
		},
	}})
	require.NoError(t, err)
	return c
}

type recorder struct {
	mu     sync.Mutex
	events []models.BookingEvent
	err    error
}

func (r *recorder) Publish(_ context.Context, ev models.BookingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

// countingStore wraps a Store and counts mutating calls.
type countingStore struct {
	ledger.Store
	mu       sync.Mutex
	reserves int
}

func (c *countingStore) Reserve(ctx context.Context, b models.Booking) (models.Booking, error) {
	c.mu.Lock()
	c.reserves++
	c.mu.Unlock()
	return c.Store.Reserve(ctx, b)
}

type fixture struct {
	bookings     BookingService
	availability AvailabilityService
	store        *countingStore
	events       *recorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	c := testCatalog(t)
	store := &countingStore{Store: ledger.NewMemory()}
	events := &recorder{}
	clock := Clock{Now: func() time.Time { return testNow }, Location: time.UTC}
	return fixture{
		bookings:     BookingService{Catalog: c, Ledger: store, Events: events, Clock: clock},
		availability: AvailabilityService{Catalog: c, Ledger: store, Clock: clock},
		store:        store,
		events:       events,
	}
}

func scenarioRequest() BookingRequest {
	return BookingRequest{
		Name:          "Asha Kumar",
		VehicleNumber: "TN 37 AB 1234",
		VehicleType:   "bike",
		LocationID:    "L1",
		BookingDate:   "2025-06-01",
		ZoneID:        "zone1",
		TimeSlot:      "09:00-12:00",
		SeatNumber:    "A3",
	}
}

func scenarioQuery() SeatQuery {
	return SeatQuery{LocationID: "L1", ZoneID: "zone1", TimeWindow: "09:00-12:00", VehicleType: "BIKE", Date: "2025-06-01"}
}

func TestBookCancelRebookScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.bookings.Book(ctx, scenarioRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.CustomerID, "CUST-"))
	assert.Equal(t, domain.StatusActive, first.Status)
	assert.Equal(t, domain.VehicleBike, first.VehicleType)
	assert.Equal(t, "TN 37 AB 1234", first.VehicleNumber, "vehicle number is kept as entered")
	assert.Equal(t, int64(25), first.Amount)

	second := scenarioRequest()
	second.Name = "Someone Else"
	_, err = f.bookings.Book(ctx, second)
	assert.True(t, domain.IsConflict(err), "expected conflict, got %v", err)

	cancelled, err := f.bookings.Cancel(ctx, first.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Kumar", cancelled.Name)
	assert.Equal(t, "TN 37 AB 1234", cancelled.VehicleNumber)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	again, err := f.bookings.Book(ctx, second)
	require.NoError(t, err)
	assert.NotEqual(t, first.CustomerID, again.CustomerID)
}

func TestBook_DateMustBeAfterToday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, date := range []string{"2025-05-20", "2025-05-19", "20-05-2025", ""} {
		req := scenarioRequest()
		req.BookingDate = date
		_, err := f.bookings.Book(ctx, req)
		assert.Equal(t, domain.KindInvalidDate, domain.KindOf(err), "date %q", date)
	}
	assert.Zero(t, f.store.reserves, "invalid dates must not reach the ledger")

	req := scenarioRequest()
	req.BookingDate = "2025-05-21"
	_, err := f.bookings.Book(ctx, req)
	assert.NoError(t, err)
}

func TestBook_ValidationPrecedesReserve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*BookingRequest)
		kind   domain.Kind
	}{
		{"missing name", func(r *BookingRequest) { r.Name = "  " }, domain.KindInvalidInput},
		{"missing vehicle number", func(r *BookingRequest) { r.VehicleNumber = "   " }, domain.KindInvalidInput},
		{"name too long", func(r *BookingRequest) { r.Name = strings.Repeat("n", 121) }, domain.KindInvalidInput},
		{"vehicle number too long", func(r *BookingRequest) { r.VehicleNumber = strings.Repeat("9", 33) }, domain.KindInvalidInput},
		{"unknown vehicle", func(r *BookingRequest) { r.VehicleType = "TRUCK" }, domain.KindInvalidInput},
		{"unknown location", func(r *BookingRequest) { r.LocationID = "L9" }, domain.KindNotFound},
		{"unknown zone", func(r *BookingRequest) { r.ZoneID = "zone9" }, domain.KindNotFound},
		{"bad window", func(r *BookingRequest) { r.TimeSlot = "09:00-11:00" }, domain.KindInvalidWindow},
		{"seat beyond capacity", func(r *BookingRequest) { r.SeatNumber = "A9" }, domain.KindInvalidSeat},
		{"seat zero", func(r *BookingRequest) { r.SeatNumber = "0" }, domain.KindInvalidSeat},
		{"no bikes in zone", func(r *BookingRequest) { r.ZoneID, r.TimeSlot = "zone5", catalog.FullDayLabel }, domain.KindInvalidSeat},
	}
	for _, tc := range cases {
		req := scenarioRequest()
		tc.mutate(&req)
		_, err := f.bookings.Book(ctx, req)
		assert.Equal(t, tc.kind, domain.KindOf(err), tc.name)
	}
	assert.Zero(t, f.store.reserves)
	assert.Empty(t, f.events.events)
}

func TestBook_LengthLimitsMatchColumns(t *testing.T) {
	f := newFixture(t)
	req := scenarioRequest()
	req.Name = strings.Repeat("é", 120)
	req.VehicleNumber = strings.Repeat("9", 32)
	b, err := f.bookings.Book(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, req.Name, b.Name)
}

func TestBook_KeepsEnteredDetailsTrimmed(t *testing.T) {
	f := newFixture(t)
	req := scenarioRequest()
	req.Name = "  Asha  Kumar "
	req.VehicleNumber = " tn 37 ab 1234 "
	b, err := f.bookings.Book(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Asha  Kumar", b.Name)
	assert.Equal(t, "tn 37 ab 1234", b.VehicleNumber)

	cancelled, err := f.bookings.CancelMatching(context.Background(), b.CustomerID, "asha kumar", "TN37AB1234")
	require.NoError(t, err)
	assert.Equal(t, "tn 37 ab 1234", cancelled.VehicleNumber)
}

func TestBook_SeatOrdinalIsNormalised(t *testing.T) {
	f := newFixture(t)
	req := scenarioRequest()
	req.SeatNumber = "3"
	b, err := f.bookings.Book(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "A3", b.SeatNumber)

	_, err = f.bookings.Book(context.Background(), scenarioRequest())
	assert.True(t, domain.IsConflict(err), "label and ordinal must share one key")
}

func TestBook_ConcurrentRequestsForOneKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const n = 40

	var (
		wg              sync.WaitGroup
		mu              sync.Mutex
		wins, conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := scenarioRequest()
			req.Name = fmt.Sprintf("driver %d", i)
			_, err := f.bookings.Book(ctx, req)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if domain.IsConflict(err) {
				conflicts++
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, conflicts)
}

func TestBook_AmountIsFixedAtBookingTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.bookings.Price = func(domain.VehicleType, time.Duration) int64 { return 40 }

	b, err := f.bookings.Book(ctx, scenarioRequest())
	require.NoError(t, err)
	require.Equal(t, int64(40), b.Amount)

	f.bookings.Price = func(domain.VehicleType, time.Duration) int64 { return 999 }
	cancelled, err := f.bookings.Cancel(ctx, b.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), cancelled.Amount)
}

func TestCancel_TwiceReportsAlreadyCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.bookings.Book(ctx, scenarioRequest())
	require.NoError(t, err)

	_, err = f.bookings.Cancel(ctx, strings.ToLower(b.CustomerID))
	require.NoError(t, err)
	_, err = f.bookings.Cancel(ctx, b.CustomerID)
	assert.True(t, domain.IsAlreadyCancelled(err), "got %v", err)

	_, err = f.bookings.Cancel(ctx, "CUST-UNKNOWN")
	assert.True(t, domain.IsNotFound(err))
	_, err = f.bookings.Cancel(ctx, " ")
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

func TestCancelMatching(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.bookings.Book(ctx, scenarioRequest())
	require.NoError(t, err)

	_, err = f.bookings.CancelMatching(ctx, b.CustomerID, "Someone Else", "TN37AB1234")
	assert.True(t, domain.IsNotFound(err))
	_, err = f.bookings.CancelMatching(ctx, b.CustomerID, "Asha Kumar", "TN37XX0000")
	assert.True(t, domain.IsNotFound(err))

	still, err := f.bookings.Lookup(ctx, b.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, still.Status)

	cancelled, err := f.bookings.CancelMatching(ctx, b.CustomerID, "asha  kumar", "tn37ab 1234")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
}

func TestBook_PublishesEventsAfterCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.events.err = errors.New("broker down")

	b, err := f.bookings.Book(ctx, scenarioRequest())
	require.NoError(t, err, "publisher failure must not fail the booking")
	_, err = f.bookings.Cancel(ctx, b.CustomerID)
	require.NoError(t, err)

	require.Len(t, f.events.events, 2)
	assert.Equal(t, models.EventBookingConfirmed, f.events.events[0].Type)
	assert.Equal(t, models.EventBookingCancelled, f.events.events[1].Type)
	assert.Equal(t, b.CustomerID, f.events.events[0].CustomerID)
	assert.Equal(t, "A3", f.events.events[0].SeatNumber)
}

func TestPublishers_JoinErrors(t *testing.T) {
	ok := &recorder{}
	bad := &recorder{err: errors.New("boom")}
	err := Publishers{ok, nil, bad}.Publish(context.Background(), models.BookingEvent{Type: models.EventBookingConfirmed})
	assert.ErrorContains(t, err, "boom")
	assert.Len(t, ok.events, 1)
}

func TestSeats_ReturnsCapacityUniqueLabels(t *testing.T) {
	f := newFixture(t)
	seats, err := f.availability.Seats(context.Background(), scenarioQuery())
	require.NoError(t, err)
	require.Len(t, seats, 8)
	seen := map[string]bool{}
	for i, s := range seats {
		assert.Equal(t, fmt.Sprintf("A%d", i+1), s.SeatNumber)
		assert.False(t, s.IsBooked)
		assert.False(t, seen[s.SeatNumber])
		seen[s.SeatNumber] = true
	}

	q := scenarioQuery()
	q.VehicleType = "CAR"
	cars, err := f.availability.Seats(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, cars, 4)
}

func TestSeats_RoundTripWithBookAndCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.bookings.Book(ctx, scenarioRequest())
	require.NoError(t, err)

	seats, err := f.availability.Seats(ctx, scenarioQuery())
	require.NoError(t, err)
	for _, s := range seats {
		assert.Equal(t, s.SeatNumber == "A3", s.IsBooked, s.SeatNumber)
	}
	booked, err := f.availability.IsBooked(ctx, b.Key())
	require.NoError(t, err)
	assert.True(t, booked)

	q := scenarioQuery()
	q.VehicleType = "CAR"
	cars, err := f.availability.Seats(ctx, q)
	require.NoError(t, err)
	for _, s := range cars {
		assert.False(t, s.IsBooked, "bike booking must not mark car seats")
	}

	_, err = f.bookings.Cancel(ctx, b.CustomerID)
	require.NoError(t, err)
	seats, err = f.availability.Seats(ctx, scenarioQuery())
	require.NoError(t, err)
	for _, s := range seats {
		assert.False(t, s.IsBooked, s.SeatNumber)
	}
}

func TestSeats_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q := scenarioQuery()
	q.TimeWindow = "10:00-13:00"
	_, err := f.availability.Seats(ctx, q)
	assert.Equal(t, domain.KindInvalidWindow, domain.KindOf(err))

	q = scenarioQuery()
	q.Date = "2025-05-19"
	_, err = f.availability.Seats(ctx, q)
	assert.Equal(t, domain.KindInvalidDate, domain.KindOf(err))

	q = scenarioQuery()
	q.Date = "not-a-date"
	_, err = f.availability.Seats(ctx, q)
	assert.Equal(t, domain.KindInvalidDate, domain.KindOf(err))

	q = scenarioQuery()
	q.Date = "2025-05-20"
	_, err = f.availability.Seats(ctx, q)
	assert.NoError(t, err, "today is still viewable")

	q = scenarioQuery()
	q.LocationID = "nowhere"
	_, err = f.availability.Seats(ctx, q)
	assert.True(t, domain.IsNotFound(err))
}

func TestSummary_CountsFreeSeatWindows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.bookings.Book(ctx, scenarioRequest())
	require.NoError(t, err)

	summary, err := f.availability.Summary(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, summary, 1)
	// zone1: 8 windows x (8 bikes, 4 cars); zone5: 1 window x 2 cars.
	assert.Equal(t, 8*4+2, summary[0].AvailableCars)
	assert.Equal(t, 8*8-1, summary[0].AvailableTwoWheelers)
	assert.Equal(t, "Lot One", summary[0].Location)

	today, err := f.availability.Summary(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-05-20", today[0].Date)
	assert.Equal(t, 8*8, today[0].AvailableTwoWheelers)
}

func TestReceipt_GeneratesPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.bookings.Book(ctx, scenarioRequest())
	require.NoError(t, err)

	svc := ReceiptService{Catalog: f.bookings.Catalog, Ledger: f.store, Location: time.UTC}
	pdf, name, err := svc.Generate(ctx, b.CustomerID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	assert.Equal(t, "RECEIPT_"+b.CustomerID+".pdf", name)

	_, _, err = svc.Generate(ctx, "CUST-NOPE")
	assert.True(t, domain.IsNotFound(err))
}
