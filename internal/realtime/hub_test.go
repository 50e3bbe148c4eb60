package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smartparking/internal/domain/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, h *Hub, query string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		_ = h.ServeWS(w, r, Filter{LocationID: q.Get("location"), BookingDate: q.Get("date")})
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_DeliversMatchingEvents(t *testing.T) {
	h := NewHub(nil)
	conn := dial(t, h, "location=L1")
	require.Eventually(t, func() bool { return h.Clients() == 1 }, time.Second, 10*time.Millisecond)

	ctx := context.Background()
	require.NoError(t, h.Publish(ctx, models.BookingEvent{Type: models.EventBookingConfirmed, LocationID: "L2", SeatNumber: "A1"}))
	require.NoError(t, h.Publish(ctx, models.BookingEvent{Type: models.EventBookingConfirmed, LocationID: "L1", SeatNumber: "A3"}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev models.SeatEvent
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, "L1", ev.LocationID)
	assert.Equal(t, "A3", ev.SeatNumber)
}

func TestHub_PayloadCarriesNoCustomerData(t *testing.T) {
	h := NewHub(nil)
	conn := dial(t, h, "")
	require.Eventually(t, func() bool { return h.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, h.Publish(context.Background(), models.BookingEvent{
		Type: models.EventBookingConfirmed, CustomerID: "CUST-SECRET12345", LocationID: "L1",
		ZoneID: "zone1", BookingDate: "2025-06-01", TimeWindow: "09:00-12:00",
		VehicleType: "BIKE", SeatNumber: "A3", Amount: 25,
	}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.NotContains(t, string(msg), "CUST-SECRET12345")

	var fields map[string]any
	require.NoError(t, json.Unmarshal(msg, &fields))
	assert.NotContains(t, fields, "customer_id")
	assert.NotContains(t, fields, "amount")
	assert.Equal(t, "A3", fields["seat_number"])
}

func TestHub_ForgetsClosedClients(t *testing.T) {
	h := NewHub(nil)
	conn := dial(t, h, "")
	require.Eventually(t, func() bool { return h.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return h.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestFilter_Match(t *testing.T) {
	ev := models.SeatEvent{LocationID: "L1", ZoneID: "zone1", BookingDate: "2025-06-01"}
	assert.True(t, Filter{}.match(ev))
	assert.True(t, Filter{LocationID: "L1", BookingDate: "2025-06-01"}.match(ev))
	assert.False(t, Filter{ZoneID: "zone2"}.match(ev))
}
