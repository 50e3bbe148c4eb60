package models

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"
	"time"

	"smartparking/internal/domain"
)

func TestSeatEvent_PublicShape(t *testing.T) {
	b := Booking{
		CustomerID: "CUST-ABCDEFGH2345", Name: "Asha Kumar", VehicleNumber: "TN 37 AB 1234",
		VehicleType: domain.VehicleBike, LocationID: "L1", ZoneID: "zone1",
		BookingDate: "2025-06-01", TimeWindow: "09:00-12:00", SeatNumber: "A3", Amount: 25,
	}
	ev := NewBookingEvent(EventBookingConfirmed, b, time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC))

	raw, err := json.Marshal(ev.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	want := []string{"booking_date", "location", "occurred_at", "seat_number", "time_slot", "type", "vehicle_type", "zone"}
	if len(keys) != len(want) {
		t.Fatalf("public event fields = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("public event fields = %v, want %v", keys, want)
		}
	}
	for _, secret := range []string{b.CustomerID, b.Name, b.VehicleNumber} {
		if strings.Contains(string(raw), secret) {
			t.Fatalf("public event leaks %q: %s", secret, raw)
		}
	}
}

func TestBookingEvent_KeepsCustomerIDForInternalConsumers(t *testing.T) {
	ev := NewBookingEvent(EventBookingCancelled, Booking{CustomerID: "CUST-X", Name: "n", VehicleNumber: "v"}, time.Now())
	if ev.CustomerID != "CUST-X" {
		t.Fatalf("customer id dropped from internal event")
	}
	raw, _ := json.Marshal(ev)
	if strings.Contains(string(raw), `"name"`) || strings.Contains(string(raw), "vehicle_number") {
		t.Fatalf("internal event carries personal data: %s", raw)
	}
}
