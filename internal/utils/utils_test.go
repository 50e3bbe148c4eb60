package utils

import (
	"testing"
	"time"
)

func TestParseAndFormatDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	d, err := ParseDate(" 2025-06-01 ", loc)
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if FormatDate(d, loc) != "2025-06-01" {
		t.Fatalf("unexpected round trip %s", FormatDate(d, loc))
	}
	if _, err := ParseDate("01/06/2025", loc); err == nil {
		t.Fatalf("expected error for malformed date")
	}
	if _, err := ParseDate("2025-02-30", loc); err == nil {
		t.Fatalf("expected error for impossible date")
	}
}

func TestCalendarDay(t *testing.T) {
	if CalendarDay("2025-06-01", "2025-05-31") <= 0 || CalendarDay("2025-06-01", "2025-06-01") != 0 {
		t.Fatalf("unexpected calendar ordering")
	}
}

func TestTextHelpers(t *testing.T) {
	if CompactUpper(" tn 37\tab 1234 ") != "TN37AB1234" {
		t.Fatalf("CompactUpper failed")
	}
	if !SameText("  asha   k ", "ASHA K") || SameText("asha", "ash") {
		t.Fatalf("SameText failed")
	}
}
