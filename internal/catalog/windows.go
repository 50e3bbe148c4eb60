package catalog

import (
	"fmt"
	"time"

	"smartparking/internal/domain/models"
)

// FullDayLabel is the label of the single window of a 24h zone.
const FullDayLabel = "Full Day (24 hours)"

// ExpandWindows partitions a day into contiguous windows of the given length
// starting at 00:00. The length must divide 24 so the partition is
// exhaustive. Each call returns a fresh slice.
func ExpandWindows(hours int) ([]models.Window, error) {
	if hours <= 0 || hours > 24 || 24%hours != 0 {
		return nil, fmt.Errorf("window length %dh does not partition a 24h day", hours)
	}
	length := time.Duration(hours) * time.Hour
	if hours == 24 {
		return []models.Window{{Label: FullDayLabel, Start: 0, Length: length}}, nil
	}
	out := make([]models.Window, 0, 24/hours)
	for start := 0; start < 24; start += hours {
		out = append(out, models.Window{
			Label:  WindowLabel(start, start+hours),
			Start:  time.Duration(start) * time.Hour,
			Length: length,
		})
	}
	return out, nil
}

// WindowLabel formats [startHour, endHour) as "HH:MM-HH:MM"; midnight at the
// end of the day is written 00:00.
func WindowLabel(startHour, endHour int) string {
	return fmt.Sprintf("%02d:00-%02d:00", startHour%24, endHour%24)
}

// Labels extracts the label of every window in order.
func Labels(windows []models.Window) []string {
	out := make([]string, len(windows))
	for i, w := range windows {
		out[i] = w.Label
	}
	return out
}
