package services

import (
	"fmt"
	"time"

	"smartparking/internal/domain"
	"smartparking/internal/utils"
)

// Clock resolves "today" for date validation in a fixed timezone.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func (c Clock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Clock) loc() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.Local
}

// Today is the current calendar date as YYYY-MM-DD.
func (c Clock) Today() string {
	return utils.FormatDate(c.now(), c.loc())
}

func (c Clock) parse(raw string) (string, error) {
	d, err := utils.ParseDate(raw, c.loc())
	if err != nil {
		return "", domain.InvalidDate(fmt.Sprintf("%q is not a YYYY-MM-DD date", raw))
	}
	return utils.FormatDate(d, c.loc()), nil
}

// NotPast accepts today or any later date.
func (c Clock) NotPast(raw string) (string, error) {
	date, err := c.parse(raw)
	if err != nil {
		return "", err
	}
	if utils.CalendarDay(date, c.Today()) < 0 {
		return "", domain.InvalidDate(fmt.Sprintf("%s is in the past", date))
	}
	return date, nil
}

// Future accepts only dates strictly after today.
func (c Clock) Future(raw string) (string, error) {
	date, err := c.parse(raw)
	if err != nil {
		return "", err
	}
	today := c.Today()
	if utils.CalendarDay(date, today) <= 0 {
		tomorrow := utils.FormatDate(c.now().In(c.loc()).AddDate(0, 0, 1), c.loc())
		return "", domain.InvalidDate(fmt.Sprintf("bookings open from %s; %s is too early", tomorrow, date))
	}
	return date, nil
}
