package core

import (
	"fmt"
	"time"
)

const (
	// DateTimeLayout is how date-times are stored, the value of an HTML
	// datetime-local input.
	DateTimeLayout = "2006-01-02T15:04"
	// DisplayLayout is how date-times are shown in listings.
	DisplayLayout = "2006-01-02 03:04 PM"

	dateTimeSecondsLayout = "2006-01-02T15:04:05"
)

// ParseDateTime accepts a datetime-local value, with or without seconds,
// and returns it normalised to DateTimeLayout.
func ParseDateTime(s string) (string, error) {
	for _, layout := range []string{DateTimeLayout, dateTimeSecondsLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateTimeLayout), nil
		}
	}
	return "", fmt.Errorf("%w: date_time %q does not match %s", ErrTaskInvalidArgs, s, DateTimeLayout)
}

// FormatDateTime converts a stored date-time to the 12-hour display form.
func FormatDateTime(stored string) (string, error) {
	t, err := time.Parse(DateTimeLayout, stored)
	if err != nil {
		return "", fmt.Errorf("parse stored date_time %q: %w", stored, err)
	}
	return t.Format(DisplayLayout), nil
}
