package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// Ordered layouts. US-style month-first is tried before day-first because
// the originating institution reports US-locale dates; ambiguous inputs like
// 03/04/2024 therefore resolve to March 4. This is policy, not a guess.
// Components are unpadded so each layout accepts both "3/4/2024" and
// "03/04/2024"; spreadsheets strip leading zeros on resave.
var dateLayouts = []string{
	"1/2/2006",
	"2/1/2006",
	"2006-1-2",
	"1/2/06",
	"2-1-2006",
}

// Last-resort layouts for exports that carry times or spelled-out months.
var fallbackLayouts = []string{
	"2006/1/2",
	"2.1.2006",
	"20060102",
	"2006-1-2T15:04:05Z",
	"2006-1-2 15:04:05",
	"1/2/2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// Date parses a free-form date string against the ordered layout list,
// returning the first successful parse truncated to a calendar date.
func Date(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), nil
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
}

// The canonical record is date-only; the serializer adds its own nominal
// time-of-day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
