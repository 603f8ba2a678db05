package shared

import (
	"strings"
	"time"
)

// BusinessTimeZone is the zone in which sale dates and "today" are interpreted
const BusinessTimeZone = "Asia/Seoul"

// DateLayout is the wire format of date-only values
const DateLayout = "2006-01-02"

var businessLocation = loadBusinessLocation()

func loadBusinessLocation() *time.Location {
	loc, err := time.LoadLocation(BusinessTimeZone)
	if err != nil {
		// tzdata missing from the image; Korea has no DST so a fixed zone is exact
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// BusinessLocation returns the business time zone
func BusinessLocation() *time.Location {
	return businessLocation
}

// Now returns the current time in the business time zone
func Now() time.Time {
	return time.Now().In(businessLocation)
}

// StartOfDay truncates t to midnight in the business time zone
func StartOfDay(t time.Time) time.Time {
	t = t.In(businessLocation)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, businessLocation)
}

// ParseBusinessDate parses a YYYY-MM-DD value into midnight of that day in the
// business time zone.
func ParseBusinessDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, NewInvalidArgument("saleDate is required")
	}
	t, err := time.ParseInLocation(DateLayout, value, businessLocation)
	if err != nil {
		return time.Time{}, NewInvalidArgument("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// DateRange is a half-open [Start, End) interval of whole business days
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds the range covering startDate through endDate inclusive.
// Empty values default to the day of now.
func NewDateRange(startDate, endDate string, now time.Time) (DateRange, error) {
	today := StartOfDay(now)

	start := today
	if strings.TrimSpace(startDate) != "" {
		t, err := ParseBusinessDate(startDate)
		if err != nil {
			return DateRange{}, err
		}
		start = t
	}

	end := today
	if strings.TrimSpace(endDate) != "" {
		t, err := ParseBusinessDate(endDate)
		if err != nil {
			return DateRange{}, err
		}
		end = t
	}

	if end.Before(start) {
		return DateRange{}, NewInvalidArgument("endDate %s is before startDate %s",
			end.Format(DateLayout), start.Format(DateLayout))
	}

	return DateRange{Start: start, End: end.AddDate(0, 0, 1)}, nil
}
